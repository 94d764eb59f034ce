package documents

import (
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository port to the same store.
func NewRepositoryProvider(store Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:     NewExpenseRepository(store),
		VendorRepo:      NewVendorRepository(store),
		SettingsRepo:    NewSettingsRepository(store),
		DiagnosticsRepo: NewDiagnosticsRepository(store),
	}
}
