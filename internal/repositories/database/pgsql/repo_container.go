package pgsql

import (
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/repositories/documents"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return documents.NewRepositoryProvider(NewDocumentStore(dbPool))
}
