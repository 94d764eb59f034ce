package services

import (
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// Integrations are the outbound clients the services call.
type Integrations struct {
	OCR            clients.ReceiptOCR
	Shopify        clients.ShopifyClient
	ShopifyEnabled bool
	Storage        clients.ObjectStorage
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, integ Integrations, opts ...BaseOption) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.Expense = NewExpenseService(repos.ExpenseRepo, opts...)
	container.Vendor = NewVendorService(repos.VendorRepo, opts...)
	container.Shopify = NewShopifyService(integ.Shopify, opts...)

	// Revenue analytics are unavailable without store credentials
	var revenue portssvc.ShopifySvc
	if integ.ShopifyEnabled {
		revenue = container.Shopify
	}
	container.Analytics = NewAnalyticsService(repos.ExpenseRepo, revenue, opts...)

	container.Receipt = NewReceiptService(integ.OCR, integ.Storage, opts...)
	container.Settings = NewSettingsService(repos.SettingsRepo, integ.Storage, SettingsConfig{
		CachePath: cfg.SettingsCachePath,
		Debounce:  cfg.SettingsDebounce,
	}, opts...)
	container.Speech = NewSpeechService(cfg.DeepgramAPIKey, opts...)
	container.Diagnostics = NewDiagnosticsService(repos.DiagnosticsRepo, OCRDiagnostics{
		Client:             integ.OCR,
		APIURL:             cfg.VeryfiURL,
		MissingCredentials: cfg.MissingVeryfiCredentials(),
	}, opts...)

	auth, err := NewAuthService(AuthConfig{
		PIN:       cfg.AppPIN,
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiryDuration,
		JWTIssuer: cfg.JWTIssuer,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	container.Auth = auth

	return container, nil
}
