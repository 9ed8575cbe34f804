package service

import (
	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/crypto"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/validators"
)

// Services bundles every business-logic dependency the transport layer needs.
type Services struct {
	AuthService     AuthService
	AccountService  AccountService
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

// NewServices wires all services to the given storages and configuration.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)
	validator := validators.NewAccountValidator()

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.SessionRepository, hasher, cfg.App, cfg.Sessions, logger),
		AccountService:  NewAccountService(storages.UserRepository, storages.GroupRepository, hasher, validator, logger),
		DocumentService: NewDocumentService(storages.DocumentStorage, logger),
		AppInfoService:  appInfoService,
	}, nil
}
