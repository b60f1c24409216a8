package providers

import (
	"github.com/samber/do/v2"

	"github.com/alawler14/Bibliotheca/internal/auth"
	"github.com/alawler14/Bibliotheca/internal/logger"
	"github.com/alawler14/Bibliotheca/internal/service"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, validator, log.Logger), nil
}

// ProvideTrackingService provides the tracking service.
func ProvideTrackingService(i do.Injector) (*service.TrackingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTrackingService(storeHandle.Store, validator, log.Logger), nil
}
