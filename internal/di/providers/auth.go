package providers

import (
	"github.com/samber/do/v2"

	"github.com/alawler14/Bibliotheca/internal/auth"
	"github.com/alawler14/Bibliotheca/internal/config"
	"github.com/alawler14/Bibliotheca/internal/logger"
)

// AuthKey is the hex-encoded PASETO v4 symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the token signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Auth.TokenSecret, cfg.App.DataPath)
	if err != nil {
		return "", err
	}

	// Update config with the loaded key
	cfg.Auth.TokenSecret = key

	log.Info("Token signing key loaded")

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey))
}
