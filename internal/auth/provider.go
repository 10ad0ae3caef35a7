package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skystash/internal/config"
)

// NewVerifier builds the Verifier selected by cfg.Provider.
func NewVerifier(ctx context.Context, cfg config.AuthConfig, log *zap.Logger) (Verifier, error) {
	switch cfg.Provider {
	case "jwt", "":
		v, err := NewJWTVerifier(JWTConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	case "oidc":
		v, err := NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, log.Named("auth"))
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.Provider)
	}
}
