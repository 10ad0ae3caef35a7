package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
)

// idTokenVerifier is the subset of *oidc.IDTokenVerifier used here.
type idTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// OIDCVerifier validates ID tokens against an OpenID Connect provider.
type OIDCVerifier struct {
	verifier idTokenVerifier
}

var _ Verifier = (*OIDCVerifier)(nil)

var discoveryBackoff = 2 * time.Second

// NewOIDCVerifier discovers the provider at issuer, retrying a few times while it comes up.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string, log *zap.Logger) (*OIDCVerifier, error) {
	if issuer == "" || clientID == "" {
		return nil, fmt.Errorf("oidc issuer and client id are required")
	}

	var (
		provider *oidc.Provider
		err      error
	)
	const attempts = 5
	for i := 0; i < attempts; i++ {
		provider, err = oidc.NewProvider(ctx, issuer)
		if err == nil || i == attempts-1 {
			break
		}
		log.Warn("oidc_discovery_retry",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(discoveryBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}

	log.Info("oidc_initialized", zap.String("issuer", issuer), zap.String("client_id", clientID))
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// Verify validates the ID token and returns its subject.
func (v *OIDCVerifier) Verify(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}
	tok, err := v.verifier.Verify(ctx, credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if tok.Subject == "" {
		return "", ErrInvalidCredential
	}
	return tok.Subject, nil
}
