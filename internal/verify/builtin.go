package verify

import (
	"context"
	"net/http"

	"github.com/spikermint/vet/internal/domain/entities"
)

// httpClient is the shared client every built-in verifier probes through;
// overridable in tests.
var httpClient = &http.Client{}

// stripeVerifier probes a Stripe secret key against the balance endpoint.
// A 200 means live, 401 means inactive, anything else is inconclusive.
func stripeVerifier(ctx context.Context, secret []byte) (entities.Verification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.stripe.com/v1/balance", nil)
	if err != nil {
		return entities.Verification{}, err
	}
	req.SetBasicAuth(string(secret), "")

	resp, err := httpClient.Do(req)
	if err != nil {
		return entities.Verification{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return entities.Verification{Status: entities.VerificationLive, Provider: "stripe"}, nil
	case http.StatusUnauthorized:
		return entities.Verification{Status: entities.VerificationInactive, Provider: "stripe"}, nil
	default:
		return entities.Verification{Status: entities.VerificationInconclusive, Provider: "stripe", Reason: resp.Status}, nil
	}
}

// githubTokenVerifier probes a GitHub personal access token against the
// authenticated-user endpoint.
func githubTokenVerifier(ctx context.Context, secret []byte) (entities.Verification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return entities.Verification{}, err
	}
	req.Header.Set("Authorization", "Bearer "+string(secret))

	resp, err := httpClient.Do(req)
	if err != nil {
		return entities.Verification{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return entities.Verification{Status: entities.VerificationLive, Provider: "github"}, nil
	case http.StatusUnauthorized:
		return entities.Verification{Status: entities.VerificationInactive, Provider: "github"}, nil
	default:
		return entities.Verification{Status: entities.VerificationInconclusive, Provider: "github", Reason: resp.Status}, nil
	}
}

// BuiltinVerifiers returns the verifier table wired for this module's
// built-in verifiable patterns. Consumers pass this (or a superset) to
// NewDispatcher.
func BuiltinVerifiers() map[entities.VerifierHandle]VerifyFunc {
	return map[entities.VerifierHandle]VerifyFunc{
		"stripe":       stripeVerifier,
		"github-token": githubTokenVerifier,
	}
}
