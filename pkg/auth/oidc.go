package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/logger"
	"golang.org/x/oauth2"
)

type OIDCAuthenticator struct {
	config *oauth2.Config
	issuer string
}

func NewOIDCAuthenticator(issuer, clientID, clientSecret string) (*OIDCAuthenticator, error) {
	if issuer == "" || clientID == "" {
		return nil, fmt.Errorf("OIDC configuration incomplete")
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/authorize", issuer),
			TokenURL: fmt.Sprintf("%s/token", issuer),
		},
		Scopes: []string{"openid", "profile", "email"},
	}

	return &OIDCAuthenticator{
		config: config,
		issuer: issuer,
	}, nil
}

// ValidateToken performs a shape check on the bearer token and returns its
// claims. Signature verification against the issuer's JWKS is left to the
// gateway in front of this demo service.
func (a *OIDCAuthenticator) ValidateToken(ctx context.Context, token string) (map[string]interface{}, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	if strings.Count(token, ".") != 2 {
		return nil, fmt.Errorf("malformed token")
	}

	logger.Log.WithField("issuer", a.issuer).Debug("token accepted")

	return map[string]interface{}{
		"iss": a.issuer,
	}, nil
}
