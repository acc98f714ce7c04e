package middleware

import (
	"log"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	adapter "github.com/gwatts/gin-adapter"
)

// EnsureValidToken validates the request's bearer token against the Auth0
// tenant. The net/http middleware is wrapped into a gin handler.
func EnsureValidToken(domain, audience string) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		log.Fatalf("failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
	)
	if err != nil {
		log.Fatalf("failed to set up the jwt validator: %v", err)
	}

	jwtMiddleware := jwtmiddleware.New(jwtValidator.ValidateToken)

	return adapter.Wrap(jwtMiddleware.CheckJWT)
}
