package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"toyshop/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const tokenContextKey = "user"

// Authenticator validates bearer tokens for the admin endpoints. Tokens are verified with a
// shared HMAC secret or, when a JWKS URL is configured, with the published signing keys.
type Authenticator struct {
	keyFunc jwt.Keyfunc
	jwks    *keyfunc.JWKS
	logger  *zap.Logger
}

// NewAuthenticator builds an Authenticator. jwksURL takes precedence over secret.
func NewAuthenticator(ctx context.Context, secret, jwksURL string, logger *zap.Logger) (*Authenticator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Authenticator{logger: logger}

	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				logger.Warn("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
			},
		})
		if err != nil {
			return nil, err
		}
		a.jwks = jwks
		a.keyFunc = jwks.Keyfunc
		return a, nil
	}

	if secret == "" {
		return nil, errors.New("jwt secret or jwks url is required")
	}
	a.keyFunc = func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}
	return a, nil
}

// Close stops the background JWKS refresh.
func (a *Authenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

func (a *Authenticator) config() echojwt.Config {
	return echojwt.Config{
		ContextKey: tokenContextKey,
		KeyFunc:    a.keyFunc,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return
			}
			c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), sub)))
		},
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Authenticator) RequireAuth() echo.MiddlewareFunc {
	cfg := a.config()
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		a.logger.Debug("rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return echojwt.WithConfig(cfg)
}

// OptionalAuth lets anonymous requests through but still rejects a token that is present and
// invalid. Handlers check common.GetUserIDFromContext for the subject.
func (a *Authenticator) OptionalAuth() echo.MiddlewareFunc {
	cfg := a.config()
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		var missing *echojwt.TokenExtractionError
		if errors.As(err, &missing) {
			return nil
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return echojwt.WithConfig(cfg)
}
