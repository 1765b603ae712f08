package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth     *service.AuthService
	sessions *service.SessionService
	config   domain.Config
}

func NewAuthMiddleware(
	auth *service.AuthService,
	sessions *service.SessionService,
	config domain.Config,
) *AuthMiddleware {
	return &AuthMiddleware{
		auth:     auth,
		sessions: sessions,
		config:   config,
	}
}

// IdentifySubject resolves the requesting subject from a bearer session
// token or the session cookie and stores it on the request context. It never
// rejects a request; endpoints decide what an anonymous subject may do.
// Item-scoped bearer tokens are not handled here because their binding
// checks belong to the probe endpoints.
func (s *AuthMiddleware) IdentifySubject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifySubject")
		defer span.End()

		subject := ""

		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 || split[0] != "Bearer" {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto checkCookie
			}

			result, err := s.auth.VerifySessionToken(ctx, split[1])
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifySubject: session token rejected"))
				goto checkCookie
			}
			subject = result.Subject
		}

	checkCookie:
		if subject == "" {
			if cookie, err := c.Cookie(s.config.CookieName); err == nil {
				if resolved, ok := s.sessions.Resolve(cookie.Value); ok {
					subject = resolved
				}
			}
		}

		if subject != "" {
			ctx = context.WithValue(ctx, domain.SubjectCtxKey, subject)
			span.SetAttributes(attribute.String("Subject", subject))
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
