package service

import (
	"context"
	"crypto/sha256"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/hkdf"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
	"github.com/nakamura196/iiif-manifest-tool-sub001/token"
)

var tracer = otel.Tracer("auth")

// TokenTTL is the lifetime of every issued token, across all three
// handshakes.
const TokenTTL = time.Hour

// AuthService issues and verifies the two token flavors: session-wide
// tokens for the v1/v2 handshakes and item-scoped tokens for the bearer
// probe. Verification is stateless; all state lives in the signed claims.
type AuthService struct {
	config      domain.Config
	sessionKey  []byte
	resourceKey []byte
}

func NewAuthService(config domain.Config) (*AuthService, error) {
	sessionKey, err := deriveKey(config.TokenSecret, "session-token")
	if err != nil {
		return nil, errors.Wrap(err, "NewAuthService: session key derivation failed")
	}
	resourceKey, err := deriveKey(config.TokenSecret, "resource-token")
	if err != nil {
		return nil, errors.Wrap(err, "NewAuthService: resource key derivation failed")
	}
	return &AuthService{
		config:      config,
		sessionKey:  sessionKey,
		resourceKey: resourceKey,
	}, nil
}

// deriveKey expands the configured secret into a per-purpose signing key so
// a session token can never validate as a resource token or vice versa.
func deriveKey(secret, purpose string) ([]byte, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// AuthResult is the outcome of a successful verification. Resource is empty
// for session-wide tokens.
type AuthResult struct {
	Subject  string
	Resource string
}

// IssueSessionToken issues a session-wide token for the v1/v2 handshakes.
// Ownership must already have been established by the caller.
func (s *AuthService) IssueSessionToken(ctx context.Context, subject string) (string, error) {
	_, span := tracer.Start(ctx, "Auth.Service.IssueSessionToken")
	defer span.End()

	raw, err := token.Create(s.claims(subject, ""), s.sessionKey)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "IssueSessionToken: token creation failed")
	}
	return raw, nil
}

// IssueResourceToken issues a token bound to a single item.
func (s *AuthService) IssueResourceToken(ctx context.Context, id iiif.ResourceID, subject string) (string, error) {
	_, span := tracer.Start(ctx, "Auth.Service.IssueResourceToken")
	defer span.End()

	if !id.HasItem() {
		err := iiif.MalformedIDError{Raw: id.String()}
		span.RecordError(err)
		return "", err
	}

	raw, err := token.Create(s.claims(subject, id.String()), s.resourceKey)
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "IssueResourceToken: token creation failed")
	}
	return raw, nil
}

func (s *AuthService) claims(subject, resource string) token.Claims {
	now := time.Now()
	return token.Claims{
		Issuer:         s.config.BaseURL,
		Subject:        subject,
		Resource:       resource,
		IssuedAt:       strconv.FormatInt(now.Unix(), 10),
		ExpirationTime: strconv.FormatInt(now.Add(TokenTTL).Unix(), 10),
	}
}

// VerifySessionToken verifies a session-wide token.
func (s *AuthService) VerifySessionToken(ctx context.Context, raw string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.VerifySessionToken")
	defer span.End()

	result, err := verify(raw, s.sessionKey)
	if err != nil {
		span.RecordError(errors.Wrap(err, "session token validation failed"))
		return nil, err
	}
	return result, nil
}

// VerifyResourceToken verifies an item-scoped token. The binding check
// (resource and owner-segment match) is a separate step the caller performs
// on the returned result.
func (s *AuthService) VerifyResourceToken(ctx context.Context, raw string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.VerifyResourceToken")
	defer span.End()

	result, err := verify(raw, s.resourceKey)
	if err != nil {
		span.RecordError(errors.Wrap(err, "resource token validation failed"))
		return nil, err
	}
	return result, nil
}

func verify(raw string, key []byte) (*AuthResult, error) {
	_, claims, err := token.Validate(raw, key)
	if err != nil {
		return nil, domain.InvalidTokenError{Reason: err.Error()}
	}
	return &AuthResult{
		Subject:  claims.Subject,
		Resource: claims.Resource,
	}, nil
}
