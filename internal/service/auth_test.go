package service

import (
	"context"
	"errors"
	"testing"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(domain.Config{
		BaseURL:     "https://example.org",
		TokenSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("service construction failed: %v", err)
	}
	return svc
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	raw, err := svc.IssueSessionToken(ctx, "u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	result, err := svc.VerifySessionToken(ctx, raw)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Subject != "u1" {
		t.Fatalf("unexpected subject: %s", result.Subject)
	}
	if result.Resource != "" {
		t.Fatalf("session token must be resource-unscoped, got %s", result.Resource)
	}
}

func TestResourceTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	id := iiif.ResourceID{Owner: "u1", Collection: "c1", Item: "i1"}

	raw, err := svc.IssueResourceToken(ctx, id, "u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	result, err := svc.VerifyResourceToken(ctx, raw)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Subject != "u1" || result.Resource != "u1_c1_i1" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestResourceTokenRequiresItemSegment(t *testing.T) {
	svc := newTestAuthService(t)
	_, err := svc.IssueResourceToken(context.Background(), iiif.ResourceID{Owner: "u1", Collection: "c1"}, "u1")
	if !errors.Is(err, iiif.ErrMalformedID) {
		t.Fatalf("expected MalformedIDError got %v", err)
	}
}

func TestTokenFlavorsAreNotInterchangeable(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	sessionToken, err := svc.IssueSessionToken(ctx, "u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.VerifyResourceToken(ctx, sessionToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("session token must not verify as resource token, got %v", err)
	}

	resourceToken, err := svc.IssueResourceToken(ctx, iiif.ResourceID{Owner: "u1", Collection: "c1", Item: "i1"}, "u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.VerifySessionToken(ctx, resourceToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("resource token must not verify as session token, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestAuthService(t)
	if _, err := svc.VerifySessionToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected InvalidTokenError got %v", err)
	}
}

func TestSessionServiceLifecycle(t *testing.T) {
	sessions := NewSessionService()

	id := sessions.Create("u1")
	if subject, ok := sessions.Resolve(id); !ok || subject != "u1" {
		t.Fatalf("resolve failed: %s %v", subject, ok)
	}

	if _, ok := sessions.Resolve("unknown"); ok {
		t.Fatalf("unknown session must not resolve")
	}
	if _, ok := sessions.Resolve(""); ok {
		t.Fatalf("empty session id must not resolve")
	}

	sessions.Destroy(id)
	if _, ok := sessions.Resolve(id); ok {
		t.Fatalf("destroyed session must not resolve")
	}
}
