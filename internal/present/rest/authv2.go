package rest

import (
	"strings"

	"github.com/labstack/echo/v4"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest/presenter"
)

// probeResult is the IIIF Auth 2 probe body. The HTTP status is always 200;
// Status carries the real outcome.
type probeResult struct {
	Context string         `json:"@context"`
	Type    string         `json:"type"`
	Status  int            `json:"status"`
	Service []serviceEntry `json:"service,omitempty"`
}

type serviceEntry struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Profile string `json:"profile,omitempty"`
	Label   string `json:"label,omitempty"`
}

// accessDescriptor is the "please log in" body of the v2 access service.
type accessDescriptor struct {
	Context  string `json:"@context"`
	Type     string `json:"type"`
	Profile  string `json:"profile"`
	Label    string `json:"label"`
	Location string `json:"location"`
}

// handleV2Probe inspects a bearer token without performing the access
// itself. Probes never fail at the transport level; a missing or invalid
// token yields HTTP 200 with an embedded 401 pointing at the access service.
func (h *Handler) handleV2Probe(c echo.Context) error {
	ctx := c.Request().Context()

	denied := probeResult{
		Context: iiif.AuthContextV2,
		Type:    "AuthProbeResult2",
		Status:  401,
		Service: []serviceEntry{{
			ID:   h.config.BaseURL + "/auth/v2/access",
			Type: "AuthAccessService2",
		}},
	}

	raw := bearerToken(c)
	if raw == "" {
		return presenter.OK(c, denied)
	}
	if _, err := h.auth.VerifySessionToken(ctx, raw); err != nil {
		return presenter.OK(c, denied)
	}

	return presenter.OK(c, probeResult{
		Context: iiif.AuthContextV2,
		Type:    "AuthProbeResult2",
		Status:  200,
	})
}

// handleV2Access returns a token directly in the same-document JSON flow; no
// postMessage is involved. Unauthenticated sessions get a login descriptor.
func (h *Handler) handleV2Access(c echo.Context) error {
	ctx := c.Request().Context()

	subject := subjectFromContext(ctx)
	if subject == "" {
		return presenter.OK(c, accessDescriptor{
			Context:  iiif.AuthContextV2,
			Type:     "AuthAccessService2",
			Profile:  "interactive",
			Label:    "Please log in",
			Location: h.config.BaseURL + "/auth/v1/login",
		})
	}

	// v2 tokens share the session-wide scoping of v1.
	raw, err := h.auth.IssueSessionToken(ctx, subject)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, tokenResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSeconds,
	})
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("authorization")
	if authHeader == "" {
		return ""
	}
	split := strings.Split(authHeader, " ")
	if len(split) != 2 || split[0] != "Bearer" {
		return ""
	}
	return split[1]
}
