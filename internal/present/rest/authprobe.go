package rest

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest/presenter"
)

// The resource-scoped handshake binds tokens to a single item. Unlike the
// v1/v2 flows it reports real HTTP statuses.

// handleResourceProbe checks an item-scoped bearer token against the
// requested identifier: the token's bound resource must equal the id, and
// the id's owner segment must equal the token subject.
func (h *Handler) handleResourceProbe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := iiif.ParseResourceID(c.Param("id"))
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if !id.HasItem() {
		return presenter.BadRequestMessage(c, "probe identifier must have exactly 3 segments")
	}

	raw := bearerToken(c)
	if raw == "" {
		return presenter.Unauthorized(c, "bearer token required")
	}

	result, err := h.auth.VerifyResourceToken(ctx, raw)
	if err != nil {
		return presenter.Unauthorized(c, "invalid token")
	}
	if result.Resource != id.String() {
		return presenter.Unauthorized(c, "token not valid for this resource")
	}
	if result.Subject != id.Owner {
		return presenter.Forbidden(c, "not the resource owner")
	}

	return presenter.OK(c, echo.Map{"status": "granted"})
}

// handleResourceAccess is the browser entry of the resource-scoped flow: it
// checks ownership against the live session, then redirects to the token
// endpoint. The token endpoint re-validates on its own because the redirect
// URL crosses a trust boundary and can be replayed.
func (h *Handler) handleResourceAccess(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := iiif.ParseResourceID(c.Param("id"))
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if !id.HasItem() {
		return presenter.BadRequestMessage(c, "access identifier must have exactly 3 segments")
	}

	subject := subjectFromContext(ctx)
	if subject == "" {
		return presenter.Unauthorized(c, "authentication required")
	}
	if subject != id.Owner {
		return presenter.Forbidden(c, "not the resource owner")
	}

	location := h.config.BaseURL + "/auth/token/" + id.String()
	query := url.Values{}
	if origin := c.QueryParam("origin"); origin != "" {
		query.Set("origin", origin)
	}
	if messageID := c.QueryParam("messageId"); messageID != "" {
		query.Set("messageId", messageID)
	}
	if len(query) > 0 {
		location += "?" + query.Encode()
	}
	return c.Redirect(http.StatusFound, location)
}

// handleResourceToken issues an item-scoped token. It repeats the ownership
// check instead of trusting the access endpoint's result.
func (h *Handler) handleResourceToken(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := iiif.ParseResourceID(c.Param("id"))
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if !id.HasItem() {
		return presenter.BadRequestMessage(c, "token identifier must have exactly 3 segments")
	}

	subject := subjectFromContext(ctx)
	if subject == "" {
		return presenter.Unauthorized(c, "authentication required")
	}
	if subject != id.Owner {
		return presenter.Forbidden(c, "not the resource owner")
	}

	raw, err := h.auth.IssueResourceToken(ctx, id, subject)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	resp := tokenResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSeconds,
		MessageID:   c.QueryParam("messageId"),
	}
	if origin := c.QueryParam("origin"); origin != "" {
		return h.renderPostMessage(c, resp, origin)
	}
	return presenter.OK(c, resp)
}
