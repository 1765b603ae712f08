package rest

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest/presenter"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/service"
)

// tokenResponse is the JSON body returned by the token endpoints. MessageID
// correlates a postMessage reply with the caller's request.
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	MessageID   string `json:"messageId,omitempty"`
}

// authError is the structured error body the v1/v2 handshakes return with
// HTTP 200, per the external protocol convention.
type authError struct {
	Context     string `json:"@context"`
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

const expiresInSeconds = int(service.TokenTTL / time.Second)

// The login page always renders, even for authenticated callers: its script
// probes the token endpoint in the background and, when a session already
// exists, posts the token to the opener and closes without user interaction.
var loginPageTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Login</title></head>
<body>
<form method="post" action="/auth/v1/login">
  <input type="hidden" name="origin" value="{{.Origin}}">
  <label>User ID <input type="text" name="user"></label>
  <button type="submit">Login</button>
</form>
<script>
(function () {
  var origin = {{.OriginJS}};
  if (!origin || !window.opener) return;
  fetch("/auth/v1/token?messageId=login", {credentials: "include"})
    .then(function (res) { return res.json(); })
    .then(function (body) {
      if (body.accessToken) {
        window.opener.postMessage(body, origin);
        window.close();
      }
    });
})();
</script>
</body>
</html>
`))

var postMessageTmpl = template.Must(template.New("postMessage").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
<script>
window.opener.postMessage({{.Payload}}, {{.Origin}});
window.close();
</script>
</body>
</html>
`))

func (h *Handler) handleV1Login(c echo.Context) error {
	origin := c.QueryParam("origin")

	var buf bytes.Buffer
	err := loginPageTmpl.Execute(&buf, map[string]any{
		"Origin":   origin,
		"OriginJS": origin,
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.HTML(http.StatusOK, buf.String())
}

func (h *Handler) handleV1LoginSubmit(c echo.Context) error {
	user := c.FormValue("user")
	if user == "" {
		return presenter.BadRequestMessage(c, "user is required")
	}
	origin := c.FormValue("origin")

	sessionID := h.sessions.Create(user)
	c.SetCookie(&http.Cookie{
		Name:     h.config.CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})

	// Back to the login page; its background probe now finds the session
	// and delivers the token to the opener.
	location := "/auth/v1/login"
	if origin != "" {
		query := url.Values{}
		query.Set("origin", origin)
		location += "?" + query.Encode()
	}
	return c.Redirect(http.StatusFound, location)
}

// handleV1Logout ends the session. Tokens already issued stay valid until
// they expire; only the cookie session is revoked.
func (h *Handler) handleV1Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.config.CookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     h.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleV1Token(c echo.Context) error {
	ctx := c.Request().Context()
	messageID := c.QueryParam("messageId")
	origin := c.QueryParam("origin")

	subject := subjectFromContext(ctx)
	if subject == "" {
		// Protocol convention: the error is a structured 200 body, not an
		// HTTP error status.
		return presenter.OK(c, authError{
			Context:     iiif.AuthContextV1,
			Error:       "missingCredentials",
			Description: "no active session",
			Location:    h.config.BaseURL + "/auth/v1/login",
		})
	}

	// v1 tokens are session-wide, not bound to any resource.
	raw, err := h.auth.IssueSessionToken(ctx, subject)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	resp := tokenResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSeconds,
		MessageID:   messageID,
	}
	if origin != "" {
		return h.renderPostMessage(c, resp, origin)
	}
	return presenter.OK(c, resp)
}

// renderPostMessage delivers a token body to the opener window of a popup.
func (h *Handler) renderPostMessage(c echo.Context, payload any, origin string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	var buf bytes.Buffer
	err = postMessageTmpl.Execute(&buf, map[string]any{
		"Payload": template.JS(body),
		"Origin":  origin,
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.HTML(http.StatusOK, buf.String())
}
