package rest

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest/presenter"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/service"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/usecase"
)

type Handler struct {
	config       domain.Config
	presentation *usecase.PresentationUsecase
	auth         *service.AuthService
	sessions     *service.SessionService
}

func NewHandler(
	config domain.Config,
	presentation *usecase.PresentationUsecase,
	auth *service.AuthService,
	sessions *service.SessionService,
) *Handler {
	return &Handler{
		config:       config,
		presentation: presentation,
		auth:         auth,
		sessions:     sessions,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/iiif/3/collection/:id", h.handleCollectionV3)
	e.GET("/iiif/2/collection/:id", h.handleCollectionV2)
	e.GET("/iiif/3/:id/manifest", h.handleManifestV3)
	e.GET("/iiif/2/:id/manifest", h.handleManifestV2)

	e.GET("/auth/v1/login", h.handleV1Login)
	e.POST("/auth/v1/login", h.handleV1LoginSubmit)
	e.GET("/auth/v1/token", h.handleV1Token)
	e.GET("/auth/v1/logout", h.handleV1Logout)

	e.GET("/auth/v2/access", h.handleV2Access)
	e.GET("/auth/v2/probe", h.handleV2Probe)

	e.GET("/auth/probe/:id", h.handleResourceProbe)
	e.GET("/auth/access/:id", h.handleResourceAccess)
	e.GET("/auth/token/:id", h.handleResourceToken)
	e.POST("/auth/token/:id", h.handleResourceToken)
}

func (h *Handler) handleCollectionV3(c echo.Context) error {
	return h.handleCollection(c, iiif.Version3)
}

func (h *Handler) handleCollectionV2(c echo.Context) error {
	return h.handleCollection(c, iiif.Version2)
}

func (h *Handler) handleCollection(c echo.Context, version iiif.Version) error {
	ctx := c.Request().Context()

	// Identifier errors are reported before any auth or storage call.
	id, err := iiif.ParseResourceID(c.Param("id"))
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if id.HasItem() {
		return presenter.BadRequestMessage(c, "collection identifier must have exactly 2 segments")
	}

	subject := subjectFromContext(ctx)
	lang := c.QueryParam("lang")

	doc, err := h.presentation.GetCollection(ctx, id, version, subject, lang)
	if err != nil {
		return presentError(c, err)
	}
	return presenter.Document(c, version, doc)
}

func (h *Handler) handleManifestV3(c echo.Context) error {
	return h.handleManifest(c, iiif.Version3)
}

func (h *Handler) handleManifestV2(c echo.Context) error {
	return h.handleManifest(c, iiif.Version2)
}

func (h *Handler) handleManifest(c echo.Context, version iiif.Version) error {
	ctx := c.Request().Context()

	id, err := iiif.ParseResourceID(c.Param("id"))
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	if !id.HasItem() {
		return presenter.BadRequestMessage(c, "manifest identifier must have exactly 3 segments")
	}

	subject := subjectFromContext(ctx)
	lang := c.QueryParam("lang")

	doc, err := h.presentation.GetManifest(ctx, id, version, subject, lang)
	if err != nil {
		return presentError(c, err)
	}
	return presenter.Document(c, version, doc)
}

// presentError maps domain errors onto real HTTP statuses for the plain
// presentation endpoints. The auth handshakes carry their own per-protocol
// wire shapes and do not use this mapping.
func presentError(c echo.Context, err error) error {
	span := trace.SpanFromContext(c.Request().Context())
	span.RecordError(err)

	switch {
	case errors.Is(err, iiif.ErrMalformedID):
		return presenter.BadRequest(c, err)
	case errors.Is(err, iiif.ErrUnsupportedVersion):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return presenter.Unauthorized(c, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return presenter.Forbidden(c, "access denied")
	default:
		return presenter.InternalError(c, err)
	}
}

func subjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(domain.SubjectCtxKey).(string); ok {
		return v
	}
	return ""
}
