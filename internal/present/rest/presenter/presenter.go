package presenter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	fmt.Println("Bad request:", err)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	fmt.Println("Bad request:", msg)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func Forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	fmt.Println("Internal error:", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// Document writes a presentation document with the version-specific JSON-LD
// profile, permissive CORS (these are public protocol endpoints regardless
// of payload-level access), and a content-based ETag.
func Document(c echo.Context, version iiif.Version, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return InternalError(c, err)
	}

	contextURI := iiif.ContextV3
	if version == iiif.Version2 {
		contextURI = iiif.ContextV2
	}

	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set("ETag", fmt.Sprintf(`"%x"`, xxh3.Hash(body)))

	contentType := fmt.Sprintf(`application/ld+json;profile="%s"`, contextURI)
	return c.Blob(http.StatusOK, contentType, body)
}
