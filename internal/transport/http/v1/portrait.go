package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcanus/arcanus/internal/auth"
	"github.com/arcanus/arcanus/internal/domain"
)

// portraitRequest asks for a portrait of the given character state.
// CharacterID is optional; when set and owned by the caller, the stored
// record picks up the new portrait URL.
type portraitRequest struct {
	Character   domain.Character `json:"character"`
	CharacterID string           `json:"characterId"`
}

// GeneratePortrait renders an AI portrait for a character.
// POST /v1/portrait
func (h *Handler) GeneratePortrait(c echo.Context) error {
	var req portraitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.GeneratePortrait(c.Request().Context(), auth.UserID(c), req.Character, req.CharacterID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
