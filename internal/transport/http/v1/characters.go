package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcanus/arcanus/internal/auth"
	"github.com/arcanus/arcanus/internal/domain"
)

// characterRequest is the body of create and update calls.
type characterRequest struct {
	Character   domain.Character     `json:"character"`
	ChatHistory []domain.ChatMessage `json:"chatHistory"`
}

// CreateCharacter stores a new character.
// POST /v1/characters
func (h *Handler) CreateCharacter(c echo.Context) error {
	var req characterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	record, err := h.service.CreateCharacter(c.Request().Context(), auth.UserID(c), req.Character, req.ChatHistory)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

// ListCharacters lists the caller's characters.
// GET /v1/characters
func (h *Handler) ListCharacters(c echo.Context) error {
	records, err := h.service.ListCharacters(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	if records == nil {
		records = []domain.CharacterRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"characters": records,
	})
}

// GetCharacter fetches one character.
// GET /v1/characters/:character_id
func (h *Handler) GetCharacter(c echo.Context) error {
	record, err := h.service.GetCharacter(c.Request().Context(), auth.UserID(c), c.Param("character_id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// UpdateCharacter replaces a character and its chat history.
// PUT /v1/characters/:character_id
func (h *Handler) UpdateCharacter(c echo.Context) error {
	var req characterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	record, err := h.service.UpdateCharacter(c.Request().Context(), auth.UserID(c), c.Param("character_id"), req.Character, req.ChatHistory)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// DeleteCharacter removes a character.
// DELETE /v1/characters/:character_id
func (h *Handler) DeleteCharacter(c echo.Context) error {
	if err := h.service.DeleteCharacter(c.Request().Context(), auth.UserID(c), c.Param("character_id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
