package v1

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcanus/arcanus/internal/auth"
	"github.com/arcanus/arcanus/internal/domain"
)

// ChatRequest is one conversational turn: the transcript so far plus the
// character state the client holds.
type ChatRequest struct {
	Messages  []domain.ChatMessage `json:"messages"`
	Character domain.Character     `json:"character"`
}

// Chat runs one chat turn and streams the events back as SSE.
// POST /v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages is required"})
	}

	// The Flusher check comes before any write; after the status line goes
	// out a failure could no longer be reported as anything but a 200.
	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
	}

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	err := h.service.RunTurn(ctx, req.Character, req.Messages, auth.UserID(c), func(ev domain.StreamEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Response().Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// The stream already carried error and done events where possible;
		// the status code cannot change after the first write.
		log.Printf("ERROR: chat stream ended with error: %v", err)
	}

	return nil
}
