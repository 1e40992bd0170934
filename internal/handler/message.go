package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/model"
	"github.com/iliyamo/code-redemption/internal/repository"
)

// MessageHandler serves the support message log.
type MessageHandler struct {
	Messages *repository.MessageRepo
}

func NewMessageHandler(m *repository.MessageRepo) *MessageHandler {
	return &MessageHandler{Messages: m}
}

type postMessageReq struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
	Role     string `json:"role"`
}

// Post handles POST /api/messages.  Senders without an identity default
// to the anonymous user; role defaults to "user".
func (h *MessageHandler) Post(c echo.Context) error {
	var req postMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}
	if req.Username == "" {
		req.Username = "User"
	}
	if req.Role == "" {
		req.Role = "user"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	m := &model.Message{
		UserID:   req.UserID,
		Username: req.Username,
		Message:  req.Message,
		Role:     req.Role,
	}
	if err := h.Messages.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messageId": m.ID})
}

// List handles GET /api/messages.  An optional ?user_id= narrows the
// log to one sender's thread.
func (h *MessageHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	messages, err := h.Messages.List(ctx, c.QueryParam("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, messages)
}

// UnreadCount handles GET /api/messages/unread/count.
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	n, err := h.Messages.UnreadCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// MarkRead handles PUT /api/messages/:id/read.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Messages.MarkRead(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
