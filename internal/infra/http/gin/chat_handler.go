package ginserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"compramex/internal/app/chatview"
	"compramex/internal/app/dto"
	domainchat "compramex/internal/domain/chat"
	"compramex/internal/infra/backend"
)

// ChatHandler exposes the conversation screen's data surface: mount a view,
// read its live snapshot, send, answer the consent dialog, unmount.
type ChatHandler struct {
	Views   *chatview.Manager
	Backend *backend.Client
	// BaseCtx outlives individual requests; pollers attach to it so that a
	// view keeps refreshing after the mounting request returns.
	BaseCtx context.Context
	Logger  *slog.Logger
}

// ListMyConversations backs the dashboard conversations tab.
func (h ChatHandler) ListMyConversations(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	summaries, err := h.Backend.ListConversations(c.Request.Context(), p.Identity.ID)
	if err != nil {
		h.respondBackendError(c, err, "list conversations", p.Identity.ID)
		return
	}
	c.JSON(http.StatusOK, dto.MapConversationSummaries(summaries))
}

// OpenConversation mounts the view and starts its poller.
func (h ChatHandler) OpenConversation(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	conversationID := domainchat.ConversationID(c.Param("id"))
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation id is required"})
		return
	}
	view, err := h.Views.Open(h.baseCtx(), conversationID, p.Identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapConversationView(view.Snapshot()))
}

// ViewConversation returns the current snapshot of a mounted view.
func (h ChatHandler) ViewConversation(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	view, ok := h.mountedView(c, p)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MapConversationView(view.Snapshot()))
}

// SendMessage pushes one outbound message through the compose path.
func (h ChatHandler) SendMessage(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	view, ok := h.mountedView(c, p)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := view.Send(c.Request.Context(), req.Content)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MapConversationView(view.Snapshot()))
	case errors.Is(err, domainchat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is empty"})
	case errors.Is(err, chatview.ErrConsentPending):
		c.JSON(http.StatusAccepted, dto.MapConversationView(view.Snapshot()))
	default:
		if h.Logger != nil {
			h.Logger.Error("send failed", "conversation_id", c.Param("id"), "user_id", p.Identity.ID, "error", err)
		}
		c.JSON(http.StatusBadGateway, dto.MapConversationView(view.Snapshot()))
	}
}

// Consent resolves the disclaimer dialog. Accepting resubmits the held
// message; declining keeps the draft and sends nothing.
func (h ChatHandler) Consent(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	view, ok := h.mountedView(c, p)
	if !ok {
		return
	}
	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	if *req.Accept {
		err = view.AcceptConsent(c.Request.Context())
	} else {
		err = view.DeclineConsent()
	}
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MapConversationView(view.Snapshot()))
	case errors.Is(err, domainchat.ErrNoPendingConsent):
		c.JSON(http.StatusConflict, gin.H{"error": "no consent decision pending"})
	default:
		if h.Logger != nil {
			h.Logger.Error("consent resubmit failed", "conversation_id", c.Param("id"), "error", err)
		}
		c.JSON(http.StatusBadGateway, dto.MapConversationView(view.Snapshot()))
	}
}

// CloseConversation unmounts the view and cancels its poller.
func (h ChatHandler) CloseConversation(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	conversationID := domainchat.ConversationID(c.Param("id"))
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation id is required"})
		return
	}
	h.Views.Close(conversationID, p.Identity.ID)
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

// Contact implements the catalog handler's Contactor: get-or-create the
// thread on the backend, mount it and hand the snapshot back.
func (h ChatHandler) Contact(c *gin.Context, productID, buyerID, sellerID string) {
	conv, err := h.Backend.CreateConversation(c.Request.Context(), productID, buyerID, sellerID)
	if err != nil {
		h.respondBackendError(c, err, "create conversation", buyerID)
		return
	}
	view, err := h.Views.Open(h.baseCtx(), conv.ID, buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.MapConversationView(view.Snapshot()))
}

func (h ChatHandler) mountedView(c *gin.Context, p principal) (*chatview.View, bool) {
	conversationID := domainchat.ConversationID(c.Param("id"))
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation id is required"})
		return nil, false
	}
	view, ok := h.Views.Get(conversationID, p.Identity.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not open"})
		return nil, false
	}
	return view, true
}

func (h ChatHandler) baseCtx() context.Context {
	if h.BaseCtx != nil {
		return h.BaseCtx
	}
	return context.Background()
}

func (h ChatHandler) respondBackendError(c *gin.Context, err error, op, userID string) {
	if errors.Is(err, backend.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation unavailable"})
		return
	}
	if h.Logger != nil {
		h.Logger.Error("chat proxy failed", "op", op, "user_id", userID, "error", err)
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "messaging unavailable"})
}
