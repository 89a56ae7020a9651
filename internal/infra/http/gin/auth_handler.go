package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"compramex/internal/app/dto"
	domainuser "compramex/internal/domain/user"
	"compramex/internal/infra/backend"
	"compramex/internal/infra/session"
)

// AuthHandler proxies sign-up and sign-in to the hosted users API and
// caches the returned identity locally. No password ever stays on this
// side.
type AuthHandler struct {
	Backend  *backend.Client
	Sessions *session.Store
	Logger   *slog.Logger
}

func (h AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Nickname string `json:"nickname" binding:"required"`
		Colonia  string `json:"colonia" binding:"required"`
		City     string `json:"city" binding:"required"`
		State    string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	identity, err := h.Backend.Register(c.Request.Context(), backend.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Colonia:  req.Colonia,
		City:     req.City,
		State:    req.State,
	})
	if err != nil {
		h.respondBackendError(c, err, "register")
		return
	}
	token := h.Sessions.Put(identity)
	c.JSON(http.StatusCreated, dto.NewAuthResponse(identity, token))
}

func (h AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	identity, err := h.Backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domainuser.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.respondBackendError(c, err, "login")
		return
	}
	token := h.Sessions.Put(identity)
	c.JSON(http.StatusOK, dto.NewAuthResponse(identity, token))
}

func (h AuthHandler) Logout(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if ok {
		h.Sessions.Drop(p.Token)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(p.Identity))
}

func (h AuthHandler) respondBackendError(c *gin.Context, err error, op string) {
	if h.Logger != nil {
		h.Logger.Error("auth proxy failed", "op", op, "error", err)
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "account service unavailable"})
}
