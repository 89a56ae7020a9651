package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"compramex/internal/infra/config"
	"compramex/internal/infra/obs"
)

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type CatalogHTTP interface {
	Search(c *gin.Context)
	Categories(c *gin.Context)
	Get(c *gin.Context)
	BitcoinQuote(c *gin.Context)
	Contact(c *gin.Context)
}

type ChatHTTP interface {
	ListMyConversations(c *gin.Context)
	OpenConversation(c *gin.Context)
	ViewConversation(c *gin.Context)
	SendMessage(c *gin.Context)
	Consent(c *gin.Context)
	CloseConversation(c *gin.Context)
}

type DashboardHTTP interface {
	ListProducts(c *gin.Context)
	CreateProduct(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeactivateProduct(c *gin.Context)
	Stats(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Catalog        CatalogHTTP
	Chat           ChatHTTP
	Dashboard      DashboardHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Catalog != nil {
		api.GET("/products", h.Catalog.Search)
		api.GET("/categories", h.Catalog.Categories)
		api.GET("/products/:id", h.Catalog.Get)
		api.GET("/products/:id/btc-quote", h.Catalog.BitcoinQuote)
		api.POST("/products/:id/contact", h.Catalog.Contact)
	}
	if h.Chat != nil {
		api.GET("/conversations", h.Chat.ListMyConversations)
		api.POST("/conversations/:id/open", h.Chat.OpenConversation)
		api.GET("/conversations/:id/view", h.Chat.ViewConversation)
		api.POST("/conversations/:id/messages", h.Chat.SendMessage)
		api.POST("/conversations/:id/consent", h.Chat.Consent)
		api.POST("/conversations/:id/close", h.Chat.CloseConversation)
	}
	if h.Dashboard != nil {
		meGroup := api.Group("/me")
		meGroup.GET("/products", h.Dashboard.ListProducts)
		meGroup.POST("/products", h.Dashboard.CreateProduct)
		meGroup.PUT("/products/:id", h.Dashboard.UpdateProduct)
		meGroup.DELETE("/products/:id", h.Dashboard.DeactivateProduct)
		meGroup.GET("/stats", h.Dashboard.Stats)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
