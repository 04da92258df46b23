package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handler — HTTP-обработчики корзины поверх ports.CartService.
type Handler struct {
	service        ports.CartService
	log            ports.Logger
	handlerTimeout time.Duration
}

// NewHandler — handlerTimeout <= 0 отключает таймаут на запрос.
func NewHandler(service ports.CartService, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, handlerTimeout: handlerTimeout}
}

// RouterOptions — всё, что не относится к обработчикам.
type RouterOptions struct {
	StaticDir string
	// OTelServiceName — пустое значение отключает otelgin.
	OTelServiceName string
	Session         httpx.CartSessionOptions
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if opts.OTelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OTelServiceName))
	}
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/cart", httpx.CartSessionMiddleware(opts.Session), h.timeout())
	{
		api.GET("", h.getCart)
		api.DELETE("", h.clearCart)
		api.GET("/count", h.countItems)
		api.POST("/items", h.addItem)
		api.PATCH("/items/:id", h.updateQuantity)
		api.DELETE("/items/:id", h.removeItem)
		api.POST("/products/:id", h.addProduct)
		api.POST("/checkout", h.checkout)
	}

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
		r.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
	}

	return r
}

// timeout — дедлайн на обработку запроса (хранилище, каталог).
func (h *Handler) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.handlerTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.handlerTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
