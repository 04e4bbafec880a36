package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rockalpatio/internal/handler"
	"rockalpatio/internal/service/auth"
	"rockalpatio/pkg/otel"
)

// ReadinessCheck 就绪检查，返回 nil 表示依赖可用
type ReadinessCheck func(ctx context.Context) error

type Deps struct {
	AuthService *auth.Service
	Auth        *handler.AuthHandler
	Clientes    *handler.ClienteHandler
	Objetivos   *handler.ObjetivoHandler
	Tareas      *handler.TareaHandler
	// 按名称的就绪检查（db、redis …）
	Ready  map[string]ReadinessCheck
	Logger *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(otel.GinMiddleware("/health", "/healthz", "/readyz", "/metrics"))
	r.Use(RequestLogMiddleware(d.Logger))
	r.Use(MetricsMiddleware())
	r.NoRoute(notFound)

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		for name, check := range d.Ready {
			if err := check(ctx); err != nil {
				c.JSON(503, gin.H{"status": name + "_not_ready", "error": err.Error()})
				return
			}
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/auth/login", d.Auth.Login)
	r.POST("/auth/logout", d.Auth.Logout)

	// Protected
	protected := r.Group("/")
	protected.Use(AuthMiddleware(d.AuthService, d.Logger))
	{
		protected.GET("/auth/me", d.Auth.Me)
		protected.GET("/dashboard", handler.Home)

		protected.GET("/clientes", d.Clientes.List)
		protected.POST("/clientes", d.Clientes.Create)
		protected.PATCH("/clientes/:id/pipeline", d.Clientes.CambiarPipeline)

		protected.GET("/objetivos", d.Objetivos.List)
		protected.POST("/objetivos", d.Objetivos.Create)
		protected.PATCH("/objetivos/:id/progreso", d.Objetivos.ActualizarProgreso)

		protected.GET("/tareas", d.Tareas.Board)
		protected.POST("/tareas", d.Tareas.Create)
		protected.PATCH("/tareas/:id/estado", d.Tareas.CambiarEstado)
	}

	return r
}
