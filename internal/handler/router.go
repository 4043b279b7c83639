package handler

import (
	"net/http"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, bookingHandler *api.BookingHandler, itemHandler *api.ItemHandler) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, bookingHandler, itemHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.Middleware())
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))
}

func setupRoutes(engine *gin.Engine, bookingHandler *api.BookingHandler, itemHandler *api.ItemHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	bookings := engine.Group("/bookings")
	bookings.Use(middleware.RequireSharer())
	addRoutes(bookings, []route{
		{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
		{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
		{Method: http.MethodGet, Path: "/owner", Handler: bookingHandler.ListOwner},
		{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.Decide},
	})

	items := engine.Group("/items")
	items.Use(middleware.RequireSharer())
	addRoutes(items, []route{
		{Method: http.MethodGet, Path: "", Handler: itemHandler.List},
		{Method: http.MethodGet, Path: "/:id", Handler: itemHandler.Get},
		{Method: http.MethodPost, Path: "/:id/comment", Handler: itemHandler.PostComment},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
