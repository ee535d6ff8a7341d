package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/tracing"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Recurrence   *api.RecurrenceHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, tracer *tracing.Tracer) {
	setupMiddleware(engine, cfg, tracer)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, tracer *tracing.Tracer) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.Tracing(tracer))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		resources := apiGroup.Group("/resources")
		addRoutes(resources, []route{
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Availability.Check},
			{Method: http.MethodGet, Path: "/:id/pending-overlaps", Handler: h.Availability.PendingOverlaps,
				Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}},
		})

		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Reservation.Approve},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Reservation.Reject},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
			{Method: http.MethodGet, Path: "/:id/alerts", Handler: h.Reservation.ListAlerts},
			{Method: http.MethodDelete, Path: "/:id/alerts", Handler: h.Reservation.CancelAlerts},
		})

		recurrences := apiGroup.Group("/recurrences")
		addRoutes(recurrences, []route{
			{Method: http.MethodPost, Path: "/preview", Handler: h.Recurrence.Preview},
			{Method: http.MethodPost, Path: "", Handler: h.Recurrence.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Recurrence.Get},
			{Method: http.MethodPost, Path: "/:id/generate", Handler: h.Recurrence.Generate},
			{Method: http.MethodPost, Path: "/:id/activate", Handler: h.Recurrence.Activate},
			{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.Recurrence.Deactivate},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Recurrence.Delete},
		})
	}
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
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
