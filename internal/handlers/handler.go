package handlers

import (
	"sync"

	_ "heating_scheduler/docs"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	registerValidators()
	return &Handler{services: services, log: log}
}

var validatorsOnce sync.Once

// registerValidators adds the custom binding tags to gin's validator engine.
func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("hms", validateTimeOfDay)
		}
	})
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerScheduleRoutes(router)
	h.registerBoostRoutes(router)
	h.registerClimateRoutes(router)
	h.registerMonitoringRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerScheduleRoutes(r *gin.Engine) {
	sched := r.Group("/schedule")
	{
		sched.GET("", h.getSchedule)
		// Body example: {"name":"morning","time_period":{"start":"06:00:00","end":"08:00:00"},"heating_state":"ON"}
		sched.POST("", h.addScheduleEntry)
		sched.DELETE("/:id", h.deleteScheduleEntry)
	}
}

func (h *Handler) registerBoostRoutes(r *gin.Engine) {
	r.POST("/boost_all", h.boostAll)
	r.DELETE("/boost_all", h.clearBoost)
}

func (h *Handler) registerClimateRoutes(r *gin.Engine) {
	cl := r.Group("/climate")
	{
		cl.GET("", h.listClimate)
		cl.POST("/:entity_id/temperature", h.setTemperature)
	}
}

func (h *Handler) registerMonitoringRoutes(r *gin.Engine) {
	r.GET("/status", h.getStatus)
	r.GET("/logs", h.getLogs)
}
