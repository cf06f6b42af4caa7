package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freebusy/config"
	"freebusy/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)
			users.POST("/:id/photo", h.uploadUserPhoto)
			users.DELETE("/:id/photo", h.deleteUserPhoto)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		h.initAvailabilityRoutes(api)
	}
}

func (h *Handler) initAvailabilityRoutes(api *gin.RouterGroup) {
	availability := api.Group("/availability")
	{
		// Каталог времен не зависит от пользователя, авторизация не нужна
		availability.GET("/slot-options", h.getSlotOptions)
		availability.GET("/weekdays", h.getWeekdayNames)

		auth := availability.Group("/", h.authMiddleware())
		{
			auth.GET("/", h.getAvailability)
			auth.PUT("/", h.saveAvailability)

			days := auth.Group("/days/:day")
			{
				days.POST("/enable", h.enableDay)
				days.POST("/disable", h.disableDay)
				days.POST("/ranges", h.appendRange)
				days.PUT("/ranges", h.replaceRanges)
				days.DELETE("/ranges/:index", h.removeRange)
			}
		}
	}
}
