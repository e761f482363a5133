package router

import (
	"net/http"

	"therapy-scheduler/src/controller"
	"therapy-scheduler/src/db"
	"therapy-scheduler/src/middleware"
	"therapy-scheduler/src/repository"
	"therapy-scheduler/src/service"
	"therapy-scheduler/src/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter sets up the router for the therapy scheduler.
// It creates a new gin.Engine, wires the repository, service and controller,
// and registers the scheduling routes.
func NewRouter(database *db.DB, notifier *service.QueueNotifier) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CallerAudit())

	repo := repository.NewSessionRepository(database)
	schedulerService := service.NewSchedulerService(repo, notifier)
	schedulerController := controller.NewSchedulerController(schedulerService)

	router.POST("/schedule", schedulerController.Schedule)
	router.GET("/ready", schedulerController.ListReady)
	router.GET("/waiting", schedulerController.ListWaiting)
	router.PATCH("/cancel/:sessionId", schedulerController.MoveToWaiting)
	router.POST("/reschedule", schedulerController.Reschedule)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "Not Found", "no such route", c.Request.URL.Path)
	})

	return router
}
