package http

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, auth *middleware.Auth, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	task := api.Group("/task")
	task.Use(auth.RequireUser())
	admin := middleware.RequireAdmin()
	{
		task.GET("", taskHandler.ListTasks)
		task.GET("/dashboard", taskHandler.Dashboard)
		task.GET("/report", taskHandler.Report)
		task.GET("/trashed-subtasks", taskHandler.ListTrashedSubtasks)
		task.GET("/:id", taskHandler.GetTask)
		task.GET("/:id/documents/:docId", taskHandler.GetDocument)

		task.POST("/create", admin, taskHandler.CreateTask)
		task.POST("/duplicate/:id", admin, taskHandler.DuplicateTask)
		task.POST("/activity/:id", taskHandler.PostActivity)
		task.POST("/auto-assign/:taskId/:subtaskId", admin, taskHandler.AutoAssign)
		task.POST("/assign-missing-high/:taskId/:subtaskId", admin, taskHandler.AssignMissingHigh)
		task.POST("/upload/:taskId", admin, taskHandler.UploadDocuments)

		task.PUT("/create-subtask/:id", admin, taskHandler.CreateSubtask)
		task.PUT("/update/:id", admin, taskHandler.UpdateTask)
		task.PUT("/update-subtask/:id", admin, taskHandler.UpdateSubtask)
		task.PUT("/trash-subtask/:subtaskId", taskHandler.TrashSubtask)
		task.PUT("/:id", admin, taskHandler.TrashTask)

		task.PATCH("/:taskId/subtasks/:subtaskId", admin, taskHandler.DeleteRestoreSubtask)

		task.DELETE("/delete-subtask/:taskId/:subtaskId", admin, taskHandler.DeleteSubtask)
		task.DELETE("/delete-restore", admin, taskHandler.DeleteRestoreTask)
		task.DELETE("/delete-restore/:id", admin, taskHandler.DeleteRestoreTask)
		task.DELETE("/:id/documents/:docId", admin, taskHandler.DeleteDocument)
	}
}
