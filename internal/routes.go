package internal

import (
	"net/http"
	"scorekeeper/internal/controllers"
	"scorekeeper/internal/providers"
)

func InitRoutes(backupController *controllers.BackupController, guestController *controllers.GuestController, importController *controllers.ImportController, clientLogController *controllers.ClientLogController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/backup", http.HandlerFunc(backupController.CreateBackup))
	routers.Get("/backups", http.HandlerFunc(backupController.ListBackups))
	routers.Get("/backup/{filename}", http.HandlerFunc(backupController.GetBackup))
	routers.Post("/restore-specific/{filename}", http.HandlerFunc(backupController.RestoreBackup))

	routers.Post("/guest/generate-link", http.HandlerFunc(guestController.GenerateLink))
	routers.Get("/guest/view-data", http.HandlerFunc(guestController.ViewData))

	routers.Post("/upload-class-template", http.HandlerFunc(importController.UploadClassTemplate))
	routers.Post("/log-error", http.HandlerFunc(clientLogController.LogError))
	return routers
}
