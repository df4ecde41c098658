package internal

import (
	"net/http"
	"petcare/internal/controllers"
	"petcare/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/pets", http.HandlerFunc(apiController.ListPets))
	routers.Post("/pets", http.HandlerFunc(apiController.AddPet))
	routers.Get("/pet", http.HandlerFunc(apiController.GetPet))
	routers.Post("/pet/update", http.HandlerFunc(apiController.UpdatePet))
	routers.Post("/pet/delete", http.HandlerFunc(apiController.DeletePet))
	routers.Post("/pet/select", http.HandlerFunc(apiController.SelectPet))
	routers.Get("/pet/upcoming", http.HandlerFunc(apiController.PetUpcoming))

	routers.Get("/tasks", http.HandlerFunc(apiController.ListTasks))
	routers.Post("/tasks", http.HandlerFunc(apiController.AddTask))
	routers.Get("/task", http.HandlerFunc(apiController.GetTask))
	routers.Post("/task/update", http.HandlerFunc(apiController.UpdateTask))
	routers.Post("/task/delete", http.HandlerFunc(apiController.DeleteTask))
	routers.Post("/task/toggle", http.HandlerFunc(apiController.ToggleTask))

	routers.Get("/user", http.HandlerFunc(apiController.GetUser))
	routers.Post("/user/update", http.HandlerFunc(apiController.UpdateUser))
	routers.Post("/user/upgrade", http.HandlerFunc(apiController.UpgradeUser))

	routers.Post("/scan", http.HandlerFunc(apiController.Scan))
	routers.Get("/dashboard", http.HandlerFunc(apiController.Dashboard))
	routers.Get("/schedule", http.HandlerFunc(apiController.Schedule))
	return routers
}
