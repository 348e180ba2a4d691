package routers

import (
	"BoxKeeper/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupScreenRouter(app *fiber.App, server *cmd.Server) {
	screenHandler := server.ScreenHandler

	app.Get("/screens", screenHandler.ListScreens)
	app.Post("/screens", screenHandler.CreateScreen)
	app.Get("/screens/free", screenHandler.ListFreeScreens)
	app.Post("/screens/assign", screenHandler.AssignBox)
	app.Post("/screens/assign_user", screenHandler.AssignUser)
	app.Post("/screens/unassign", screenHandler.Unassign)
	app.Get("/screens/box/:box_id", screenHandler.GetScreenByBox)
	app.Get("/screens/user/:user_id", screenHandler.GetUserScreen)
	app.Get("/screens/:id", screenHandler.GetScreenByID)
	app.Put("/screens/:id", screenHandler.UpdateScreen)
	app.Patch("/screens/:id", screenHandler.UpdateScreen)
	app.Delete("/screens/:id", screenHandler.DeleteScreen)
}
