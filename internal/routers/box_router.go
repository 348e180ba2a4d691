package routers

import (
	"BoxKeeper/cmd"
	"github.com/gofiber/fiber/v2"
)

// Static paths are registered before /boxes/:id so they are not captured by it.
func SetupBoxRouter(app *fiber.App, server *cmd.Server) {
	boxHandler := server.BoxHandler
	assignmentHandler := server.AssignmentHandler

	app.Get("/boxes", boxHandler.ListBoxes)
	app.Post("/boxes", boxHandler.CreateBox)
	app.Get("/boxes/free", boxHandler.ListFreeBoxes)
	app.Get("/boxes/user/:user_id", boxHandler.GetBoxByUser)
	app.Post("/boxes/assign", assignmentHandler.Assign)
	app.Post("/boxes/assign_user_to_free_box", assignmentHandler.AssignToFreeBox)
	app.Post("/boxes/unassign", assignmentHandler.Unassign)
	app.Get("/boxes/:id", boxHandler.GetBoxByID)
	app.Put("/boxes/:id", boxHandler.UpdateBox)
	app.Patch("/boxes/:id", boxHandler.UpdateBox)
	app.Delete("/boxes/:id", boxHandler.DeleteBox)
}
