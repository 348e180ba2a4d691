package routers

import (
	"BoxKeeper/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupBoxRouter(app, server)
	SetupScreenRouter(app, server)
	SetupJanitorRouter(app, server)
}
