package cmd

import (
	"BoxKeeper/internal/config"
	"BoxKeeper/internal/handlers"
	"BoxKeeper/internal/services"
	"gorm.io/gorm"
)

type Server struct {
	Configuration           *config.Configuration
	DB                      *gorm.DB
	BoxService              services.BoxService
	BoxHandler              *handlers.BoxHandler
	AssignmentService       services.AssignmentService
	AssignmentHandler       *handlers.AssignmentHandler
	ScreenService           services.ScreenService
	ScreenAssignmentService services.ScreenAssignmentService
	ScreenHandler           *handlers.ScreenHandler
	LogService              services.LogService
	JanitorService          *services.Janitor
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	boxService services.BoxService,
	boxHandler *handlers.BoxHandler,
	assignmentService services.AssignmentService,
	assignmentHandler *handlers.AssignmentHandler,
	screenService services.ScreenService,
	screenAssignmentService services.ScreenAssignmentService,
	screenHandler *handlers.ScreenHandler,
	logService services.LogService,
	janitorService *services.Janitor,
) *Server {
	return &Server{
		Configuration:           configuration,
		DB:                      db,
		BoxService:              boxService,
		BoxHandler:              boxHandler,
		AssignmentService:       assignmentService,
		AssignmentHandler:       assignmentHandler,
		ScreenService:           screenService,
		ScreenAssignmentService: screenAssignmentService,
		ScreenHandler:           screenHandler,
		LogService:              logService,
		JanitorService:          janitorService,
	}
}
