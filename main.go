package main

import (
	"BoxKeeper/database"
	"BoxKeeper/internal/routers"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	server, err := InitializeServer()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDatabase(server.DB)

	cfg := server.Configuration
	if err := server.JanitorService.StartAuditCycle(); err != nil {
		log.Fatalf("Failed to schedule audit job: %v", err)
	}
	defer server.JanitorService.StopAuditCycle()

	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "BoxKeeper",
	})

	app.Use(logger.New())
	routers.SetupRoutes(app, server)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		server.LogService.Log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			server.LogService.Log.WithError(err).Error("shutdown failed")
		}
	}()

	server.LogService.Log.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Driver,
	}).Info("BoxKeeper listening")
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		server.LogService.Log.Fatalf("Failed to start server: %v", err)
	}
}
