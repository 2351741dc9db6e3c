package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"staff-portal-backend/config"
	apiv1 "staff-portal-backend/controllers/v1"
	"staff-portal-backend/fiberlog"
	"staff-portal-backend/initializers"
	"staff-portal-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimit), "/picture", "/images"))
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.ProfileRequired())
	apiV1.Use(middleware.RbacMiddleware())

	apiv1.InitProfileApiRouters(apiV1)
	apiv1.InitDashboardApiRouters(apiV1)
	apiv1.InitDirectoryApiRouters(apiV1)
	apiv1.InitEmployeesApiRouters(apiV1)
	apiv1.InitLeaveApiRouters(apiV1)
	apiv1.InitTasksApiRouters(apiV1)
	apiv1.InitAnnouncementsApiRouters(apiV1)
	apiv1.InitProjectUpdatesApiRouters(apiV1)
	apiv1.InitReportsApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
