package app

import (
	"fmt"
	"strings"

	"jobmarket/internal/delivery/http/handler"
	"jobmarket/internal/delivery/http/middleware"
	"jobmarket/internal/delivery/http/routes"
	v1 "jobmarket/internal/delivery/http/routes/v1"
	"jobmarket/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup closes the container.
func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware().Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": c.DB,
		"redis":    c.Cache,
	})

	registry := routes.NewRegistry(
		health,
		ws.NewHandler(c.Hub),
		v1.Handlers{
			Jobs:      handler.NewJobsHandler(c.Jobs, c.JobSearch),
			Courses:   handler.NewCoursesHandler(c.Courses),
			Skills:    handler.NewSkillHandler(c.Skills),
			Ingestion: handler.NewIngestionHandler(c.Ingestion),
		},
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
