package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"devevents/cmd/middleware"
	"devevents/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/api")

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.GET("/events/:slug", r.Service.GetEventBySlug)
	apiGroup.POST("/events", r.Service.CreateEvent)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.GET("/event", func(c *ginext.Context) {
		c.File("./frontend/event.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
