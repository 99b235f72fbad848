package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yathra/yathra/pkg/api/routes"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.JourneysRouter(group.Group("/journeys"))

	routes.BusesRouter(group.Group("/buses"))
	routes.StopsRouter(group.Group("/stops"))
	routes.RouteStopsRouter(group.Group("/route_stops"))

	routes.TicketsRouter(group.Group("/tickets"))

	routes.AllocationsRouter(group.Group("/allocations"))

	routes.PassengersRouter(group.Group("/passengers"))
	routes.ConductorsRouter(group.Group("/conductors"))
	routes.AdminRouter(group.Group("/admin"))

	routes.AccountRouter(group.Group("/account", EnsureValidToken("passenger")))
	routes.StatsRouter(group.Group("/stats", EnsureValidToken("admin")))

	return webApp.Listen(listen)
}
