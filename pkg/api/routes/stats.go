package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

func StatsRouter(router fiber.Router) {
	router.Get("/", getStats)
}

// getStats reports record counts for the admin dashboard.
func getStats(c *fiber.Ctx) error {
	busesCollection := database.GetCollection("buses")
	journeysCollection := database.GetCollection("journeys")
	passengersCollection := database.GetCollection("passengers")
	conductorsCollection := database.GetCollection("conductors")
	ticketsCollection := database.GetCollection("tickets")
	stopsCollection := database.GetCollection("stops")

	buses, _ := busesCollection.CountDocuments(context.Background(), bson.D{})
	activeJourneys, _ := journeysCollection.CountDocuments(context.Background(), bson.M{"status": btdf.JourneyStatusActive})
	passengers, _ := passengersCollection.CountDocuments(context.Background(), bson.D{})
	conductors, _ := conductorsCollection.CountDocuments(context.Background(), bson.D{})
	tickets, _ := ticketsCollection.CountDocuments(context.Background(), bson.D{})
	stops, _ := stopsCollection.CountDocuments(context.Background(), bson.D{})

	return c.JSON(fiber.Map{
		"buses":          buses,
		"activeJourneys": activeJourneys,
		"passengers":     passengers,
		"conductors":     conductors,
		"tickets":        tickets,
		"stops":          stops,
	})
}
