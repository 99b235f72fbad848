package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func RouteStopsRouter(router fiber.Router) {
	router.Get("/", listRouteStops)
	router.Post("/", createRouteStop)
	router.Put("/:id", updateRouteStop)
	router.Delete("/:id", deleteRouteStop)
}

func listRouteStops(c *fiber.Ctx) error {
	query := bson.M{}

	if depoName := c.Query("depo"); depoName != "" {
		query["deponame"] = caseInsensitiveMatch(depoName)
	}

	routeStops := []btdf.RouteStop{}

	routeStopsCollection := database.GetCollection("route_stops")

	cursor, _ := routeStopsCollection.Find(context.Background(), query)

	for cursor.Next(context.TODO()) {
		var routeStop *btdf.RouteStop
		err := cursor.Decode(&routeStop)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode RouteStop")
			continue
		}

		routeStops = append(routeStops, *routeStop)
	}

	return c.JSON(routeStops)
}

func createRouteStop(c *fiber.Ctx) error {
	var routeStop btdf.RouteStop
	if err := c.BodyParser(&routeStop); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if routeStop.Name == "" || routeStop.DepoName == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	routeStop.CreationDateTime = time.Now()

	routeStopsCollection := database.GetCollection("route_stops")
	result, err := routeStopsCollection.InsertOne(context.Background(), routeStop)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		routeStop.ID = insertedID
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(routeStop)
}

func updateRouteStop(c *fiber.Ctx) error {
	routeStopID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed route stop reference",
		})
	}

	routeStopsCollection := database.GetCollection("route_stops")
	var routeStop *btdf.RouteStop
	routeStopsCollection.FindOne(context.Background(), bson.M{"_id": routeStopID}).Decode(&routeStop)

	if routeStop == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Route Stop matching Identifier",
		})
	}

	var updates btdf.RouteStop
	if err := c.BodyParser(&updates); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if err := copier.CopyWithOption(routeStop, &updates, copier.Option{IgnoreEmpty: true}); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	_, err = routeStopsCollection.ReplaceOne(context.Background(), bson.M{"_id": routeStop.ID}, routeStop)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(routeStop)
}

func deleteRouteStop(c *fiber.Ctx) error {
	routeStopID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed route stop reference",
		})
	}

	routeStopsCollection := database.GetCollection("route_stops")
	result, err := routeStopsCollection.DeleteOne(context.Background(), bson.M{"_id": routeStopID})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Route Stop matching Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
