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

func StopsRouter(router fiber.Router) {
	router.Get("/", listStops)
	router.Post("/", createStop)
	router.Get("/search", searchStops)
	router.Put("/:identifier", updateStop)
	router.Delete("/:identifier", deleteStop)
}

func listStops(c *fiber.Ctx) error {
	stops := []btdf.Stop{}

	stopsCollection := database.GetCollection("stops")

	cursor, _ := stopsCollection.Find(context.Background(), bson.M{})

	for cursor.Next(context.TODO()) {
		var stop *btdf.Stop
		err := cursor.Decode(&stop)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Stop")
			continue
		}

		stops = append(stops, *stop)
	}

	return c.JSON(stops)
}

func createStop(c *fiber.Ctx) error {
	var stop btdf.Stop
	if err := c.BodyParser(&stop); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if stop.Name == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	stop.CreationDateTime = time.Now()

	stopsCollection := database.GetCollection("stops")
	result, err := stopsCollection.InsertOne(context.Background(), stop)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		stop.ID = insertedID
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(stop)
}

func searchStops(c *fiber.Ctx) error {
	name := c.Query("name")

	if name == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A name filter must be applied to the request",
		})
	}

	stops := []btdf.Stop{}

	stopsCollection := database.GetCollection("stops")

	cursor, _ := stopsCollection.Find(context.Background(), bson.M{
		"name": primitive.Regex{Pattern: name, Options: "i"},
	})

	for cursor.Next(context.TODO()) {
		var stop *btdf.Stop
		err := cursor.Decode(&stop)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Stop")
			continue
		}

		stops = append(stops, *stop)
	}

	return c.JSON(stops)
}

func updateStop(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	stopsCollection := database.GetCollection("stops")
	var stop *btdf.Stop
	stopsCollection.FindOne(context.Background(), bson.M{"name": caseInsensitiveMatch(identifier)}).Decode(&stop)

	if stop == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Identifier",
		})
	}

	var updates btdf.Stop
	if err := c.BodyParser(&updates); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if err := copier.CopyWithOption(stop, &updates, copier.Option{IgnoreEmpty: true}); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	_, err := stopsCollection.ReplaceOne(context.Background(), bson.M{"_id": stop.ID}, stop)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stop)
}

func deleteStop(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	stopsCollection := database.GetCollection("stops")
	result, err := stopsCollection.DeleteOne(context.Background(), bson.M{"name": caseInsensitiveMatch(identifier)})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
