package routes

import (
	"context"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func BusesRouter(router fiber.Router) {
	router.Get("/", listBuses)
	router.Post("/", createBus)
	router.Get("/:busid", getBus)
	router.Put("/:busid", updateBus)
	router.Delete("/:busid", deleteBus)
}

func caseInsensitiveMatch(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(value) + "$",
		Options: "i",
	}
}

func listBuses(c *fiber.Ctx) error {
	buses := []btdf.Bus{}

	busesCollection := database.GetCollection("buses")

	cursor, _ := busesCollection.Find(context.Background(), bson.M{})

	for cursor.Next(context.TODO()) {
		var bus *btdf.Bus
		err := cursor.Decode(&bus)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Bus")
			continue
		}

		buses = append(buses, *bus)
	}

	return c.JSON(buses)
}

func createBus(c *fiber.Ctx) error {
	var bus btdf.Bus
	if err := c.BodyParser(&bus); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if bus.BusID == "" || bus.BusNumber == "" || bus.RouteName == "" || bus.ConductorName == "" || bus.MobileNo == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	busesCollection := database.GetCollection("buses")

	var existing *btdf.Bus
	busesCollection.FindOne(context.Background(), bson.M{"busid": caseInsensitiveMatch(bus.BusID)}).Decode(&existing)
	if existing != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "A bus with this ID already exists",
		})
	}

	bus.CreationDateTime = time.Now()
	bus.ModificationDateTime = bus.CreationDateTime

	result, err := busesCollection.InsertOne(context.Background(), bus)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		bus.ID = insertedID
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(bus)
}

func getBus(c *fiber.Ctx) error {
	busID := c.Params("busid")

	busesCollection := database.GetCollection("buses")
	var bus *btdf.Bus
	busesCollection.FindOne(context.Background(), bson.M{"busid": caseInsensitiveMatch(busID)}).Decode(&bus)

	if bus == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Bus matching Identifier",
		})
	}

	// Today's allocation overrides the conductor details registered on the bus
	if conductor := allocatedConductor(bus); conductor != nil {
		bus.ConductorName = conductor.Name
		bus.MobileNo = conductor.Phone
	}

	return c.JSON(bus)
}

func updateBus(c *fiber.Ctx) error {
	busID := c.Params("busid")

	busesCollection := database.GetCollection("buses")
	var bus *btdf.Bus
	busesCollection.FindOne(context.Background(), bson.M{"busid": caseInsensitiveMatch(busID)}).Decode(&bus)

	if bus == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Bus matching Identifier",
		})
	}

	var updates btdf.Bus
	if err := c.BodyParser(&updates); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	// Only overwrite the fields present in the request
	if err := copier.CopyWithOption(bus, &updates, copier.Option{IgnoreEmpty: true}); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	bus.ModificationDateTime = time.Now()

	_, err := busesCollection.ReplaceOne(context.Background(), bson.M{"_id": bus.ID}, bus)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(bus)
}

func deleteBus(c *fiber.Ctx) error {
	busID := c.Params("busid")

	busesCollection := database.GetCollection("buses")
	result, err := busesCollection.DeleteOne(context.Background(), bson.M{"busid": caseInsensitiveMatch(busID)})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Bus matching Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
