package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func AllocationsRouter(router fiber.Router) {
	router.Get("/", listAllocations)
	router.Post("/", createAllocation)
	router.Delete("/:id", deleteAllocation)
}

type allocationRequest struct {
	BusID       string `json:"busId"`
	ConductorID string `json:"conductorId"`
	Date        string `json:"date"`
}

type allocationListItem struct {
	Allocation btdf.Allocation `json:"allocation"`
	Bus        *btdf.Bus       `json:"bus"`
	Conductor  *btdf.Conductor `json:"conductor"`
}

func listAllocations(c *fiber.Ctx) error {
	allocations := []allocationListItem{}

	allocationsCollection := database.GetCollection("allocations")
	busesCollection := database.GetCollection("buses")
	conductorsCollection := database.GetCollection("conductors")

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, _ := allocationsCollection.Find(context.Background(), bson.M{}, opts)

	for cursor.Next(context.TODO()) {
		var allocation *btdf.Allocation
		err := cursor.Decode(&allocation)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Allocation")
			continue
		}

		item := allocationListItem{Allocation: *allocation}
		busesCollection.FindOne(context.Background(), bson.M{"_id": allocation.BusRef}).Decode(&item.Bus)
		conductorsCollection.FindOne(context.Background(), bson.M{"_id": allocation.ConductorRef}).Decode(&item.Conductor)

		allocations = append(allocations, item)
	}

	return c.JSON(allocations)
}

func createAllocation(c *fiber.Ctx) error {
	var request allocationRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if request.BusID == "" || request.ConductorID == "" || request.Date == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Bus, Conductor and Date are required",
		})
	}

	busRef, err := primitive.ObjectIDFromHex(request.BusID)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed bus reference",
		})
	}

	conductorRef, err := primitive.ObjectIDFromHex(request.ConductorID)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed conductor reference",
		})
	}

	date, err := parseAllocationDate(request.Date)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter date should be a date or RFC3339 datetime",
		})
	}

	allocationsCollection := database.GetCollection("allocations")

	var existing *btdf.Allocation
	allocationsCollection.FindOne(context.Background(), bson.M{"busref": busRef, "date": date}).Decode(&existing)
	if existing != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "This bus is already allocated on this date",
		})
	}

	existing = nil
	allocationsCollection.FindOne(context.Background(), bson.M{"conductorref": conductorRef, "date": date}).Decode(&existing)
	if existing != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "This conductor is already allocated on this date",
		})
	}

	allocation := btdf.Allocation{
		BusRef:       busRef,
		ConductorRef: conductorRef,

		Date: date,

		CreationDateTime: time.Now(),
	}

	result, err := allocationsCollection.InsertOne(context.Background(), allocation)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		allocation.ID = insertedID
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"success":    true,
		"allocation": allocation,
	})
}

func deleteAllocation(c *fiber.Ctx) error {
	allocationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed allocation reference",
		})
	}

	allocationsCollection := database.GetCollection("allocations")
	result, err := allocationsCollection.DeleteOne(context.Background(), bson.M{"_id": allocationID})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Allocation matching Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// parseAllocationDate normalises the requested day to UTC midnight so the
// per-day uniqueness checks compare equal regardless of the caller's zone.
func parseAllocationDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

// allocatedConductor finds the conductor allocated to the bus for the current
// day. The window is padded by 12 hours either side to absorb zone skew
// between the admin frontend and the stored day stamps.
func allocatedConductor(bus *btdf.Bus) *btdf.Conductor {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	allocationsCollection := database.GetCollection("allocations")

	var allocation *btdf.Allocation
	allocationsCollection.FindOne(context.Background(), bson.M{
		"busref": bus.ID,
		"date": bson.M{
			"$gte": startOfDay.Add(-12 * time.Hour),
			"$lt":  startOfDay.Add(36 * time.Hour),
		},
	}).Decode(&allocation)

	if allocation == nil {
		return nil
	}

	conductorsCollection := database.GetCollection("conductors")

	var conductor *btdf.Conductor
	conductorsCollection.FindOne(context.Background(), bson.M{"_id": allocation.ConductorRef}).Decode(&conductor)

	return conductor
}
