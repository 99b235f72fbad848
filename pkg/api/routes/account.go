package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AccountRouter(router fiber.Router) {
	router.Get("/", getAccountProfile)
}

// getAccountProfile answers with the passenger record behind the
// authenticated session.
func getAccountProfile(c *fiber.Ctx) error {
	subject, _ := c.Locals("subject").(string)

	passengerID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		c.SendStatus(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"error": "Malformed session subject",
		})
	}

	passengersCollection := database.GetCollection("passengers")

	var passenger *btdf.Passenger
	passengersCollection.FindOne(context.Background(), bson.M{"_id": passengerID}).Decode(&passenger)

	if passenger == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Passenger for this session",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"passenger": passenger,
	})
}
