package routes

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ConductorsRouter(router fiber.Router) {
	router.Post("/register", registerConductor)
	router.Post("/login", loginConductor)

	router.Get("/", listConductors)
	router.Put("/:id", updateConductor)
	router.Delete("/:id", deleteConductor)
}

func registerConductor(c *fiber.Ctx) error {
	return registerAccount(c, "conductors", "conductor", true)
}

func loginConductor(c *fiber.Ctx) error {
	return loginAccount(c, "conductors", "conductor")
}

func listConductors(c *fiber.Ctx) error {
	conductors := []btdf.Conductor{}

	conductorsCollection := database.GetCollection("conductors")

	cursor, _ := conductorsCollection.Find(context.Background(), bson.M{})

	for cursor.Next(context.TODO()) {
		var conductor *btdf.Conductor
		err := cursor.Decode(&conductor)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Conductor")
			continue
		}

		conductors = append(conductors, *conductor)
	}

	return c.JSON(conductors)
}

func updateConductor(c *fiber.Ctx) error {
	conductorID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed conductor reference",
		})
	}

	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	updates := bson.M{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(request.Email))
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.Password != "" {
		passwordHash, err := hashPassword(request.Password)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		updates["password"] = passwordHash
	}

	if len(updates) == 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	conductorsCollection := database.GetCollection("conductors")

	result, err := conductorsCollection.UpdateOne(context.Background(), bson.M{"_id": conductorID}, bson.M{"$set": updates})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Conductor matching Identifier",
		})
	}

	var conductor *btdf.Conductor
	conductorsCollection.FindOne(context.Background(), bson.M{"_id": conductorID}).Decode(&conductor)

	return c.JSON(conductor)
}

func deleteConductor(c *fiber.Ctx) error {
	conductorID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed conductor reference",
		})
	}

	conductorsCollection := database.GetCollection("conductors")
	result, err := conductorsCollection.DeleteOne(context.Background(), bson.M{"_id": conductorID})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Conductor matching Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
