package routes

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TicketsRouter(router fiber.Router) {
	router.Post("/", saveTicket)
	router.Get("/passenger/:passengerid", listPassengerTickets)
}

type ticketRequest struct {
	PassengerID string `json:"passengerId"`
	PNR         string `json:"pnr"`
	TicketNo    string `json:"ticketNo"`
	Pickup      string `json:"pickup"`
	Dropoff     string `json:"dropoff"`
	TravelDate  string `json:"travelDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	BusID       string `json:"busId"`
}

func saveTicket(c *fiber.Ctx) error {
	var request ticketRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	var missingFields []string
	if request.PassengerID == "" {
		missingFields = append(missingFields, "passengerId")
	}
	if request.PNR == "" {
		missingFields = append(missingFields, "pnr")
	}
	if request.TicketNo == "" {
		missingFields = append(missingFields, "ticketNo")
	}
	if request.Pickup == "" {
		missingFields = append(missingFields, "pickup")
	}
	if request.Dropoff == "" {
		missingFields = append(missingFields, "dropoff")
	}
	if request.TravelDate == "" {
		missingFields = append(missingFields, "travelDate")
	}

	if len(missingFields) > 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields: " + strings.Join(missingFields, ", "),
		})
	}

	passengerID, err := primitive.ObjectIDFromHex(request.PassengerID)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed passenger reference",
		})
	}

	travelDate, err := time.Parse("2006-01-02", request.TravelDate)
	if err != nil {
		if travelDate, err = time.Parse(time.RFC3339, request.TravelDate); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter travelDate should be a date or RFC3339 datetime",
			})
		}
	}

	ticket := btdf.Ticket{
		PassengerID: passengerID,

		PNR:      request.PNR,
		TicketNo: request.TicketNo,

		Pickup:  request.Pickup,
		Dropoff: request.Dropoff,

		TravelDate: travelDate,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,

		BusID: request.BusID,

		CreationDateTime: time.Now(),
	}

	ticketsCollection := database.GetCollection("tickets")
	result, err := ticketsCollection.InsertOne(context.Background(), ticket)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = insertedID
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}

func listPassengerTickets(c *fiber.Ctx) error {
	passengerID, err := primitive.ObjectIDFromHex(c.Params("passengerid"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed passenger reference",
		})
	}

	tickets := []btdf.Ticket{}

	ticketsCollection := database.GetCollection("tickets")

	cursor, _ := ticketsCollection.Find(context.Background(), bson.M{"passengerid": passengerID})

	for cursor.Next(context.TODO()) {
		var ticket *btdf.Ticket
		err := cursor.Decode(&ticket)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Ticket")
			continue
		}

		tickets = append(tickets, *ticket)
	}

	return c.JSON(tickets)
}
