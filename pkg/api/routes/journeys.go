package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/tracker"
)

func JourneysRouter(router fiber.Router) {
	router.Post("/start", startJourney)
	router.Post("/update", updateJourneyLocation)
	router.Post("/stop", stopJourney)
	router.Get("/:identifier", getJourney)
}

type journeyRequest struct {
	BusID     string   `json:"busId"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Direction string   `json:"direction"`
}

func (r *journeyRequest) validate() error {
	if strings.TrimSpace(r.BusID) == "" || r.Lat == nil || r.Lng == nil {
		return errors.New("Missing required fields")
	}

	return nil
}

func startJourney(c *fiber.Ctx) error {
	var request journeyRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if err := request.validate(); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	journey, err := tracker.StartJourney(c.Context(), request.BusID, *request.Lat, *request.Lng, btdf.JourneyDirection(request.Direction))
	if err != nil {
		return journeyError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return journeyResponse(c, journey)
}

func updateJourneyLocation(c *fiber.Ctx) error {
	var request journeyRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	if err := request.validate(); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	journey, err := tracker.UpdateLocation(c.Context(), request.BusID, *request.Lat, *request.Lng)
	if err != nil {
		return journeyError(c, err)
	}

	return journeyResponse(c, journey)
}

func stopJourney(c *fiber.Ctx) error {
	var request journeyRequest
	if err := c.BodyParser(&request); err != nil || strings.TrimSpace(request.BusID) == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing Bus ID",
		})
	}

	stoppedCount, err := tracker.StopJourney(c.Context(), request.BusID)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Journey stopped",
		"stoppedCount": stoppedCount,
	})
}

func getJourney(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	journey := tracker.FindActiveJourney(c.Context(), identifier)

	if journey == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error":   "No active journey found",
			"details": "Make sure you started the journey first.",
		})
	}

	journey.GetBus()

	journeyReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, journey)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce journey",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"journey":    journeyReduced,
		"busDetails": journey.Bus,
		"address":    reverseGeocode(journey.CurrentLocation),
	})
}

func journeyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tracker.ErrJourneyNotStarted):
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error":   "No active journey found for this bus",
			"details": "Make sure you started the journey first.",
		})
	case errors.Is(err, tracker.ErrInvalidCoordinates):
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func journeyResponse(c *fiber.Ctx, journey *btdf.Journey) error {
	journeyReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, journey)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce journey",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"journey": journeyReduced,
	})
}

func reverseGeocode(location btdf.Location) string {
	url := fmt.Sprintf(
		"https://nominatim.openstreetmap.org/reverse?format=json&lat=%f&lon=%f&zoom=18&addressdetails=1",
		location.Latitude, location.Longitude,
	)

	agent := fiber.Get(url)
	agent.UserAgent("YathraTracker/1.0")
	agent.Timeout(5 * time.Second)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 || statusCode != fiber.StatusOK {
		return "Location name unavailable"
	}

	var response struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &response); err != nil || response.DisplayName == "" {
		return "Unknown Location"
	}

	return response.DisplayName
}
