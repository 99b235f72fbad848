package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func PassengersRouter(router fiber.Router) {
	router.Post("/register", registerPassenger)
	router.Post("/login", loginPassenger)
	router.Post("/logout", logoutPassenger)
}

func registerPassenger(c *fiber.Ctx) error {
	return registerAccount(c, "passengers", "passenger", true)
}

func loginPassenger(c *fiber.Ctx) error {
	return loginAccount(c, "passengers", "passenger")
}

func logoutPassenger(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{
		"success": true,
	})
}
