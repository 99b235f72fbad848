package routes

import "github.com/gofiber/fiber/v2"

func AdminRouter(router fiber.Router) {
	router.Post("/register", registerAdmin)
	router.Post("/login", loginAdmin)
}

func registerAdmin(c *fiber.Ctx) error {
	return registerAccount(c, "admins", "admin", false)
}

func loginAdmin(c *fiber.Ctx) error {
	return loginAccount(c, "admins", "admin")
}
