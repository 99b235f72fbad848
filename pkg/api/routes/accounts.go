package routes

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yathra/yathra/pkg/auth"
	"github.com/yathra/yathra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

const minimumPasswordLength = 6

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func checkPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// registerAccount inserts a credential record for the collection and answers
// with a fresh session token. Shared by the passenger, conductor and admin
// registration endpoints.
func registerAccount(c *fiber.Ctx, collectionName string, role string, requirePhone bool) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	if request.Name == "" || request.Email == "" || request.Password == "" || (requirePhone && request.Phone == "") {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if len(request.Password) < minimumPasswordLength {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}

	collection := database.GetCollection(collectionName)

	count, err := collection.CountDocuments(context.Background(), bson.M{"email": request.Email})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if count > 0 {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "An account with this email already exists",
		})
	}

	passwordHash, err := hashPassword(request.Password)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := collection.InsertOne(context.Background(), bson.M{
		"name":             request.Name,
		"email":            request.Email,
		"phone":            request.Phone,
		"password":         passwordHash,
		"creationdatetime": time.Now(),
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return issueToken(c, fiber.StatusCreated, accountSubject(result.InsertedID), role)
}

// loginAccount validates credentials against the collection and answers with
// a session token.
func loginAccount(c *fiber.Ctx, collectionName string, role string) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Malformed request body",
		})
	}

	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	if request.Email == "" || request.Password == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	collection := database.GetCollection(collectionName)

	var account bson.M
	collection.FindOne(context.Background(), bson.M{"email": request.Email}).Decode(&account)

	if account == nil {
		c.SendStatus(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	passwordHash, _ := account["password"].(string)
	if !checkPassword(passwordHash, request.Password) {
		c.SendStatus(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	return issueToken(c, fiber.StatusOK, accountSubject(account["_id"]), role)
}

func issueToken(c *fiber.Ctx, status int, subject string, role string) error {
	token, err := auth.GenerateToken(subject, role)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})

	c.Status(status)
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

func accountSubject(id interface{}) string {
	type hexer interface{ Hex() string }

	if objectID, ok := id.(hexer); ok {
		return objectID.Hex()
	}

	return ""
}
