package routes

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConductorMalformedReference(t *testing.T) {
	app := fiber.New()
	ConductorsRouter(app.Group("/conductors"))

	request := httptest.NewRequest("PUT", "/conductors/not-hex", strings.NewReader(`{"name": "Sunil"}`))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestDeleteConductorMalformedReference(t *testing.T) {
	app := fiber.New()
	ConductorsRouter(app.Group("/conductors"))

	request := httptest.NewRequest("DELETE", "/conductors/not-hex", nil)

	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
