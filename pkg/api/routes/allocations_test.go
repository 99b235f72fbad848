package routes

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllocationDate(t *testing.T) {
	date, err := parseAllocationDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), date)

	// Datetimes collapse onto their calendar day
	date, err = parseAllocationDate("2026-03-14T18:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), date)

	_, err = parseAllocationDate("14/03/2026")
	assert.Error(t, err)
}

func TestParseAllocationDateSameDayEquality(t *testing.T) {
	morning, err := parseAllocationDate("2026-03-14T06:00:00Z")
	require.NoError(t, err)
	evening, err := parseAllocationDate("2026-03-14T22:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, morning, evening)
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) int {
	t.Helper()

	request := httptest.NewRequest("POST", path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request)
	require.NoError(t, err)

	return response.StatusCode
}

func TestCreateAllocationValidation(t *testing.T) {
	app := fiber.New()
	AllocationsRouter(app.Group("/allocations"))

	// Missing fields
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/allocations/", `{}`))
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/allocations/",
		`{"busId": "64f1b2c3d4e5f6a7b8c9d0e1", "date": "2026-03-14"}`))

	// Malformed references
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/allocations/",
		`{"busId": "not-hex", "conductorId": "64f1b2c3d4e5f6a7b8c9d0e2", "date": "2026-03-14"}`))
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/allocations/",
		`{"busId": "64f1b2c3d4e5f6a7b8c9d0e1", "conductorId": "not-hex", "date": "2026-03-14"}`))

	// Unparseable date
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/allocations/",
		`{"busId": "64f1b2c3d4e5f6a7b8c9d0e1", "conductorId": "64f1b2c3d4e5f6a7b8c9d0e2", "date": "next tuesday"}`))
}

func TestDeleteAllocationMalformedReference(t *testing.T) {
	app := fiber.New()
	AllocationsRouter(app.Group("/allocations"))

	request := httptest.NewRequest("DELETE", "/allocations/not-hex", nil)
	response, err := app.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
