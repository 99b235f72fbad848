package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yathra/yathra/pkg/btdf"
)

func TestRenderArrived(t *testing.T) {
	subject, text, html := renderArrived("Kadawatha")

	assert.Equal(t, "Arrived at Kadawatha", subject)
	assert.Equal(t, "You have reached your destination: Kadawatha. Thank you for traveling with us!", text)
	assert.Contains(t, html, "<strong>Kadawatha</strong>")
	assert.Contains(t, html, "Destination Reached!")
}

func TestRenderEnRoute(t *testing.T) {
	location := btdf.Location{Latitude: 7.0032, Longitude: 79.9512}

	subject, text, html := renderEnRoute("NB-1234", "Nittambuwa", location, 10.03, 20)

	assert.Equal(t, "Live Update: Bus NB-1234 Tracking", subject)
	assert.Equal(t, "Bus NB-1234 Update: Current Location - Lat: 7.0032, Lng: 79.9512. Estimated time to reach Nittambuwa: 20 mins (10.0 km away).", text)

	assert.Contains(t, html, "<strong>NB-1234</strong>")
	assert.Contains(t, html, "<strong>Nittambuwa</strong>")
	assert.Contains(t, html, "https://www.google.com/maps?q=")
	assert.Contains(t, html, "20 minutes")
}
