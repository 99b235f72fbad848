package notify

import (
	"fmt"

	"github.com/yathra/yathra/pkg/btdf"
)

func renderArrived(dropoffLocation string) (string, string, string) {
	subject := fmt.Sprintf("Arrived at %s", dropoffLocation)

	text := fmt.Sprintf("You have reached your destination: %s. Thank you for traveling with us!", dropoffLocation)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 30px;">
<h1 style="color: #2563eb;">Yathra Bus Tracking</h1>
<h2 style="color: #059669;">Destination Reached!</h2>
<p>Your bus has arrived at your destination: <strong>%s</strong>.</p>
<p>Thank you for choosing Yathra. We hope you had a pleasant journey!</p>
<p style="font-size: 12px; color: #94a3b8;">Yathra Automated Arrival Notification</p>
</div>`, dropoffLocation)

	return subject, text, html
}

func renderEnRoute(busNumber string, dropoffLocation string, location btdf.Location, distanceKm float64, etaMinutes int) (string, string, string) {
	subject := fmt.Sprintf("Live Update: Bus %s Tracking", busNumber)

	text := fmt.Sprintf(
		"Bus %s Update: Current Location - Lat: %.4f, Lng: %.4f. Estimated time to reach %s: %d mins (%.1f km away).",
		busNumber, location.Latitude, location.Longitude, dropoffLocation, etaMinutes, distanceKm,
	)

	mapLink := fmt.Sprintf("https://www.google.com/maps?q=%f,%f", location.Latitude, location.Longitude)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 30px;">
<h1 style="color: #2563eb;">Yathra Bus Tracking</h1>
<h2>Tracking Update</h2>
<p>Your bus (<strong>%s</strong>) is currently on its way to <strong>%s</strong>.</p>
<p><strong>Distance remaining:</strong> %.1f km</p>
<p><strong>Estimated arrival:</strong> %d minutes</p>
<p><a href="%s">View Live Location on Maps</a></p>
<p>Next update will be sent in 15 minutes.</p>
<p style="font-size: 12px; color: #94a3b8;">Yathra Tracking System</p>
</div>`, busNumber, dropoffLocation, distanceKm, etaMinutes, mapLink)

	return subject, text, html
}
