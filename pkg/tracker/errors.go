package tracker

import "errors"

// ErrJourneyNotStarted is returned when no active journey exists for the
// requested bus.
var ErrJourneyNotStarted = errors.New("no active journey found for this bus")

// ErrInvalidCoordinates is returned when a latitude or longitude is missing
// or not a finite number.
var ErrInvalidCoordinates = errors.New("latitude and longitude must be finite numbers")
