package btdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSamePoint(t *testing.T) {
	colomboFort := Location{Latitude: 6.9344, Longitude: 79.8428}

	assert.InDelta(t, 0.0, colomboFort.Distance(&colomboFort), 0.000001)
}

func TestDistanceSymmetry(t *testing.T) {
	colomboFort := Location{Latitude: 6.9344, Longitude: 79.8428}
	kandy := Location{Latitude: 7.2906, Longitude: 80.6337}

	assert.InDelta(t, colomboFort.Distance(&kandy), kandy.Distance(&colomboFort), 0.000001)
}

func TestDistanceKnownSeparation(t *testing.T) {
	// One degree of latitude is about 111.19 km on a 6371 km sphere
	origin := Location{Latitude: 6.0, Longitude: 80.0}
	oneDegreeNorth := Location{Latitude: 7.0, Longitude: 80.0}

	assert.InDelta(t, 111.19, origin.Distance(&oneDegreeNorth), 0.05)
}

func TestDistanceLongRange(t *testing.T) {
	colomboFort := Location{Latitude: 6.9344, Longitude: 79.8428}
	jaffna := Location{Latitude: 9.6615, Longitude: 80.0255}

	distance := colomboFort.Distance(&jaffna)

	assert.Greater(t, distance, 300.0)
	assert.Less(t, distance, 310.0)
}

func TestEstimateETA(t *testing.T) {
	assert.Equal(t, 0, EstimateETA(0))
	assert.Equal(t, 1, EstimateETA(0.5))
	assert.Equal(t, 10, EstimateETA(5))
	assert.Equal(t, 60, EstimateETA(30))
}

func TestEstimateETARounds(t *testing.T) {
	// 5.2 km at 30 km/h is 10.4 minutes
	assert.Equal(t, 10, EstimateETA(5.2))
	// 5.3 km is 10.6 minutes
	assert.Equal(t, 11, EstimateETA(5.3))
}
