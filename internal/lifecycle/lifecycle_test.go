package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

func locatedIncident(status models.IncidentStatus) *models.Incident {
	return &models.Incident{
		Status:   status,
		Location: &geo.Coordinate{Latitude: 32.7266, Longitude: 74.8570},
	}
}

func TestValidate_HappyPath(t *testing.T) {
	assert.NoError(t, Validate(locatedIncident(models.StatusPending), models.StatusAssigned))
	assert.NoError(t, Validate(locatedIncident(models.StatusAssigned), models.StatusDispatched))
	assert.NoError(t, Validate(locatedIncident(models.StatusDispatched), models.StatusResolved))
}

func TestValidate_Reassignment(t *testing.T) {
	// assigned -> assigned разрешен только из статуса assigned
	assert.NoError(t, Validate(locatedIncident(models.StatusAssigned), models.StatusAssigned))
	assert.ErrorIs(t, Validate(locatedIncident(models.StatusDispatched), models.StatusAssigned), ErrInvalidTransition)
	assert.ErrorIs(t, Validate(locatedIncident(models.StatusResolved), models.StatusAssigned), ErrInvalidTransition)
}

func TestValidate_NoBackwardTransitions(t *testing.T) {
	backward := []struct {
		from, to models.IncidentStatus
	}{
		{models.StatusAssigned, models.StatusPending},
		{models.StatusDispatched, models.StatusPending},
		{models.StatusDispatched, models.StatusAssigned},
		{models.StatusResolved, models.StatusDispatched},
		{models.StatusResolved, models.StatusPending},
	}

	for _, tc := range backward {
		incident := locatedIncident(tc.from)
		err := Validate(incident, tc.to)

		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		// Статус инцидента не меняется при отказе
		assert.Equal(t, tc.from, incident.Status)
	}
}

func TestValidate_ResolvedIsTerminal(t *testing.T) {
	for _, to := range []models.IncidentStatus{models.StatusPending, models.StatusAssigned, models.StatusDispatched} {
		assert.ErrorIs(t, Validate(locatedIncident(models.StatusResolved), to), ErrInvalidTransition)
	}
}

func TestValidate_AssignWithoutLocation(t *testing.T) {
	incident := &models.Incident{Status: models.StatusPending}

	err := Validate(incident, models.StatusAssigned)

	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestValidate_SkippingStatesForbidden(t *testing.T) {
	assert.ErrorIs(t, Validate(locatedIncident(models.StatusPending), models.StatusDispatched), ErrInvalidTransition)
	assert.ErrorIs(t, Validate(locatedIncident(models.StatusPending), models.StatusResolved), ErrInvalidTransition)
	assert.ErrorIs(t, Validate(locatedIncident(models.StatusAssigned), models.StatusResolved), ErrInvalidTransition)
}
