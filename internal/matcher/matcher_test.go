package matcher

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

func team(id string, teamType models.TeamType, lat, lon float64, active bool) *models.RescueResource {
	return &models.RescueResource{
		ID:       uuid.MustParse(id),
		Name:     "team-" + id[:8],
		TeamType: teamType,
		Location: geo.Coordinate{Latitude: lat, Longitude: lon},
		IsActive: active,
	}
}

func TestNearest_OrdersByDistance(t *testing.T) {
	origin := geo.Coordinate{Latitude: 32.7266, Longitude: 74.8570}
	roster := []*models.RescueResource{
		team("33333333-0000-0000-0000-000000000003", models.TeamFire, 33.2266, 74.8570, true),   // ~55 км
		team("11111111-0000-0000-0000-000000000001", models.TeamNDRF, 32.7266, 74.8570, true),   // 0 км
		team("22222222-0000-0000-0000-000000000002", models.TeamMedical, 32.9266, 74.8570, true), // ~22 км
	}

	matches := Nearest(origin, roster, 3, nil)

	require.Len(t, matches, 3)
	assert.Equal(t, "team-11111111", matches[0].Resource.Name)
	assert.Equal(t, 0.0, matches[0].DistanceKm)
	assert.Equal(t, "team-22222222", matches[1].Resource.Name)
	assert.Equal(t, "team-33333333", matches[2].Resource.Name)
}

func TestNearest_TieBreakByID(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	// Две команды на одинаковом расстоянии (в одной точке)
	roster := []*models.RescueResource{
		team("bbbbbbbb-0000-0000-0000-000000000002", models.TeamFire, 10.5, 10.0, true),
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamNDRF, 10.5, 10.0, true),
	}

	matches := Nearest(origin, roster, 2, nil)

	require.Len(t, matches, 2)
	assert.Equal(t, uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"), matches[0].Resource.ID)
	assert.Equal(t, uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"), matches[1].Resource.ID)
}

func TestNearest_Deterministic(t *testing.T) {
	origin := geo.Coordinate{Latitude: 32.0, Longitude: 74.0}
	roster := []*models.RescueResource{
		team("bbbbbbbb-0000-0000-0000-000000000002", models.TeamFire, 32.5, 74.0, true),
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamNDRF, 32.5, 74.0, true),
		team("cccccccc-0000-0000-0000-000000000003", models.TeamNCC, 33.0, 74.0, true),
	}

	first := Nearest(origin, roster, 3, nil)
	second := Nearest(origin, roster, 3, nil)

	assert.Equal(t, first, second)
}

func TestNearest_FiltersInactive(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	roster := []*models.RescueResource{
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamFire, 10.0, 10.0, false),
		team("bbbbbbbb-0000-0000-0000-000000000002", models.TeamFire, 11.0, 10.0, true),
	}

	matches := Nearest(origin, roster, 3, nil)

	require.Len(t, matches, 1)
	assert.Equal(t, uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"), matches[0].Resource.ID)
}

func TestNearest_FiltersByRequiredTypes(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	roster := []*models.RescueResource{
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamPolice, 10.0, 10.0, true),
		team("bbbbbbbb-0000-0000-0000-000000000002", models.TeamFire, 11.0, 10.0, true),
	}

	matches := Nearest(origin, roster, 3, []models.TeamType{models.TeamFire})

	require.Len(t, matches, 1)
	assert.Equal(t, models.TeamFire, matches[0].Resource.TeamType)
}

func TestNearest_NoSilentFallbackOnEmptyTypeMatch(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	roster := []*models.RescueResource{
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamPolice, 10.0, 10.0, true),
	}

	// Нет активных команд требуемого типа: матчер возвращает пустой список,
	// а не подменяет фильтр
	matches := Nearest(origin, roster, 3, []models.TeamType{models.TeamMedical})

	assert.Empty(t, matches)
}

func TestNearest_ShortRosterIsNotAnError(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	roster := []*models.RescueResource{
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamFire, 10.0, 10.0, true),
	}

	matches := Nearest(origin, roster, 3, nil)

	require.Len(t, matches, 1)
}

func TestNearest_TruncatesToK(t *testing.T) {
	origin := geo.Coordinate{Latitude: 10.0, Longitude: 10.0}
	roster := []*models.RescueResource{
		team("aaaaaaaa-0000-0000-0000-000000000001", models.TeamFire, 10.1, 10.0, true),
		team("bbbbbbbb-0000-0000-0000-000000000002", models.TeamFire, 10.2, 10.0, true),
		team("cccccccc-0000-0000-0000-000000000003", models.TeamFire, 10.3, 10.0, true),
		team("dddddddd-0000-0000-0000-000000000004", models.TeamFire, 10.4, 10.0, true),
	}

	matches := Nearest(origin, roster, 3, nil)

	require.Len(t, matches, 3)
	assert.Equal(t, uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"), matches[0].Resource.ID)
}

func TestNearest_EmptyRoster(t *testing.T) {
	matches := Nearest(geo.Coordinate{}, nil, 3, nil)

	assert.Empty(t, matches)
}

func TestTeamsFor_PolicyTable(t *testing.T) {
	assert.Equal(t, []models.TeamType{models.TeamFire}, TeamsFor(models.DisasterFire))
	assert.Equal(t, []models.TeamType{models.TeamNDRF, models.TeamFire}, TeamsFor(models.DisasterCollapse))
	assert.Equal(t, []models.TeamType{models.TeamMedical}, TeamsFor(models.DisasterMedical))
	assert.Equal(t, []models.TeamType{models.TeamNDRF, models.TeamNCC}, TeamsFor(models.DisasterFlood))
	assert.Equal(t, []models.TeamType{models.TeamOther}, TeamsFor(models.DisasterOther))
	assert.Equal(t, []models.TeamType{models.TeamOther}, TeamsFor(models.DisasterType("unknown")))
}

func TestTeamsFor_ReturnsCopy(t *testing.T) {
	teams := TeamsFor(models.DisasterCollapse)
	teams[0] = models.TeamOther

	assert.Equal(t, []models.TeamType{models.TeamNDRF, models.TeamFire}, TeamsFor(models.DisasterCollapse))
}
