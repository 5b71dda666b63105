package matcher

import (
	"sort"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

// Match - команда-кандидат с расстоянием до инцидента в километрах
type Match struct {
	Resource   *models.RescueResource
	DistanceKm float64
}

// Nearest возвращает до k ближайших активных команд, отсортированных по
// расстоянию (при равенстве - по id, чтобы результат был детерминированным).
// Если requiredTypes не пуст, рассматриваются только команды этих типов.
// Короткий или пустой список - валидный результат, не ошибка: решение о
// повторном подборе без фильтра принимает координатор.
func Nearest(origin geo.Coordinate, roster []*models.RescueResource, k int, requiredTypes []models.TeamType) []Match {
	if k <= 0 {
		return nil
	}

	matches := make([]Match, 0, len(roster))
	for _, resource := range roster {
		if !resource.IsActive {
			continue
		}
		if len(requiredTypes) > 0 && !containsType(requiredTypes, resource.TeamType) {
			continue
		}
		matches = append(matches, Match{
			Resource:   resource,
			DistanceKm: geo.Distance(origin, resource.Location),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Resource.ID.String() < matches[j].Resource.ID.String()
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func containsType(types []models.TeamType, tt models.TeamType) bool {
	for _, t := range types {
		if t == tt {
			return true
		}
	}
	return false
}
