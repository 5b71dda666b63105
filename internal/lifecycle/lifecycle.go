package lifecycle

import (
	"errors"
	"fmt"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

var (
	// ErrInvalidTransition - запрошенный переход отсутствует в машине состояний
	ErrInvalidTransition = errors.New("invalid incident status transition")
	// ErrInsufficientData - назначение невозможно без координат инцидента
	ErrInsufficientData = errors.New("incident has no location, cannot assign resources")
)

// transitions - машина состояний инцидента.
// Назад пути нет; assigned -> assigned разрешен для переназначения,
// после dispatched состав назначенных команд неизменяем.
var transitions = map[models.IncidentStatus][]models.IncidentStatus{
	models.StatusPending:    {models.StatusAssigned},
	models.StatusAssigned:   {models.StatusAssigned, models.StatusDispatched},
	models.StatusDispatched: {models.StatusResolved},
	models.StatusResolved:   {},
}

// CanTransition сообщает, допустим ли переход from -> to
func CanTransition(from, to models.IncidentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Validate проверяет переход статуса инцидента.
// Возвращает типизированную ошибку, если переход недопустим.
func Validate(incident *models.Incident, to models.IncidentStatus) error {
	if !CanTransition(incident.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, incident.Status, to)
	}
	if to == models.StatusAssigned && incident.Location == nil {
		return ErrInsufficientData
	}
	return nil
}
