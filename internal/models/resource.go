package models

import (
	"github.com/google/uuid"

	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

// RescueResource - спасательная команда из внешнего реестра.
// Движок только читает реестр и никогда не изменяет состояние команды.
type RescueResource struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	TeamType TeamType       `json:"team_type"`
	Location geo.Coordinate `json:"location"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email,omitempty"`
	IsActive bool           `json:"is_active"`
}
