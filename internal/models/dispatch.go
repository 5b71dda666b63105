package models

import (
	"time"

	"github.com/google/uuid"
)

// AssignedResourceSnapshot - снимок назначенной команды с расстоянием до инцидента
type AssignedResourceSnapshot struct {
	Resource   *RescueResource `json:"resource"`
	DistanceKm float64         `json:"distance_km"`
}

// DispatchRecord - данные для приемника уведомлений.
// Движок сам записи не хранит, только публикует.
type DispatchRecord struct {
	IncidentID        uuid.UUID                  `json:"incident_id"`
	Origin            IncidentOrigin             `json:"origin"`
	DisasterType      DisasterType               `json:"disaster_type,omitempty"`
	Severity          Severity                   `json:"severity,omitempty"`
	AssignedResources []AssignedResourceSnapshot `json:"assigned_resources"`
	EmittedAt         time.Time                  `json:"emitted_at"`
}
