package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

// IncidentOrigin - источник сигнала, породившего инцидент
type IncidentOrigin string

const (
	OriginPhotoReport IncidentOrigin = "photo_report"
	OriginSOSSignal   IncidentOrigin = "sos_signal"
)

// IncidentStatus - статус жизненного цикла инцидента
type IncidentStatus string

const (
	StatusPending    IncidentStatus = "pending"
	StatusAssigned   IncidentStatus = "assigned"
	StatusDispatched IncidentStatus = "dispatched"
	StatusResolved   IncidentStatus = "resolved"
)

// MatchPhase - какая фаза подбора команд дала результат
type MatchPhase string

const (
	// MatchPhaseTypeRestricted - подбор с фильтром по типам команд из таблицы политик
	MatchPhaseTypeRestricted MatchPhase = "type_restricted"
	// MatchPhaseRelaxed - повторный подбор без фильтра по типам
	MatchPhaseRelaxed MatchPhase = "relaxed"
)

// Incident - единая запись об инциденте для обоих видов сигналов.
// Location может отсутствовать (пользователь не дал геолокацию) -
// тогда инцидент не может уйти дальше статуса pending.
// Version растет на каждом переходе и участвует в CAS-обновлениях.
type Incident struct {
	ID                 uuid.UUID       `json:"id"`
	Origin             IncidentOrigin  `json:"origin"`
	Location           *geo.Coordinate `json:"location,omitempty"`
	LocationNote       string          `json:"location_note,omitempty"`
	Classification     *Classification `json:"classification,omitempty"`
	DisasterTypeHint   string          `json:"disaster_type_hint,omitempty"`
	Status             IncidentStatus  `json:"status"`
	AssignedResources  []uuid.UUID     `json:"assigned_resources"`
	MatchPhase         MatchPhase      `json:"match_phase,omitempty"`
	NoEligibleResource bool            `json:"no_eligible_resource"`
	Version            int64           `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
