package v1

import (
	"time"

	"github.com/google/uuid"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

// PhotoReportRequest DTO для фото-сигнала о бедствии
// @Description DTO для фото-сигнала о бедствии
type PhotoReportRequest struct {
	ImageURL        string   `json:"image_url" validate:"required,url"`
	LocationAddress string   `json:"location_address,omitempty"`
	Lat             *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng             *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
}

// SOSRequest DTO для сигнала паники
// @Description DTO для сигнала паники
type SOSRequest struct {
	DisasterType string   `json:"disaster_type" validate:"required"`
	Lat          *float64 `json:"lat" validate:"required,latitude"`
	Lng          *float64 `json:"lng" validate:"required,longitude"`
}

// ClassificationResponse DTO классификации сцены
// @Description DTO классификации сцены
type ClassificationResponse struct {
	Description          string              `json:"description"`
	DisasterType         models.DisasterType `json:"disaster_type"`
	Severity             models.Severity     `json:"severity"`
	RecommendedTeamTypes []models.TeamType   `json:"recommended_team_types,omitempty"`
	Reasoning            string              `json:"reasoning"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                 uuid.UUID               `json:"id"`
	Origin             models.IncidentOrigin   `json:"origin"`
	Lat                *float64                `json:"lat,omitempty"`
	Lng                *float64                `json:"lng,omitempty"`
	LocationNote       string                  `json:"location_note,omitempty"`
	Classification     *ClassificationResponse `json:"classification,omitempty"`
	DisasterTypeHint   string                  `json:"disaster_type_hint,omitempty"`
	Status             models.IncidentStatus   `json:"status"`
	AssignedResources  []uuid.UUID             `json:"assigned_resources"`
	MatchPhase         models.MatchPhase       `json:"match_phase,omitempty"`
	NoEligibleResource bool                    `json:"no_eligible_resource"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// TriageAcceptedResponse DTO для инцидента, принятого без классификации
// @Description DTO для инцидента, принятого без классификации (оракул недоступен)
type TriageAcceptedResponse struct {
	Incident            *IncidentResponse `json:"incident"`
	ClassificationError string            `json:"classification_error"`
}

// TeamResponse DTO для ответа с информацией о спасательной команде
// @Description DTO для ответа с информацией о спасательной команде
type TeamResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	TeamType models.TeamType `json:"team_type"`
	Lat      float64         `json:"lat"`
	Lng      float64         `json:"lng"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email,omitempty"`
	IsActive bool            `json:"is_active"`
}
