package v1

import (
	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/internal/service"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

// PhotoReportDTOToInput преобразует DTO фото-сигнала во входную структуру сервиса
func PhotoReportDTOToInput(dto PhotoReportRequest) service.PhotoReport {
	input := service.PhotoReport{
		ImageURL:     dto.ImageURL,
		LocationNote: dto.LocationAddress,
	}
	if dto.Lat != nil && dto.Lng != nil {
		input.Location = &geo.Coordinate{Latitude: *dto.Lat, Longitude: *dto.Lng}
	}
	return input
}

// SOSDTOToInput преобразует DTO сигнала паники во входную структуру сервиса
func SOSDTOToInput(dto SOSRequest) service.SOSSignal {
	input := service.SOSSignal{
		DisasterTypeHint: dto.DisasterType,
	}
	if dto.Lat != nil && dto.Lng != nil {
		input.Location = &geo.Coordinate{Latitude: *dto.Lat, Longitude: *dto.Lng}
	}
	return input
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                 model.ID,
		Origin:             model.Origin,
		LocationNote:       model.LocationNote,
		DisasterTypeHint:   model.DisasterTypeHint,
		Status:             model.Status,
		AssignedResources:  model.AssignedResources,
		MatchPhase:         model.MatchPhase,
		NoEligibleResource: model.NoEligibleResource,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if model.Location != nil {
		resp.Lat = &model.Location.Latitude
		resp.Lng = &model.Location.Longitude
	}
	if model.Classification != nil {
		resp.Classification = &ClassificationResponse{
			Description:          model.Classification.Description,
			DisasterType:         model.Classification.DisasterType,
			Severity:             model.Classification.Severity,
			RecommendedTeamTypes: model.Classification.RecommendedTeamTypes,
			Reasoning:            model.Classification.Reasoning,
		}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToTeamResponse преобразует модель спасательной команды в DTO для ответа
func ModelToTeamResponse(model *models.RescueResource) *TeamResponse {
	return &TeamResponse{
		ID:       model.ID,
		Name:     model.Name,
		TeamType: model.TeamType,
		Lat:      model.Location.Latitude,
		Lng:      model.Location.Longitude,
		Phone:    model.Phone,
		Email:    model.Email,
		IsActive: model.IsActive,
	}
}

// ModelsToTeamResponses преобразует слайс моделей команд в слайс DTO
func ModelsToTeamResponses(models []*models.RescueResource) []*TeamResponse {
	responses := make([]*TeamResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToTeamResponse(model)
	}
	return responses
}
