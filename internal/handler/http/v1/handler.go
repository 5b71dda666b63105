package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Cyros-Sachin/Rescue-app/internal/config"
	"github.com/Cyros-Sachin/Rescue-app/internal/lifecycle"
	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/internal/service"
)

type Handler struct {
	triageService service.TriageService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(triageService service.TriageService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		triageService: triageService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Submit a photo disaster report
// @Description Submit a scene photo for AI triage. The incident is created even when classification fails.
// @Tags Triage
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body PhotoReportRequest true "Photo report"
// @Success 201 {object} IncidentResponse
// @Success 202 {object} TriageAcceptedResponse "Incident created but classification failed"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/photo [post]
func (h *Handler) triagePhotoReport(c *gin.Context) {
	var input PhotoReportRequest
	log := h.logger.WithField("method", "triagePhotoReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Координаты задаются только парой
	if (input.Lat == nil) != (input.Lng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be provided together"})
		return
	}

	incident, err := h.triageService.TriagePhotoReport(c.Request.Context(), PhotoReportDTOToInput(input))
	if err != nil {
		if incident != nil && (errors.Is(err, service.ErrOracleUnavailable) || errors.Is(err, service.ErrOracleTimeout)) {
			// Инцидент создан и ждет ручного триажа или повторной классификации
			log.WithError(err).WithField("incident_id", incident.ID).Warn("Classification failed, incident accepted as pending")
			c.JSON(http.StatusAccepted, TriageAcceptedResponse{
				Incident:            ModelToIncidentResponse(incident),
				ClassificationError: err.Error(),
			})
			return
		}
		h.writeTriageError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Submit an SOS signal
// @Description Submit a geolocation-only panic signal. Nearest active teams are assigned regardless of type.
// @Tags Triage
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param signal body SOSRequest true "SOS signal"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos [post]
func (h *Handler) triageSOS(c *gin.Context) {
	var input SOSRequest
	log := h.logger.WithField("method", "triageSOS")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.triageService.TriageSOS(c.Request.Context(), SOSDTOToInput(input))
	if err != nil {
		h.writeTriageError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of all incidents. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	incidents, err := h.triageService.ListIncidents(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.triageService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}

	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Confirm resource dispatch
// @Description Confirm that an assigned team acknowledged and departed: assigned -> dispatched.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Transition conflict"
// @Router /incidents/{id}/dispatch [post]
func (h *Handler) confirmDispatch(c *gin.Context) {
	h.applyTransition(c, "confirmDispatch", h.triageService.ConfirmDispatch)
}

// @Summary Resolve an incident
// @Description Close a dispatched incident: dispatched -> resolved.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Transition conflict"
// @Router /incidents/{id}/resolve [post]
func (h *Handler) resolveIncident(c *gin.Context) {
	h.applyTransition(c, "resolveIncident", h.triageService.Resolve)
}

// @Summary Reassign incident resources
// @Description Re-run matching against the current roster. Allowed only while the incident is assigned.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Transition conflict or no eligible resource"
// @Router /incidents/{id}/reassign [post]
func (h *Handler) reassignIncident(c *gin.Context) {
	h.applyTransition(c, "reassignIncident", h.triageService.Reassign)
}

// @Summary List active rescue teams
// @Description Get the current snapshot of active rescue teams from the roster.
// @Tags Teams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} TeamResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /teams [get]
func (h *Handler) listTeams(c *gin.Context) {
	log := h.logger.WithField("method", "listTeams")

	teams, err := h.triageService.ListActiveTeams(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list teams from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToTeamResponses(teams))
}

// @Summary Health check
// @Description Check that the service is up.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// applyTransition - общий обработчик операций жизненного цикла инцидента
func (h *Handler) applyTransition(c *gin.Context, method string, op func(ctx context.Context, id uuid.UUID) (*models.Incident, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	incident, err := op(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrNoEligibleResource):
			log.WithError(err).Warn("Transition rejected")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, lifecycle.ErrInsufficientData):
			log.WithError(err).Warn("Transition rejected")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Transition failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// writeTriageError отображает ошибки триажа в HTTP-статусы
func (h *Handler) writeTriageError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrMissingLocation), errors.Is(err, service.ErrInvalidLocation):
		log.WithError(err).Warn("Rejected signal with bad location")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Triage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
