package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Cyros-Sachin/Rescue-app/internal/config"
	"github.com/Cyros-Sachin/Rescue-app/internal/dispatch"
	"github.com/Cyros-Sachin/Rescue-app/internal/lifecycle"
	"github.com/Cyros-Sachin/Rescue-app/internal/matcher"
	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/internal/parser"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

var (
	// ErrMissingLocation - для SOS-сигнала геолокация обязательна
	ErrMissingLocation = errors.New("location is required")
	// ErrInvalidLocation - координаты вне допустимых диапазонов
	ErrInvalidLocation = errors.New("location is out of valid coordinate ranges")
	// ErrOracleUnavailable - оракул недоступен или его ответ не удалось разобрать
	ErrOracleUnavailable = errors.New("scene oracle unavailable")
	// ErrOracleTimeout - оракул не ответил за отведенное время
	ErrOracleTimeout = errors.New("scene oracle timed out")
	// ErrNoEligibleResource - ни одной подходящей активной команды
	ErrNoEligibleResource = errors.New("no eligible rescue resource")
	// ErrConflict - проигран compare-and-swap при обновлении статуса
	ErrConflict = errors.New("incident status changed concurrently")
	// ErrNotFound - инцидент не найден
	ErrNotFound = errors.New("incident not found")
)

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	SetClassification(ctx context.Context, id uuid.UUID, classification *models.Classification) error
	// UpdateStatus - compare-and-swap по паре (status, version): обновление
	// проходит только из прочитанного состояния, иначе возвращается ErrConflict.
	// Состав назначенных команд не затрагивается.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.IncidentStatus, expectedVersion int64) error
	// UpdateAssignment - тот же CAS, но с заменой состава назначенных команд
	// и фазы подбора (переходы pending->assigned и assigned->assigned)
	UpdateAssignment(ctx context.Context, id uuid.UUID, expected, next models.IncidentStatus, expectedVersion int64, assigned []uuid.UUID, phase models.MatchPhase) error
	MarkNoEligibleResource(ctx context.Context, id uuid.UUID) error
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// ResourceRepository определяет контракт чтения реестра спасательных команд.
// Движок реестр никогда не изменяет.
type ResourceRepository interface {
	ListActiveResources(ctx context.Context) ([]*models.RescueResource, error)
}

// SceneOracle - внешняя vision-модель, возвращающая сырой недоверенный текст
type SceneOracle interface {
	AnalyzeScene(ctx context.Context, imageURL string) (string, error)
}

// PhotoReport - входной сигнал с фотографией места происшествия
type PhotoReport struct {
	ImageURL     string
	LocationNote string
	Location     *geo.Coordinate
}

// SOSSignal - входной сигнал паники: только геолокация и подсказка о виде бедствия
type SOSSignal struct {
	DisasterTypeHint string
	Location         *geo.Coordinate
}

// TriageService определяет контракт бизнес-логики триажа и диспетчеризации
type TriageService interface {
	TriagePhotoReport(ctx context.Context, report PhotoReport) (*models.Incident, error)
	TriageSOS(ctx context.Context, signal SOSSignal) (*models.Incident, error)
	ConfirmDispatch(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Resolve(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Reassign(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	ListActiveTeams(ctx context.Context) ([]*models.RescueResource, error)
}

type triageService struct {
	incidents IncidentRepository
	resources ResourceRepository
	oracle    SceneOracle
	publisher dispatch.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewTriageService(incidents IncidentRepository, resources ResourceRepository, oracle SceneOracle, publisher dispatch.Publisher, logger *logrus.Logger, cfg *config.Config) TriageService {
	return &triageService{
		incidents: incidents,
		resources: resources,
		oracle:    oracle,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// TriagePhotoReport обрабатывает фото-сигнал: сначала инцидент сохраняется
// в статусе pending, затем оракул -> парсер -> подбор команд -> переход
// pending->assigned -> запись для приемника уведомлений. Сбой на любом шаге
// после создания оставляет видимый pending-инцидент; при отказе оракула или
// парсера он возвращается вместе с типизированной ошибкой, чтобы вызывающий
// мог повторить классификацию или перейти к ручному триажу.
func (s *triageService) TriagePhotoReport(ctx context.Context, report PhotoReport) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "triage",
		"method":  "TriagePhotoReport",
	})
	log.Info("Triaging photo report")

	if report.Location != nil && !report.Location.Valid() {
		return nil, ErrInvalidLocation
	}

	incident := &models.Incident{
		Origin:            models.OriginPhotoReport,
		Location:          report.Location,
		LocationNote:      report.LocationNote,
		Status:            models.StatusPending,
		AssignedResources: []uuid.UUID{},
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident created")

	classification, classifyErr := s.classifyScene(ctx, report.ImageURL)
	if classifyErr != nil {
		// Инцидент уже сохранен и виден как pending, ошибка классификации не теряется
		log.WithError(classifyErr).Warn("Classification failed, incident left pending for manual triage")
		return incident, classifyErr
	}

	incident.Classification = classification
	if err := s.incidents.SetClassification(ctx, incident.ID, classification); err != nil {
		log.WithError(err).Error("Failed to persist classification")
		return incident, fmt.Errorf("service: could not persist classification: %w", err)
	}

	if incident.Location == nil {
		// Без геолокации подбор команд невозможен, инцидент остается pending
		log.Warn("Photo report has no location, skipping resource matching")
		return incident, nil
	}

	requiredTypes := matcher.TeamsFor(classification.DisasterType)
	return s.assignNearest(ctx, incident, requiredTypes, log)
}

// TriageSOS обрабатывает сигнал паники: геолокация обязательна, классификация
// не выполняется, подбираются ближайшие команды независимо от типа.
func (s *triageService) TriageSOS(ctx context.Context, signal SOSSignal) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "triage",
		"method":  "TriageSOS",
	})
	log.Info("Triaging SOS signal")

	if signal.Location == nil {
		return nil, ErrMissingLocation
	}
	if !signal.Location.Valid() {
		return nil, ErrInvalidLocation
	}

	location := *signal.Location
	incident := &models.Incident{
		Origin:            models.OriginSOSSignal,
		Location:          &location,
		DisasterTypeHint:  signal.DisasterTypeHint,
		Status:            models.StatusPending,
		AssignedResources: []uuid.UUID{},
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident created")

	// SOS ставит близость выше специализации: фильтра по типам нет
	return s.assignNearest(ctx, incident, nil, log)
}

// ConfirmDispatch фиксирует подтверждение выезда команды: assigned -> dispatched
func (s *triageService) ConfirmDispatch(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return s.applyTransition(ctx, id, models.StatusDispatched, "ConfirmDispatch")
}

// Resolve закрывает инцидент: dispatched -> resolved
func (s *triageService) Resolve(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return s.applyTransition(ctx, id, models.StatusResolved, "Resolve")
}

// Reassign повторяет подбор команд для инцидента в статусе assigned
// (реестр мог измениться). Состав назначенных команд заменяется целиком,
// после чего публикуется новая запись для приемника уведомлений.
func (s *triageService) Reassign(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "triage",
		"method":      "Reassign",
		"incident_id": id,
	})
	log.Info("Reassigning incident resources")

	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident for reassignment")
		return nil, fmt.Errorf("service: incident %s not found for reassign: %w", id, err)
	}

	if err := lifecycle.Validate(incident, models.StatusAssigned); err != nil {
		log.WithError(err).Warn("Reassignment rejected by lifecycle")
		return nil, err
	}

	var requiredTypes []models.TeamType
	if incident.Classification != nil {
		requiredTypes = matcher.TeamsFor(incident.Classification.DisasterType)
	}

	matches, phase, err := s.matchResources(ctx, *incident.Location, requiredTypes)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		// Прежнее назначение сохраняется, если заменить его нечем
		log.Warn("No eligible resource for reassignment, keeping current assignment")
		return nil, ErrNoEligibleResource
	}

	updated, err := s.transitionWithRetry(ctx, incident, models.StatusAssigned, &assignmentUpdate{resources: resourceIDs(matches), phase: phase}, log)
	if err != nil {
		return nil, err
	}

	s.emitDispatchRecord(ctx, updated, matches, log)
	return updated, nil
}

// GetIncident получает инцидент по ID (через кеш)
func (s *triageService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "triage",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.incidents.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.incidents.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (s *triageService) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "triage",
		"method":    "ListIncidents",
		"page":      page,
		"page_size": pageSize,
	})

	incidents, err := s.incidents.ListIncidents(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}

// ListActiveTeams возвращает актуальный снимок реестра активных команд
func (s *triageService) ListActiveTeams(ctx context.Context) ([]*models.RescueResource, error) {
	teams, err := s.resources.ListActiveResources(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list active teams")
		return nil, fmt.Errorf("service: could not list active teams: %w", err)
	}
	return teams, nil
}

// classifyScene вызывает оракул с таймаутом и прогоняет ответ через парсер.
// Любой отказ (таймаут, ошибка вызова) повторяется ровно один раз.
func (s *triageService) classifyScene(ctx context.Context, imageURL string) (*models.Classification, error) {
	rawText, err := s.callOracle(ctx, imageURL)
	if err != nil {
		// Один автоматический повтор, таймаут равнозначен отказу
		rawText, err = s.callOracle(ctx, imageURL)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrOracleTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	classification, err := parser.Parse(rawText)
	if err != nil {
		// Отказ парсера для вызывающего равнозначен отказу оракула
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return classification, nil
}

func (s *triageService) callOracle(ctx context.Context, imageURL string) (string, error) {
	oracleCtx, cancel := context.WithTimeout(ctx, s.cfg.OracleTimeout)
	defer cancel()
	return s.oracle.AnalyzeScene(oracleCtx, imageURL)
}

// assignNearest выполняет двухфазный подбор команд и переход pending -> assigned
func (s *triageService) assignNearest(ctx context.Context, incident *models.Incident, requiredTypes []models.TeamType, log *logrus.Entry) (*models.Incident, error) {
	matches, phase, err := s.matchResources(ctx, *incident.Location, requiredTypes)
	if err != nil {
		return incident, err
	}

	if len(matches) == 0 {
		log.Warn("No eligible resource in roster, incident stays pending")
		incident.NoEligibleResource = true
		if err := s.incidents.MarkNoEligibleResource(ctx, incident.ID); err != nil {
			log.WithError(err).Error("Failed to mark incident as having no eligible resource")
		}
		return incident, nil
	}

	updated, err := s.transitionWithRetry(ctx, incident, models.StatusAssigned, &assignmentUpdate{resources: resourceIDs(matches), phase: phase}, log)
	if err != nil {
		return incident, err
	}

	s.emitDispatchRecord(ctx, updated, matches, log)
	return updated, nil
}

// matchResources - двухфазная политика: сначала подбор по требуемым типам,
// при пустом результате - повтор без фильтра. Возвращает фазу, давшую результат.
func (s *triageService) matchResources(ctx context.Context, origin geo.Coordinate, requiredTypes []models.TeamType) ([]matcher.Match, models.MatchPhase, error) {
	roster, err := s.resources.ListActiveResources(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service: could not read resource roster: %w", err)
	}

	if len(requiredTypes) > 0 {
		if matches := matcher.Nearest(origin, roster, s.cfg.MatchTeamCount, requiredTypes); len(matches) > 0 {
			return matches, models.MatchPhaseTypeRestricted, nil
		}
	}

	matches := matcher.Nearest(origin, roster, s.cfg.MatchTeamCount, nil)
	return matches, models.MatchPhaseRelaxed, nil
}

// applyTransition читает актуальный инцидент и выполняет переход статуса через CAS
func (s *triageService) applyTransition(ctx context.Context, id uuid.UUID, to models.IncidentStatus, method string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "triage",
		"method":      method,
		"incident_id": id,
		"to_status":   to,
	})
	log.Info("Applying incident status transition")

	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident for transition")
		return nil, fmt.Errorf("service: incident %s not found: %w", id, err)
	}

	if err := lifecycle.Validate(incident, to); err != nil {
		log.WithError(err).Warn("Transition rejected by lifecycle")
		return nil, err
	}

	return s.transitionWithRetry(ctx, incident, to, nil, log)
}

// assignmentUpdate - новый состав назначенных команд для переходов в assigned
type assignmentUpdate struct {
	resources []uuid.UUID
	phase     models.MatchPhase
}

// transitionWithRetry выполняет CAS-переход по паре (status, version).
// При assign == nil меняется только статус: переходы dispatched/resolved не
// переписывают состав назначенных команд и не могут затереть его устаревшим
// снимком. Проигранная гонка повторяется ровно один раз после перечитывания
// актуального состояния; второй конфликт возвращается вызывающему.
func (s *triageService) transitionWithRetry(ctx context.Context, incident *models.Incident, to models.IncidentStatus, assign *assignmentUpdate, log *logrus.Entry) (*models.Incident, error) {
	update := func(inc *models.Incident) error {
		if assign == nil {
			return s.incidents.UpdateStatus(ctx, inc.ID, inc.Status, to, inc.Version)
		}
		return s.incidents.UpdateAssignment(ctx, inc.ID, inc.Status, to, inc.Version, assign.resources, assign.phase)
	}

	err := update(incident)
	if errors.Is(err, ErrConflict) {
		log.Warn("Lost status CAS race, re-reading incident and retrying once")

		fresh, readErr := s.incidents.GetByID(ctx, incident.ID)
		if readErr != nil {
			return nil, fmt.Errorf("service: could not re-read incident after conflict: %w", readErr)
		}
		if verr := lifecycle.Validate(fresh, to); verr != nil {
			// Конкурирующий переход сделал наш недопустимым
			return nil, verr
		}
		err = update(fresh)
		incident = fresh
	}
	if err != nil {
		if errors.Is(err, ErrConflict) {
			log.Warn("Second CAS conflict, surfacing to caller")
			return nil, err
		}
		log.WithError(err).Error("Failed to update incident status")
		return nil, fmt.Errorf("service: could not update incident status: %w", err)
	}

	if err := s.incidents.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	updated := *incident
	updated.Status = to
	updated.Version = incident.Version + 1
	if assign != nil {
		updated.AssignedResources = assign.resources
		updated.MatchPhase = assign.phase
	}
	updated.UpdatedAt = time.Now().UTC()
	log.WithField("status", to).Info("Incident status updated")
	return &updated, nil
}

// emitDispatchRecord публикует запись для приемника уведомлений.
// Эмиссия best-effort: отказ логируется и не откатывает статус инцидента.
func (s *triageService) emitDispatchRecord(ctx context.Context, incident *models.Incident, matches []matcher.Match, log *logrus.Entry) {
	record := models.DispatchRecord{
		IncidentID:        incident.ID,
		Origin:            incident.Origin,
		AssignedResources: make([]models.AssignedResourceSnapshot, 0, len(matches)),
		EmittedAt:         time.Now().UTC(),
	}
	if incident.Classification != nil {
		record.DisasterType = incident.Classification.DisasterType
		record.Severity = incident.Classification.Severity
	}
	for _, m := range matches {
		record.AssignedResources = append(record.AssignedResources, models.AssignedResourceSnapshot{
			Resource:   m.Resource,
			DistanceKm: m.DistanceKm,
		})
	}

	if err := s.publisher.Publish(ctx, record); err != nil {
		log.WithError(err).Error("Failed to publish dispatch record, incident state is unaffected")
		return
	}
	log.Info("Dispatch record published")
}

func resourceIDs(matches []matcher.Match) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Resource.ID)
	}
	return ids
}
