package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/internal/service"
	"github.com/Cyros-Sachin/Rescue-app/pkg/geo"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об инциденте в бд.
// ST_MakePoint с NULL-аргументами дает NULL - инцидент без геолокации хранится с пустой location.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	classification, err := marshalClassification(incident.Classification)
	if err != nil {
		return err
	}
	assigned, err := json.Marshal(incident.AssignedResources)
	if err != nil {
		return fmt.Errorf("failed to marshal assigned resources: %w", err)
	}

	var lat, lon *float64
	if incident.Location != nil {
		lat = &incident.Location.Latitude
		lon = &incident.Location.Longitude
	}

	query := `
		INSERT INTO incidents (origin, location, location_note, classification, disaster_type_hint, status, assigned_resources, match_phase, no_eligible_resource)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2::float8, $3::float8), 4326), $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		incident.Origin,
		lon,
		lat,
		incident.LocationNote,
		classification,
		incident.DisasterTypeHint,
		incident.Status,
		assigned,
		incident.MatchPhase,
		incident.NoEligibleResource,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

const incidentColumns = `
		id,
		origin,
		ST_Y(location::geometry) as latitude,
		ST_X(location::geometry) as longitude,
		location_note,
		classification,
		disaster_type_hint,
		status,
		assigned_resources,
		match_phase,
		no_eligible_resource,
		version,
		created_at,
		updated_at`

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `SELECT ` + incidentColumns + ` FROM incidents ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// UpdateStatus - compare-and-swap перехода статуса по паре (status, version).
// Состав назначенных команд и фаза подбора не затрагиваются: переход
// dispatched/resolved не может перезаписать их устаревшим снимком.
// Проигранная гонка - service.ErrConflict.
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.IncidentStatus, expectedVersion int64) error {
	query := `
		UPDATE incidents SET
			status = $1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $2 AND status = $3 AND version = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, next, id, expected, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update incident status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.casMiss(ctx, id, expected, expectedVersion)
	}
	return nil
}

// UpdateAssignment - CAS перехода в assigned с заменой состава назначенных
// команд и фазы подбора. Гонка двух переназначений детерминированно оставляет
// ровно одного победителя: версия проигравшего уже не совпадает.
func (r *IncidentRepository) UpdateAssignment(ctx context.Context, id uuid.UUID, expected, next models.IncidentStatus, expectedVersion int64, assigned []uuid.UUID, phase models.MatchPhase) error {
	assignedJSON, err := json.Marshal(assigned)
	if err != nil {
		return fmt.Errorf("failed to marshal assigned resources: %w", err)
	}

	query := `
		UPDATE incidents SET
			status = $1,
			assigned_resources = $2,
			match_phase = $3,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $4 AND status = $5 AND version = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query, next, assignedJSON, phase, id, expected, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update incident assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.casMiss(ctx, id, expected, expectedVersion)
	}
	return nil
}

// casMiss различает отсутствующий инцидент и проигранную CAS-гонку
func (r *IncidentRepository) casMiss(ctx context.Context, id uuid.UUID, expected models.IncidentStatus, expectedVersion int64) error {
	var (
		current models.IncidentStatus
		version int64
	)
	err := r.db.QueryRow(ctx, `SELECT status, version FROM incidents WHERE id = $1;`, id).Scan(&current, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read incident state after miss: %w", err)
	}
	return fmt.Errorf("incident %s is %s v%d, expected %s v%d: %w", id, current, version, expected, expectedVersion, service.ErrConflict)
}

// SetClassification сохраняет результат классификации уже созданного инцидента
func (r *IncidentRepository) SetClassification(ctx context.Context, id uuid.UUID, classification *models.Classification) error {
	val, err := marshalClassification(classification)
	if err != nil {
		return err
	}

	query := `
		UPDATE incidents SET
			classification = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, val, id)
	if err != nil {
		return fmt.Errorf("failed to set incident classification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// MarkNoEligibleResource выставляет флаг "нет подходящих команд" на инциденте
func (r *IncidentRepository) MarkNoEligibleResource(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE incidents SET
			no_eligible_resource = TRUE,
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark incident as having no eligible resource: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

// scanIncident читает одну строку инцидента, собирая nullable-геолокацию и JSON-поля
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var (
		lat, lon       *float64
		classification []byte
		assigned       []byte
	)
	err := row.Scan(
		&incident.ID,
		&incident.Origin,
		&lat,
		&lon,
		&incident.LocationNote,
		&classification,
		&incident.DisasterTypeHint,
		&incident.Status,
		&assigned,
		&incident.MatchPhase,
		&incident.NoEligibleResource,
		&incident.Version,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		incident.Location = &geo.Coordinate{Latitude: *lat, Longitude: *lon}
	}
	if len(classification) > 0 {
		incident.Classification = &models.Classification{}
		if err := json.Unmarshal(classification, incident.Classification); err != nil {
			return nil, fmt.Errorf("failed to unmarshal classification: %w", err)
		}
	}
	incident.AssignedResources = []uuid.UUID{}
	if len(assigned) > 0 {
		if err := json.Unmarshal(assigned, &incident.AssignedResources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assigned resources: %w", err)
		}
	}
	return incident, nil
}

func marshalClassification(classification *models.Classification) ([]byte, error) {
	if classification == nil {
		return nil, nil
	}
	val, err := json.Marshal(classification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classification: %w", err)
	}
	return val, nil
}
