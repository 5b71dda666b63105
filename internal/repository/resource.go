package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
	"github.com/Cyros-Sachin/Rescue-app/internal/service"
)

type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) service.ResourceRepository {
	return &ResourceRepository{db: db}
}

// ListActiveResources возвращает актуальный снимок активных спасательных команд.
// Реестр принадлежит внешнему административному контуру, отсюда только чтение.
func (r *ResourceRepository) ListActiveResources(ctx context.Context) ([]*models.RescueResource, error) {
	query := `
		SELECT
			id,
			name,
			team_type,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			phone,
			COALESCE(email, '') as email,
			is_active
		FROM rescue_teams
		WHERE is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rescue teams: %w", err)
	}
	defer rows.Close()

	resources := make([]*models.RescueResource, 0)
	for rows.Next() {
		resource := &models.RescueResource{}
		err := rows.Scan(
			&resource.ID,
			&resource.Name,
			&resource.TeamType,
			&resource.Location.Latitude,
			&resource.Location.Longitude,
			&resource.Phone,
			&resource.Email,
			&resource.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rescue team row: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error rescue team list iteration: %w", err)
	}
	return resources, nil
}
