package repository

import (
	"context"
	"fmt"

	"fleet-booking/internal/data/entity"
	"fleet-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TripPlanRepository interface {
	Create(ctx context.Context, plan *entity.TripPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TripPlan, error)
	FindAllActive(ctx context.Context) ([]*entity.TripPlan, error)
	Update(ctx context.Context, plan *entity.TripPlan) error
}

type tripPlanRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTripPlanRepository(db database.Querier, log *zap.Logger) TripPlanRepository {
	return &tripPlanRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip_plan")),
	}
}

func (r *tripPlanRepository) Create(ctx context.Context, plan *entity.TripPlan) error {
	query := `
		INSERT INTO trip_plans (id, name, seat_price, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.SeatPrice,
		plan.Capacity,
		plan.IsActive,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create trip plan",
			zap.Error(err),
			zap.String("name", plan.Name),
		)
		return fmt.Errorf("create trip plan %s: %w", plan.Name, err)
	}

	return nil
}

func (r *tripPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TripPlan, error) {
	query := `
		SELECT id, name, seat_price, capacity, is_active, created_at, updated_at
		FROM trip_plans
		WHERE id = $1
	`

	var plan entity.TripPlan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.SeatPrice,
		&plan.Capacity,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip plan by ID",
			zap.Error(err),
			zap.String("plan_id", id.String()),
		)
		return nil, fmt.Errorf("find trip plan by ID %s: %w", id.String(), err)
	}

	return &plan, nil
}

func (r *tripPlanRepository) FindAllActive(ctx context.Context) ([]*entity.TripPlan, error) {
	query := `
		SELECT id, name, seat_price, capacity, is_active, created_at, updated_at
		FROM trip_plans
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active trip plans", zap.Error(err))
		return nil, fmt.Errorf("find active trip plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.TripPlan
	for rows.Next() {
		var plan entity.TripPlan
		err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.SeatPrice,
			&plan.Capacity,
			&plan.IsActive,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan trip plan row", zap.Error(err))
			return nil, fmt.Errorf("scan trip plan row: %w", err)
		}
		plans = append(plans, &plan)
	}

	return plans, nil
}

func (r *tripPlanRepository) Update(ctx context.Context, plan *entity.TripPlan) error {
	query := `
		UPDATE trip_plans
		SET name = $2, seat_price = $3, capacity = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.SeatPrice,
		plan.Capacity,
		plan.IsActive,
		plan.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update trip plan",
			zap.Error(err),
			zap.String("plan_id", plan.ID.String()),
		)
		return fmt.Errorf("update trip plan %s: %w", plan.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip plan %s not found", plan.ID.String())
	}

	return nil
}
