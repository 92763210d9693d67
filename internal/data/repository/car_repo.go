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

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindAllActive(ctx context.Context) ([]*entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
}

type carRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCarRepository(db database.Querier, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	query := `
		INSERT INTO cars (id, plate_number, model, seats, hourly_rate, daily_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		car.ID,
		car.PlateNumber,
		car.Model,
		car.Seats,
		car.HourlyRate,
		car.DailyRate,
		car.IsActive,
		car.CreatedAt,
		car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create car",
			zap.Error(err),
			zap.String("plate_number", car.PlateNumber),
		)
		return fmt.Errorf("create car %s: %w", car.PlateNumber, err)
	}

	return nil
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `
		SELECT id, plate_number, model, seats, hourly_rate, daily_rate, is_active, created_at, updated_at
		FROM cars
		WHERE id = $1
	`

	var car entity.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.PlateNumber,
		&car.Model,
		&car.Seats,
		&car.HourlyRate,
		&car.DailyRate,
		&car.IsActive,
		&car.CreatedAt,
		&car.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find car by ID %s: %w", id.String(), err)
	}

	return &car, nil
}

func (r *carRepository) FindAllActive(ctx context.Context) ([]*entity.Car, error) {
	query := `
		SELECT id, plate_number, model, seats, hourly_rate, daily_rate, is_active, created_at, updated_at
		FROM cars
		WHERE is_active = true
		ORDER BY plate_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active cars", zap.Error(err))
		return nil, fmt.Errorf("find active cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		var car entity.Car
		err := rows.Scan(
			&car.ID,
			&car.PlateNumber,
			&car.Model,
			&car.Seats,
			&car.HourlyRate,
			&car.DailyRate,
			&car.IsActive,
			&car.CreatedAt,
			&car.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	query := `
		UPDATE cars
		SET plate_number = $2, model = $3, seats = $4, hourly_rate = $5,
		    daily_rate = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		car.ID,
		car.PlateNumber,
		car.Model,
		car.Seats,
		car.HourlyRate,
		car.DailyRate,
		car.IsActive,
		car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update car",
			zap.Error(err),
			zap.String("car_id", car.ID.String()),
		)
		return fmt.Errorf("update car %s: %w", car.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", car.ID.String())
	}

	return nil
}
