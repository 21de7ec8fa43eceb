package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/pkg/dbmetrics"
	"github.com/kaancelik05/swimago-api-sub000/pkg/psqlbuilder"
)

// pgSerializationFailure конфликт сериализации, повторяется txmanager
const pgSerializationFailure = "40001"

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var overrideColumns = []string{
	"id",
	"listing_id",
	"date",
	"price",
	"hourly_price",
	"is_available",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с календарными переопределениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет переопределение для (listing_id, date).
// Семантика last-writer-wins: конкурентные правки календаря не сериализуются.
func (r *Repository) Upsert(ctx context.Context, override *domain.DailyOverride) (*domain.DailyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_overrides").
		Columns(
			"listing_id",
			"date",
			"price",
			"hourly_price",
			"is_available",
			"note",
		).
		Values(
			override.ListingID,
			override.Date,
			override.Price,
			override.HourlyPrice,
			override.IsAvailable,
			override.Note,
		).
		Suffix(`ON CONFLICT (listing_id, date) DO UPDATE SET
			price = EXCLUDED.price,
			hourly_price = EXCLUDED.hourly_price,
			is_available = EXCLUDED.is_available,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// GetByListingAndDate получает переопределение на конкретную дату
func (r *Repository) GetByListingAndDate(ctx context.Context, listingID int64, date time.Time) (*domain.DailyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("daily_overrides").
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.Eq{"date": domain.DayKey(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByListingAndDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByListingAndDate - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetByListingAndPeriod получает переопределения площадки на все календарные
// дни с DayKey(from) по DayKey(to) включительно. Верхняя граница входит в
// выборку: окно [from, to) с ненулевым временем to затрагивает и день to.
func (r *Repository) GetByListingAndPeriod(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.DailyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("daily_overrides").
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.GtOrEq{"date": domain.DayKey(from)}).
		Where(squirrel.LtOrEq{"date": domain.DayKey(to)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByListingAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Конфликт сериализации отдаем без обертки, чтобы errors.As
		// в txmanager мог его увидеть и повторить транзакцию
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetByListingAndPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DailyOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByListingAndPeriod - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByListingAndPeriod - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.DailyOverride, error) {
	var override domain.DailyOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.ListingID,
		&override.Date,
		&override.Price,
		&override.HourlyPrice,
		&override.IsAvailable,
		&override.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
