package reservation

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

// Коды ошибок PostgreSQL, которые репозиторий переводит в доменные ошибки
const (
	pgExclusionViolation   = "23P01" // exclusion constraint на (listing_id, tstzrange)
	pgUniqueViolation      = "23505" // unique constraint на confirmation_number
	pgSerializationFailure = "40001" // конфликт сериализации, повторяется txmanager
)

var reservationColumns = []string{
	"id",
	"listing_id",
	"guest_id",
	"venue_type",
	"booking_type",
	"source",
	"start_time",
	"end_time",
	"guest_count",
	"unit_price",
	"unit_count",
	"total_price",
	"discount_amount",
	"final_price",
	"currency",
	"status",
	"confirmation_number",
	"special_requests",
	"cancellation_reason",
	"confirmed_at",
	"cancelled_at",
	"checked_in_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Ошибки целостности переводятся в доменные:
//   - нарушение exclusion constraint по интервалу -> ErrWindowConflict
//   - нарушение уникальности confirmation_number -> ErrDuplicateConfirmation
//
// Бронирование с пересекающимся интервалом не может быть вставлено физически,
// даже если проверка HasOverlap была пройдена в другой транзакции.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"listing_id",
			"guest_id",
			"venue_type",
			"booking_type",
			"source",
			"start_time",
			"end_time",
			"guest_count",
			"unit_price",
			"unit_count",
			"total_price",
			"discount_amount",
			"final_price",
			"currency",
			"status",
			"confirmation_number",
			"special_requests",
			"confirmed_at",
		).
		Values(
			res.ListingID,
			res.GuestID,
			res.VenueType,
			res.BookingType,
			res.Source,
			res.StartTime,
			res.EndTime,
			res.GuestCount,
			res.UnitPrice,
			res.UnitCount,
			res.TotalPrice,
			res.DiscountAmount,
			res.FinalPrice,
			res.Currency,
			res.Status,
			res.ConfirmationNumber,
			res.SpecialRequests,
			res.ConfirmedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByConfirmationNumber получает бронирование по номеру подтверждения
func (r *Repository) GetByConfirmationNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"confirmation_number": number}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfirmationNumber - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConfirmationNumber - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByGuestID получает список бронирований гостя
// Опционально фильтрует по статусу
func (r *Repository) GetByGuestID(ctx context.Context, guestID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"guest_id": guestID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByListingWithFilter получает бронирования площадки с гибкой фильтрацией.
// StartDate/EndDate ограничивают бронирования, чей интервал пересекается с периодом.
// Если не задан конкретный статус и IncludeReleased=false, отменённые и отклонённые
// бронирования исключаются.
func (r *Repository) GetByListingWithFilter(ctx context.Context, filter domain.ListingReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"listing_id": filter.ListingID})

	// Пересечение с периодом, а не вхождение: многодневные бронирования
	// должны попадать в выборку каждого затронутого дня
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeReleased {
		releasedStatusStrings := make([]string, len(domain.ReleasedStatuses))
		for i, s := range domain.ReleasedStatuses {
			releasedStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": releasedStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	// Внутри транзакции блокируем строки выборки: usecase создания бронирования
	// читает занятые интервалы перед вставкой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByListingWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByListingWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// HasOverlap проверяет, занят ли интервал [start, end) на площадке.
// Интервалы полуоткрытые: касание границ пересечением не считается.
// excludeID позволяет пропустить собственное бронирование при перепроверке.
// Внутри транзакции конфликтующие строки блокируются (FOR UPDATE).
func (r *Repository) HasOverlap(ctx context.Context, listingID int64, start, end time.Time, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	releasedStatusStrings := make([]string, len(domain.ReleasedStatuses))
	for i, s := range domain.ReleasedStatuses {
		releasedStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.NotEq{"status": releasedStatusStrings}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return false, mapped
		}
		return false, fmt.Errorf("%w: HasOverlap - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования и проставляет таймстемп перехода.
// confirmed -> confirmed_at, in_progress -> checked_in_at,
// cancelled/rejected -> cancelled_at.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	switch status {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.Set("confirmed_at", squirrel.Expr("NOW()"))
	case domain.StatusInProgress:
		updateBuilder = updateBuilder.Set("checked_in_at", squirrel.Expr("NOW()"))
	case domain.StatusCancelled, domain.StatusRejected:
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет или отклоняет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// mapConstraintError переводит нарушения ограничений PostgreSQL в доменные
// ошибки. Конфликт сериализации (40001) возвращается как есть: его должен
// увидеть errors.As в txmanager, обертка с %v разорвала бы цепочку.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pgExclusionViolation:
		return ErrWindowConflict
	case pgUniqueViolation:
		return ErrDuplicateConfirmation
	case pgSerializationFailure:
		return err
	}
	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ListingID,
		&res.GuestID,
		&res.VenueType,
		&res.BookingType,
		&res.Source,
		&res.StartTime,
		&res.EndTime,
		&res.GuestCount,
		&res.UnitPrice,
		&res.UnitCount,
		&res.TotalPrice,
		&res.DiscountAmount,
		&res.FinalPrice,
		&res.Currency,
		&res.Status,
		&res.ConfirmationNumber,
		&res.SpecialRequests,
		&res.CancellationReason,
		&res.ConfirmedAt,
		&res.CancelledAt,
		&res.CheckedInAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
