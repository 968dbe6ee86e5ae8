package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lodgehub/infras/otel"
	"lodgehub/infras/postgres"
	"lodgehub/internal/domains/booking/model"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/logger"
	gRepo "lodgehub/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertGuarded(ctx context.Context, booking model.Booking) (conflicts []model.Booking, err error)
	UpdateGuarded(ctx context.Context, booking model.Booking, fields map[string]any) (conflicts []model.Booking, err error)
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) ([]model.Booking, error)
	Stats(ctx context.Context, filter gDto.FilterGroup) (model.Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const overlapQuery = `
	SELECT id, room_id, guest_name, status, check_in, check_out
	FROM bookings
	WHERE room_id = $1
	  AND status != $2
	  AND check_in < $4
	  AND check_out > $3
	  AND ($5 = '' OR id != $5)
	ORDER BY check_in`

// FindOverlapping returns the non-cancelled bookings for the room whose stay
// windows intersect the given one. excludeID skips the booking being edited.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (result []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

	err = repo.db.Read.SelectContext(ctx, &result, overlapQuery, roomID, constant.BookingStatusCancelled, checkIn, checkOut, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return result, nil
}

// InsertGuarded inserts the booking after re-checking room availability
// inside one transaction. An advisory lock on the room serializes concurrent
// writers so two overlapping bookings cannot both pass the check. When
// conflicts are found nothing is written and they are returned to the caller.
func (repo *repositoryImpl) InsertGuarded(ctx context.Context, booking model.Booking) (conflicts []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	conflicts, err = lockAndFindOverlaps(ctx, tx, booking, constant.Empty)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.ErrorWithStack(rollbackErr)
		}

		return conflicts, nil
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit booking insert: %w", err)
	}

	return nil, nil
}

// UpdateGuarded applies the given field updates to the booking after
// re-checking availability for its (possibly changed) room and stay window.
func (repo *repositoryImpl) UpdateGuarded(ctx context.Context, booking model.Booking, fields map[string]any) (conflicts []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	conflicts, err = lockAndFindOverlaps(ctx, tx, booking, booking.ID)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.ErrorWithStack(rollbackErr)
		}

		return conflicts, nil
	}

	if err = repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit booking update: %w", err)
	}

	return nil, nil
}

const statsQuery = `
	SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
		COUNT(*) FILTER (WHERE status = 'checked_in') AS checked_in,
		COUNT(*) FILTER (WHERE status = 'checked_out') AS checked_out,
		COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
		COUNT(*) FILTER (WHERE status = 'confirmed' AND check_in = CURRENT_DATE) AS today_check_ins,
		COUNT(*) FILTER (WHERE status = 'checked_in' AND check_out = CURRENT_DATE) AS today_check_outs,
		COALESCE(SUM(amount) FILTER (WHERE status != 'cancelled'), 0) AS total_revenue,
		COALESCE(SUM(balance) FILTER (WHERE status IN ('pending', 'confirmed', 'checked_in')), 0) AS outstanding_due
	FROM bookings`

// Stats aggregates booking counts and money totals, optionally narrowed by
// the given filter (lodge scoping, date ranges).
func (repo *repositoryImpl) Stats(ctx context.Context, filter gDto.FilterGroup) (stats model.Stats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := repo.BuildWhereClause(ctx, filter)
	query := statsQuery + where

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return stats, fmt.Errorf("failed to prepare statement (booking stats): %w", err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &stats, args); err != nil {
		logger.ErrorWithStack(err)

		return stats, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}

	return stats, nil
}

func lockAndFindOverlaps(ctx context.Context, tx *sqlx.Tx, booking model.Booking, excludeID string) ([]model.Booking, error) {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", booking.RoomID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to lock room for booking: %w", err)
	}

	var conflicts []model.Booking
	if err := tx.SelectContext(ctx, &conflicts, overlapQuery, booking.RoomID, constant.BookingStatusCancelled, booking.CheckIn, booking.CheckOut, excludeID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return conflicts, nil
}
