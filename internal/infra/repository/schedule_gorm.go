package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/lock"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
)

type ScheduleGormRepository struct {
	db     *gorm.DB
	locker *lock.Manager
}

func NewScheduleGormRepository(db *gorm.DB, locker *lock.Manager) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db, locker: locker}
}

// --------------------------------------------------
// Schedule Store (read side)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWeeklyWindows(
	ctx context.Context,
	practitionerID uint,
	weekday int,
) ([]schedule.TimeWindow, error) {

	var rows []models.WeeklyWindow
	if err := r.db.WithContext(ctx).
		Where("practitioner_id = ? AND weekday = ?", practitionerID, weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	windows := make([]schedule.TimeWindow, 0, len(rows))
	for _, row := range rows {
		w, err := windowFromClocks(row.StartTime, row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("weekly window %d: %w", row.ID, err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (r *ScheduleGormRepository) GetRecurringBreaks(
	ctx context.Context,
	practitionerID uint,
	weekday int,
) ([]schedule.Blocked, error) {

	var rows []models.RecurringBreak
	if err := r.db.WithContext(ctx).
		Where("practitioner_id = ?", practitionerID).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var blocked []schedule.Blocked
	for _, row := range rows {
		if !row.AppliesOn(weekday) {
			continue
		}
		w, err := windowFromClocks(row.StartTime, row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("recurring break %d: %w", row.ID, err)
		}
		blocked = append(blocked, schedule.Blocked{Window: w, Label: row.Name})
	}
	return blocked, nil
}

func (r *ScheduleGormRepository) GetDateException(
	ctx context.Context,
	practitionerID uint,
	date string,
) (*schedule.Exception, error) {

	var row models.DateException
	err := r.db.WithContext(ctx).
		Where("practitioner_id = ? AND date = ?", practitionerID, date).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ex := &schedule.Exception{Kind: row.Kind, Label: row.Label}
	if row.Kind != models.ExceptionUnavailable {
		w, err := windowFromClocks(row.StartTime, row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("date exception %d: %w", row.ID, err)
		}
		ex.Window = w
	}
	return ex, nil
}

func (r *ScheduleGormRepository) GetBookings(
	ctx context.Context,
	practitionerID uint,
	date string,
) ([]schedule.BookingInterval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"practitioner_id = ? AND date = ? AND status = ?",
			practitionerID, date, string(schedule.StatusConfirmed),
		).
		Order("start_minute ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.BookingInterval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, schedule.BookingInterval{
			Start:    row.StartMinute,
			Duration: row.DurationMin,
		})
	}
	return intervals, nil
}

// --------------------------------------------------
// Reservation Ledger (write side)
// --------------------------------------------------

func reservationKey(practitionerID uint, date string) string {
	return fmt.Sprintf("reservation:%d:%s", practitionerID, date)
}

func (r *ScheduleGormRepository) WithLock(
	ctx context.Context,
	practitionerID uint,
	date string,
	wait time.Duration,
	fn func(ctx context.Context) error,
) error {

	key := reservationKey(practitionerID, date)

	token, err := r.locker.Acquire(ctx, key, wait)
	if err != nil {
		if err == lock.ErrNotAcquired {
			return schedule.ErrBusy
		}
		return err
	}

	// Once inside the section the commit runs to completion even if the
	// caller goes away; a half-written booking must never be observable.
	inner := context.WithoutCancel(ctx)
	defer func() {
		_ = r.locker.Release(context.Background(), key, token)
	}()

	return fn(inner)
}

func (r *ScheduleGormRepository) InsertBooking(
	ctx context.Context,
	booking *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"practitioner_id = ? AND date = ? AND status = ? AND start_minute < ? AND start_minute + duration_min > ?",
				booking.PractitionerID,
				booking.Date,
				string(schedule.StatusConfirmed),
				booking.EndMinute(),
				booking.StartMinute,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return schedule.ErrDuplicateSlot
		}

		return tx.Create(booking).Error
	})

	if err != nil && httperr.IsConstraintConflict(err) {
		return schedule.ErrDuplicateSlot
	}
	return err
}

func (r *ScheduleGormRepository) CancelBooking(
	ctx context.Context,
	booking *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// --------------------------------------------------

func windowFromClocks(start, end string) (schedule.TimeWindow, error) {
	startMin, err := timeutil.ToMinutes(start)
	if err != nil {
		return schedule.TimeWindow{}, err
	}
	endMin, err := timeutil.ToMinutes(end)
	if err != nil {
		return schedule.TimeWindow{}, err
	}
	if endMin <= startMin {
		return schedule.TimeWindow{}, fmt.Errorf("%w: window %s-%s", timeutil.ErrInvalidTimeFormat, start, end)
	}
	return schedule.TimeWindow{Start: startMin, End: endMin}, nil
}

// Compile-time checks
var (
	_ schedule.Store  = (*ScheduleGormRepository)(nil)
	_ schedule.Ledger = (*ScheduleGormRepository)(nil)
)
