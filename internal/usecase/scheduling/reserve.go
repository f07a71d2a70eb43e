package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type ReserveInput struct {
	ClinicID       uint
	PractitionerID uint
	PatientID      uint
	ServiceID      uint

	Date        string // "YYYY-MM-DD", clinic-local
	StartMinute int
	DurationMin int
	BufferMin   int
	Notes       string

	Now time.Time // current clinic-local time
}

// ======================================================
// USE CASE — Reservation Coordinator
// ======================================================

// Reserve holds the check-and-commit path. Listing slots and then writing a
// booking as two separate steps is a check-then-act race: two concurrent
// requests can both see the slot free and both commit. The whole
// re-validation plus insert therefore runs inside the ledger's
// per-(practitioner, date) section.
type Reserve struct {
	store    schedule.Store
	ledger   schedule.Ledger
	logger   *zap.Logger
	lockWait time.Duration
}

func NewReserve(
	store schedule.Store,
	ledger schedule.Ledger,
	logger *zap.Logger,
	lockWait time.Duration,
) *Reserve {
	return &Reserve{
		store:    store,
		ledger:   ledger,
		logger:   logger,
		lockWait: lockWait,
	}
}

func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*models.Booking, error) {

	if in.StartMinute < 0 || in.StartMinute >= timeutil.MinutesPerDay {
		return nil, httperr.ErrBusiness("invalid_start_minute")
	}
	if in.DurationMin <= 0 || in.StartMinute+in.DurationMin > timeutil.MinutesPerDay {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	getSlots := NewGetSlots(uc.store)

	var booking *models.Booking

	err := uc.ledger.WithLock(ctx, in.PractitionerID, in.Date, uc.lockWait, func(ctx context.Context) error {

		// Re-validate against the current booking state, never the list the
		// client saw. Same generation path, same buffer rule.
		slots, err := getSlots.Execute(ctx, GetSlotsInput{
			PractitionerID: in.PractitionerID,
			Date:           in.Date,
			DurationMin:    in.DurationMin,
			BufferMin:      in.BufferMin,
			Now:            in.Now,
		})
		if err != nil {
			return err
		}

		slot, ok := schedule.FindSlot(slots, in.StartMinute)
		if !ok {
			// Not on the current grid: the schedule changed since the client
			// queried, or the start was never a valid candidate.
			return &schedule.ConflictError{Reason: schedule.ReasonTaken}
		}
		if !slot.Available {
			reason := slot.Reason
			if strings.HasPrefix(reason, "Already booked") {
				reason = schedule.ReasonTaken
			}
			return &schedule.ConflictError{Reason: reason}
		}

		booking = &models.Booking{
			ClinicID:         in.ClinicID,
			PractitionerID:   in.PractitionerID,
			PatientID:        in.PatientID,
			ServiceID:        in.ServiceID,
			Date:             in.Date,
			StartMinute:      in.StartMinute,
			DurationMin:      in.DurationMin,
			Status:           string(schedule.StatusConfirmed),
			ConfirmationCode: uuid.NewString(),
			Notes:            in.Notes,
		}

		if err := uc.ledger.InsertBooking(ctx, booking); err != nil {
			if errors.Is(err, schedule.ErrDuplicateSlot) {
				return &schedule.ConflictError{Reason: schedule.ReasonTaken}
			}
			return err
		}
		return nil
	})

	if err != nil {
		if ce, ok := schedule.AsConflict(err); ok {
			uc.logger.Info("reservation conflict",
				zap.Uint("practitioner_id", in.PractitionerID),
				zap.String("date", in.Date),
				zap.Int("start_minute", in.StartMinute),
				zap.String("reason", ce.Reason),
			)
		}
		return nil, err
	}

	uc.logger.Info("booking reserved",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("practitioner_id", in.PractitionerID),
		zap.String("date", in.Date),
		zap.String("start", timeutil.ToClock24(in.StartMinute)),
	)

	return booking, nil
}
