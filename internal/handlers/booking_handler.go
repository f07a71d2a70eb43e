package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/domain/schedule"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/middleware"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db       *gorm.DB
	ledger   schedule.Ledger
	getSlots *scheduling.GetSlots
	reserve  *scheduling.Reserve
}

func NewBookingHandler(
	db *gorm.DB,
	ledger schedule.Ledger,
	getSlots *scheduling.GetSlots,
	reserve *scheduling.Reserve,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		ledger:   ledger,
		getSlots: getSlots,
		reserve:  reserve,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateBookingRequest struct {
	PractitionerID uint   `json:"practitioner_id"`
	PatientID      uint   `json:"patient_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM
	Notes          string `json:"notes"`
}

type SlotResponse struct {
	Start     string `json:"start"` // "HH:MM", 24-hour
	End       string `json:"end"`
	Display   string `json:"display"` // "9:00 AM"
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func slotResponses(slots []schedule.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			Start:     timeutil.ToClock24(s.Start),
			End:       timeutil.ToClock24(s.End),
			Display:   timeutil.ToClock12(s.Start),
			Available: s.Available,
			Reason:    s.Reason,
		})
	}
	return out
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) loadClinic(c *gin.Context) (*models.Clinic, bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "clinic_not_found", "Clinic not found.")
		return nil, false
	}
	return &clinic, true
}

// practitionerFor resolves the target practitioner, defaulting to the caller,
// and rejects practitioners outside the caller's clinic.
func (h *BookingHandler) practitionerFor(c *gin.Context, clinic *models.Clinic, idStr string) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if idStr == "" || idStr == "0" {
		return userID, true
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_practitioner_id", "Practitioner id must be numeric.")
		return 0, false
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND clinic_id = ?", id, clinic.ID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "practitioner_not_found", "Practitioner not found.")
		return 0, false
	}

	return uint(id), true
}

func mapReserveError(c *gin.Context, err error) {
	if ce, ok := schedule.AsConflict(err); ok {
		httperr.Conflict(c, "slot_conflict", ce.Reason)
		return
	}
	if err == schedule.ErrBusy {
		httperr.Busy(c, "reservation_busy", "Another reservation is in progress, try again.")
		return
	}
	if httperr.IsBusiness(err, "invalid_duration") ||
		httperr.IsBusiness(err, "invalid_date") ||
		httperr.IsBusiness(err, "invalid_start_minute") {
		httperr.BadRequest(c, "invalid_request", "Invalid booking parameters.")
		return
	}
	httperr.Internal(c, "failed_to_create_booking", "Failed to create the booking.")
}

// ======================================================
// SLOTS
// ======================================================

func (h *BookingHandler) ListSlots(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}

	practitionerID, ok := h.practitionerFor(c, clinic, c.Query("practitioner_id"))
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}
	if _, err := parseDateInClinic(clinic, dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	duration, ok := h.resolveDuration(c, clinic)
	if !ok {
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), scheduling.GetSlotsInput{
		PractitionerID: practitionerID,
		Date:           dateStr,
		DurationMin:    duration,
		BufferMin:      clinic.BufferMinutes,
		Now:            nowInClinic(clinic),
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_duration") || httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_request", "Invalid slot parameters.")
			return
		}
		httperr.Internal(c, "slots_failed", "Failed to compute slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slotResponses(slots),
	})
}

// resolveDuration takes either an explicit duration_minutes or a service_id
// whose duration is used.
func (h *BookingHandler) resolveDuration(c *gin.Context, clinic *models.Clinic) (int, bool) {
	if d := c.Query("duration_minutes"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be a positive number of minutes.")
			return 0, false
		}
		return n, true
	}

	serviceIDStr := c.Query("service_id")
	if serviceIDStr == "" {
		httperr.BadRequest(c, "missing_duration", "Either service_id or duration_minutes is required.")
		return 0, false
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Service id must be numeric.")
		return 0, false
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND clinic_id = ? AND active = true", serviceID, clinic.ID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Service not found.")
		return 0, false
	}

	return service.DurationMin, true
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	practitionerID := req.PractitionerID
	if practitionerID == 0 {
		practitionerID = c.MustGet(middleware.ContextUserID).(uint)
	} else {
		var count int64
		h.db.Model(&models.User{}).
			Where("id = ? AND clinic_id = ?", practitionerID, clinic.ID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "practitioner_not_found", "Practitioner not found.")
			return
		}
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.PatientID, clinic.ID).
		First(&patient).Error; err != nil {
		httperr.BadRequest(c, "patient_not_found", "Patient not found.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND clinic_id = ? AND active = true", req.ServiceID, clinic.ID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Service not found.")
		return
	}

	if _, err := parseDateInClinic(clinic, req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	startMinute, err := timeutil.ToMinutes(req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Time must be a valid clock time.")
		return
	}

	booking, err := h.reserve.Execute(c.Request.Context(), scheduling.ReserveInput{
		ClinicID:       clinic.ID,
		PractitionerID: practitionerID,
		PatientID:      patient.ID,
		ServiceID:      service.ID,
		Date:           req.Date,
		StartMinute:    startMinute,
		DurationMin:    service.DurationMin,
		BufferMin:      clinic.BufferMinutes,
		Notes:          req.Notes,
		Now:            nowInClinic(clinic),
	})
	if err != nil {
		mapReserveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}

	practitionerID, ok := h.practitionerFor(c, clinic, c.Query("practitioner_id"))
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}
	if _, err := parseDateInClinic(clinic, dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	var bookings []models.Booking
	h.db.
		Preload("Patient").
		Preload("Service").
		Where("practitioner_id = ? AND date = ?", practitionerID, dateStr).
		Order("start_minute ASC").
		Find(&bookings)

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}

	practitionerID, ok := h.practitionerFor(c, clinic, c.Query("practitioner_id"))
	if !ok {
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	loc := locationFromClinic(clinic)
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	var bookings []models.Booking
	h.db.
		Preload("Patient").
		Preload("Service").
		Where(
			"practitioner_id = ? AND date >= ? AND date <= ?",
			practitionerID, first.Format("2006-01-02"), last.Format("2006-01-02"),
		).
		Order("date ASC, start_minute ASC").
		Find(&bookings)

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinic.ID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := schedule.Cancel(&booking, nowInClinic(clinic)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Booking cannot be cancelled.")
		return
	}

	if err := h.ledger.CancelBooking(c.Request.Context(), &booking); err != nil {
		httperr.Internal(c, "failed_to_cancel_booking", "Failed to cancel the booking.")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	clinic, ok := h.loadClinic(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinic.ID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := schedule.Complete(&booking, nowInClinic(clinic)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Booking cannot be completed.")
		return
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_complete_booking", "Failed to complete the booking.")
		return
	}

	c.JSON(http.StatusOK, booking)
}
