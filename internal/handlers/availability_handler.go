package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/middleware"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// --------- Requests ---------

type WeeklyWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WeeklyWindowsUpdateRequest struct {
	Windows []WeeklyWindowConfig `json:"windows" binding:"required"`
}

type CreateRecurringBreakRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Weekdays  string `json:"weekdays" binding:"required"`
}

type UpsertDateExceptionRequest struct {
	Date      string `json:"date" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

// checkClockRange rejects malformed or inverted "HH:MM" pairs.
func checkClockRange(start, end string) bool {
	s, err := timeutil.ToMinutes(start)
	if err != nil {
		return false
	}
	e, err := timeutil.ToMinutes(end)
	if err != nil {
		return false
	}
	return s < e
}

// ======================================================
// WEEKLY WINDOWS
// ======================================================

func (h *AvailabilityHandler) GetWeeklyWindows(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	var windows []models.WeeklyWindow
	if err := h.db.
		Where("practitioner_id = ?", practitionerID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_weekly_windows"})
		return
	}

	c.JSON(http.StatusOK, windows)
}

// UpdateWeeklyWindows replaces the practitioner's whole weekly schedule.
// Windows on the same weekday may not overlap each other.
func (h *AvailabilityHandler) UpdateWeeklyWindows(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	var req WeeklyWindowsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	type minuteRange struct{ start, end int }
	byWeekday := map[int][]minuteRange{}

	for _, w := range req.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Weekday must be 0 (Sunday) through 6 (Saturday).")
			return
		}
		if !checkClockRange(w.StartTime, w.EndTime) {
			httperr.BadRequest(c, "invalid_window", "Window times must be valid and start before end.")
			return
		}

		s, _ := timeutil.ToMinutes(w.StartTime)
		e, _ := timeutil.ToMinutes(w.EndTime)
		for _, other := range byWeekday[w.Weekday] {
			if timeutil.Overlaps(s, e, other.start, other.end) {
				httperr.BadRequest(c, "overlapping_windows", "Windows on the same weekday may not overlap.")
				return
			}
		}
		byWeekday[w.Weekday] = append(byWeekday[w.Weekday], minuteRange{s, e})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("practitioner_id = ?", practitionerID).
			Delete(&models.WeeklyWindow{}).Error; err != nil {
			return err
		}

		var toCreate []models.WeeklyWindow
		for _, w := range req.Windows {
			toCreate = append(toCreate, models.WeeklyWindow{
				PractitionerID: practitionerID,
				Weekday:        w.Weekday,
				StartTime:      w.StartTime,
				EndTime:        w.EndTime,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_weekly_windows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// RECURRING BREAKS
// ======================================================

func (h *AvailabilityHandler) ListBreaks(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	var breaks []models.RecurringBreak
	if err := h.db.
		Where("practitioner_id = ?", practitionerID).
		Order("start_time ASC").
		Find(&breaks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_breaks"})
		return
	}

	c.JSON(http.StatusOK, breaks)
}

func (h *AvailabilityHandler) CreateBreak(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRecurringBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !checkClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_break", "Break times must be valid and start before end.")
		return
	}

	br := models.RecurringBreak{
		PractitionerID: practitionerID,
		Name:           req.Name,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Weekdays:       req.Weekdays,
	}

	if err := h.db.Create(&br).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_break"})
		return
	}

	c.JSON(http.StatusCreated, br)
}

func (h *AvailabilityHandler) DeleteBreak(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND practitioner_id = ?", id, practitionerID).
		Delete(&models.RecurringBreak{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_break"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "break_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// DATE EXCEPTIONS
// ======================================================

func (h *AvailabilityHandler) ListExceptions(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	from := c.Query("from")
	to := c.Query("to")

	q := h.db.Where("practitioner_id = ?", practitionerID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var exceptions []models.DateException
	if err := q.
		Order("date ASC").
		Find(&exceptions).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_exceptions"})
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

// UpsertException keeps at most one exception per practitioner-day. A second
// write for the same date replaces the first.
func (h *AvailabilityHandler) UpsertException(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpsertDateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	switch req.Kind {
	case models.ExceptionUnavailable:
		req.StartTime = ""
		req.EndTime = ""
	case models.ExceptionSpecialHours, models.ExceptionMeeting, models.ExceptionBreak:
		if !checkClockRange(req.StartTime, req.EndTime) {
			httperr.BadRequest(c, "invalid_exception_times", "Exception times must be valid and start before end.")
			return
		}
	default:
		httperr.BadRequest(c, "invalid_exception_kind", "Kind must be unavailable, special_hours, meeting or break.")
		return
	}

	if _, err := parseDateInClinic(nil, req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	ex := models.DateException{
		PractitionerID: practitionerID,
		Date:           req.Date,
		Kind:           req.Kind,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Label:          req.Label,
	}

	if err := h.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "practitioner_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"kind", "start_time", "end_time", "label", "updated_at",
			}),
		}).
		Create(&ex).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_exception"})
		return
	}

	c.JSON(http.StatusOK, ex)
}

func (h *AvailabilityHandler) DeleteException(c *gin.Context) {
	practitionerID := c.MustGet(middleware.ContextUserID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	res := h.db.
		Where("practitioner_id = ? AND date = ?", practitionerID, date).
		Delete(&models.DateException{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_exception"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "exception_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
