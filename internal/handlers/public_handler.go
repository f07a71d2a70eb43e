package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timeutil"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/usecase/scheduling"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db       *gorm.DB
	getSlots *scheduling.GetSlots
	reserve  *scheduling.Reserve
}

func NewPublicHandler(
	db *gorm.DB,
	getSlots *scheduling.GetSlots,
	reserve *scheduling.Reserve,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		getSlots: getSlots,
		reserve:  reserve,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	PatientName    string `json:"patient_name" binding:"required"`
	PatientPhone   string `json:"patient_phone" binding:"required"`
	PatientEmail   string `json:"patient_email"`
	PractitionerID uint   `json:"practitioner_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM
	Notes          string `json:"notes"`
}

type publicPractitioner struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) clinicBySlug(c *gin.Context) (*models.Clinic, bool) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return nil, false
	}
	return &clinic, true
}

func tooSoon(clinic *models.Clinic, start time.Time) bool {
	minAdvance := clinic.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}
	minAllowed := nowInClinic(clinic).Add(time.Duration(minAdvance) * time.Minute)
	return start.Before(minAllowed)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("clinic_id = ? AND active = true", clinic.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clinic":   clinic,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// PRACTITIONERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListPractitioners(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	var users []models.User
	if err := h.db.
		Where("clinic_id = ?", clinic.ID).
		Order("name ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_practitioners", "Failed to list practitioners.")
		return
	}

	out := make([]publicPractitioner, 0, len(users))
	for _, u := range users {
		out = append(out, publicPractitioner{
			ID:        u.ID,
			Name:      u.Name,
			Specialty: u.Specialty,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"clinic":        clinic,
		"practitioners": out,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSlots(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	practitionerIDStr := c.Query("practitioner_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || practitionerIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date, practitioner and service are required.")
		return
	}

	practitionerID, err := strconv.ParseUint(practitionerIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_practitioner_id", "Practitioner id must be numeric.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND clinic_id = ?", practitionerID, clinic.ID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "practitioner_not_found", "Practitioner not found.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Service id must be numeric.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND clinic_id = ? AND active = true", serviceID, clinic.ID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Service not found.")
		return
	}

	if _, err := parseDateInClinic(clinic, dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), scheduling.GetSlotsInput{
		PractitionerID: uint(practitionerID),
		Date:           dateStr,
		DurationMin:    service.DurationMin,
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

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validators.IsPhonePlausible(req.PatientPhone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND clinic_id = ?", req.PractitionerID, clinic.ID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "practitioner_not_found", "Practitioner not found.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND clinic_id = ? AND active = true", req.ServiceID, clinic.ID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Service not found.")
		return
	}

	date, err := parseDateInClinic(clinic, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	startMinute, err := timeutil.ToMinutes(req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Time must be a valid clock time.")
		return
	}

	start := date.Add(time.Duration(startMinute) * time.Minute)
	if tooSoon(clinic, start) {
		httperr.BadRequest(c, "too_soon", "The slot is too close to now for an online booking.")
		return
	}

	// Returning patients are matched by phone within the clinic.
	var patient models.Patient
	if err := h.db.
		Where("clinic_id = ? AND phone = ?", clinic.ID, req.PatientPhone).
		First(&patient).Error; err != nil {

		patient = models.Patient{
			ClinicID: clinic.ID,
			Name:     req.PatientName,
			Phone:    req.PatientPhone,
			Email:    strings.ToLower(strings.TrimSpace(req.PatientEmail)),
		}
		if err := h.db.Create(&patient).Error; err != nil {
			httperr.Internal(c, "failed_to_create_patient", "Failed to register the patient.")
			return
		}
	}

	booking, err := h.reserve.Execute(c.Request.Context(), scheduling.ReserveInput{
		ClinicID:       clinic.ID,
		PractitionerID: req.PractitionerID,
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

	c.JSON(http.StatusCreated, gin.H{
		"booking":           booking,
		"confirmation_code": booking.ConfirmationCode,
	})
}
