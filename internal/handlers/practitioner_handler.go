package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/httperr"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/middleware"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/validators"
)

type PractitionerHandler struct {
	db *gorm.DB
}

func NewPractitionerHandler(db *gorm.DB) *PractitionerHandler {
	return &PractitionerHandler{db: db}
}

type CreatePractitionerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdatePractitionerRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

func (h *PractitionerHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var practitioners []models.User
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&practitioners).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_practitioners"})
		return
	}

	c.JSON(http.StatusOK, practitioners)
}

// Create adds a practitioner account to the caller's clinic. Admin only.
func (h *PractitionerHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != "admin" {
		httperr.Write(c, http.StatusForbidden, "forbidden", "Only clinic admins can add practitioners.")
		return
	}

	var req CreatePractitionerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	practitioner := models.User{
		ClinicID:     clinicID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "practitioner",
		Specialty:    req.Specialty,
	}

	if err := h.db.Create(&practitioner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_practitioner"})
		return
	}

	c.JSON(http.StatusCreated, practitioner)
}

func (h *PractitionerHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var practitioner models.User
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&practitioner).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "practitioner_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_practitioner"})
		return
	}

	var req UpdatePractitionerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		practitioner.Name = *req.Name
	}
	if req.Phone != nil {
		practitioner.Phone = *req.Phone
	}
	if req.Specialty != nil {
		practitioner.Specialty = *req.Specialty
	}

	if err := h.db.Save(&practitioner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_practitioner"})
		return
	}

	c.JSON(http.StatusOK, practitioner)
}
