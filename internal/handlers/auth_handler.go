package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	"github.com/salaoflow/salon-scheduler/internal/config"
	"github.com/salaoflow/salon-scheduler/internal/entitlement"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
	"github.com/salaoflow/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	SalonName    string `json:"salon_name" binding:"required"`
	SalonSlug    string `json:"salon_slug" binding:"required"`
	SalonPhone   string `json:"salon_phone"`
	SalonAddress string `json:"salon_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.SalonSlug))

	var count int64
	h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	// novo tenant entra em período de teste
	salon := models.Salon{
		Name:               req.SalonName,
		Slug:               slug,
		Phone:              req.SalonPhone,
		Address:            req.SalonAddress,
		OpeningHours:       schedule.DefaultOpeningHours(),
		SubscriptionStatus: string(entitlement.StatusTrial),
		OwnerEmail:         req.Email,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_salon"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		SalonID:      salon.ID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.signToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sign_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"salon": salon,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	now := clock.Now()
	h.db.Model(&models.Salon{}).
		Where("id = ?", user.SalonID).
		Update("last_login", now)

	token, err := h.signToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sign_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) signToken(user *models.User) (string, error) {
	role := user.Role
	if h.config.SuperadminEmail != "" &&
		strings.EqualFold(user.Email, h.config.SuperadminEmail) {
		role = "superadmin"
	}

	claims := jwt.MapClaims{
		"sub":     float64(user.ID),
		"salonId": float64(user.SalonID),
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
