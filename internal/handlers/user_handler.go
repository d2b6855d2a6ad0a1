package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	"github.com/vilaverde-labs/shop-api/internal/dto"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/httpresp"
	"github.com/vilaverde-labs/shop-api/internal/models"
	"github.com/vilaverde-labs/shop-api/internal/validators"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// --------- Handlers ---------

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "invalid e-mail address")
		return
	}

	// Unscoped: e-mail de conta soft-deletada continua reservado.
	var count int64
	h.db.Model(&models.User{}).Unscoped().Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "failed to hash password")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleClient,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "failed to create user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, dto.FromUser(&user))
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "failed to list users")
		return
	}

	httpresp.List(c, dto.FromUsers(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "user not found")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "failed to get user")
		return
	}

	httpresp.OK(c, dto.FromUser(&user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "user not found")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "failed to get user")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if !validators.IsEmailValid(email) {
			httperr.BadRequest(c, "invalid_email", "invalid e-mail address")
			return
		}

		if email != user.Email {
			var count int64
			h.db.Model(&models.User{}).Unscoped().Where("email = ?", email).Count(&count)
			if count > 0 {
				httperr.Conflict(c, "email_already_registered", "email already registered")
				return
			}
		}
		user.Email = email
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, "invalid_password", "password must have at least 6 characters")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "failed to hash password")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "failed to update user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, dto.FromUser(&user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "user not found")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "failed to get user")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "failed to delete user")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.Status(http.StatusNoContent)
}
