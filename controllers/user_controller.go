package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soleworks/soleworks-api/models"
	"github.com/soleworks/soleworks-api/services"
)

// CredentialsRequest represents the body of register and login requests
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserController exposes registration and login
type UserController struct {
	db     *gorm.DB
	tokens *services.TokenService
}

// NewUserController creates a user controller
func NewUserController(db *gorm.DB, tokens *services.TokenService) *UserController {
	return &UserController{db: db, tokens: tokens}
}

// Register handles POST /api/v1/users/register - creates a new user
func (ctl *UserController) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Username and password are required",
		})
		return
	}

	user := models.User{
		Username: req.Username,
		Role:     models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
		})
		return
	}

	if err := ctl.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		// Check for duplicate username (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Username already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"user": user},
	})
}

// Login handles POST /api/v1/users/login - verifies credentials and issues
// a role token
func (ctl *UserController) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Username and password are required",
		})
		return
	}

	var user models.User
	err := ctl.db.WithContext(c.Request.Context()).
		Where("username = ?", req.Username).First(&user).Error
	// The same message covers an unknown user and a wrong password
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid username or password",
		})
		return
	}

	token, err := ctl.tokens.Issue(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"token": token},
	})
}
