package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/middleware"
	"github.com/nassimidr/Emall/services"
)

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"omitempty,min=2"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type AuthController struct {
	service services.AuthService
}

func NewAuthController(service services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register creates an account and issues a token right away.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid registration payload"))
		return
	}

	user, token, err := ac.service.Register(c.Request.Context(), req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Email and password are required"))
		return
	}

	user, token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout is stateless; the client discards its token.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	user, err := ac.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid profile payload"))
		return
	}

	user, err := ac.service.UpdateProfile(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
