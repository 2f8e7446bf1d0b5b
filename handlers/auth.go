package handlers

import (
	"net/http"

	"motoschool/clients/schoolapi"
	"motoschool/models"
	"motoschool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler proxies credential exchange to the upstream API. No credential
// or token is stored in this service.
type AuthHandler struct {
	API    schoolapi.Client
	Logger *zap.Logger
}

func NewAuthHandler(api schoolapi.Client, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{API: api, Logger: logger}
}

// Login exchanges an email/password pair for an upstream token.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.API.Login(c.Request.Context(), models.Credentials{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		h.Logger.Warn("login failed", zap.Error(err))
		utils.JSONError(c, http.StatusUnauthorized, "Login failed", "check your email and password and try again")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Register creates an upstream account.
func (h *AuthHandler) Register(c *gin.Context) {
	var creds struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.API.Register(c.Request.Context(), models.Credentials{
		Email:     creds.Email,
		Password:  creds.Password,
		FirstName: creds.FirstName,
		LastName:  creds.LastName,
	})
	if err != nil {
		h.Logger.Warn("registration failed", zap.Error(err))
		utils.JSONError(c, http.StatusUnprocessableEntity, "Registration failed", "please try again")
		return
	}
	c.JSON(http.StatusOK, result)
}
