package controllers

import (
	"net/http"

	"rooms-api/dto"
	"rooms-api/services"

	"github.com/gin-gonic/gin"
)

// UserController maneja los endpoints HTTP de usuarios
type UserController struct {
	service services.UserService
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Register maneja POST /api/users
// Este endpoint se usa para REGISTRAR un nuevo usuario
func (ctrl *UserController) Register(c *gin.Context) {
	// 1. Leer el JSON del body y parsearlo a RegisterRequest
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Si el JSON es inválido o faltan campos, devolver error 400
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "validation error",
			Error:   err.Error(),
		})
		return
	}

	// 2. Llamar al servicio para crear el usuario
	user, err := ctrl.service.Register(req)
	if err != nil {
		// Si hay error (email duplicado, rol inválido), devolver 400
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "could not register user",
			Error:   err.Error(),
		})
		return
	}

	// 3. Devolver respuesta exitosa con el usuario creado
	c.JSON(http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login maneja POST /api/users/login
// Autentica al usuario y devuelve el JWT con su rol firmado
func (ctrl *UserController) Login(c *gin.Context) {
	// 1. Leer el JSON del body
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "validation error",
			Error:   err.Error(),
		})
		return
	}

	// 2. Llamar al servicio para hacer login
	// El servicio valida contraseña y genera el JWT
	response, err := ctrl.service.Login(req)
	if err != nil {
		// Si las credenciales son incorrectas, devolver 401 (Unauthorized)
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Success: false,
			Message: "login error",
			Error:   err.Error(),
		})
		return
	}

	// 3. Devolver el token JWT y los datos del usuario
	c.JSON(http.StatusOK, response)
}

// HealthCheck maneja GET /health
// Endpoint simple para verificar que el servicio está corriendo
func (ctrl *UserController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rooms-api",
	})
}
