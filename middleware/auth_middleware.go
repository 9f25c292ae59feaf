package middleware

import (
	"net/http"
	"strings"

	"rooms-api/dto"
	"rooms-api/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware valida el JWT token en cada request
// Si el token es válido, permite continuar
// Si no, devuelve error 401 (Unauthorized)
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obtener el header "Authorization"
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false,
				Message: "authorization header required",
			})
			c.Abort() // Detiene la ejecución
			return
		}

		// Formato esperado: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false,
				Message: "invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validar el token
		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false,
				Message: "invalid or expired token",
			})
			c.Abort()
			return
		}

		// Guardar la info del usuario en el contexto
		// Así los endpoints pueden saber quién hizo la request
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next() // Continúa con el endpoint
	}
}

// AgentMiddleware valida que el usuario sea agente
// Este middleware se usa DESPUÉS de AuthMiddleware
// Un rol distinto devuelve 403, NO 401: "logueado pero sin permiso"
// es una señal distinta a "no logueado"
func AgentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false,
				Message: "role not found",
			})
			c.Abort()
			return
		}

		if role != "agent" {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Success: false,
				Message: "agent privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
