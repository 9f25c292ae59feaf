package controllers

import (
	"errors"
	"net/http"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
	"rooms-api/services"

	"github.com/gin-gonic/gin"
)

// ModerationController maneja los endpoints del dashboard de agentes
// Todas estas rutas van detrás de AuthMiddleware + AgentMiddleware
type ModerationController struct {
	service services.ModerationService
}

// NewModerationController crea una nueva instancia del controlador
func NewModerationController(service services.ModerationService) *ModerationController {
	return &ModerationController{service: service}
}

// actorFromContext arma el Actor con los claims que dejó el middleware
func actorFromContext(c *gin.Context) services.Actor {
	actor := services.Actor{}
	if email, ok := c.Get("email"); ok {
		actor.Email, _ = email.(string)
	}
	if name, ok := c.Get("name"); ok {
		actor.Name, _ = name.(string)
	}
	if role, ok := c.Get("role"); ok {
		if roleStr, isString := role.(string); isString {
			actor.Role = domain.Role(roleStr)
		}
	}
	return actor
}

// ListRooms maneja GET /api/agent/rooms
// Devuelve todas las publicaciones (cualquier estado) más los contadores
// Acepta ?status=pending|approved|rejected|all para filtrar
func (ctrl *ModerationController) ListRooms(c *gin.Context) {
	rooms, counts, err := ctrl.service.ListRooms(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error fetching rooms",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.AgentRoomsResponse{
		Success: true,
		Data:    rooms,
		Counts:  counts,
	})
}

// Approve maneja PUT /api/agent/rooms/:id/approve
func (ctrl *ModerationController) Approve(c *gin.Context) {
	room, err := ctrl.service.Approve(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		ctrl.writeModerationError(c, err, "Error approving room")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Room approved successfully",
		Data:    room,
	})
}

// Reject maneja PUT /api/agent/rooms/:id/reject
func (ctrl *ModerationController) Reject(c *gin.Context) {
	room, err := ctrl.service.Reject(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		ctrl.writeModerationError(c, err, "Error rejecting room")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Room rejected successfully",
		Data:    room,
	})
}

// Delete maneja DELETE /api/agent/rooms/:id
// Borra la publicación desde cualquier estado (no hay papelera)
func (ctrl *ModerationController) Delete(c *gin.Context) {
	room, err := ctrl.service.Delete(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		ctrl.writeModerationError(c, err, "Error deleting room")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Room deleted successfully",
		Data:    room,
	})
}

// writeModerationError traduce los errores de negocio a códigos HTTP
func (ctrl *ModerationController) writeModerationError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repositories.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Message: "Room not found",
		})
	case errors.Is(err, services.ErrNotAgent):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Success: false,
			Message: "agent privileges required",
		})
	case errors.Is(err, services.ErrModerationConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Success: false,
			Message: "Room was already moderated with a different decision",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
	}
}
