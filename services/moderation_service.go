package services

import (
	"context"
	"errors"
	"log"
	"time"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
)

// Errores de negocio de la moderación
var (
	// ErrNotAgent: el actor no tiene rol de agente
	ErrNotAgent = errors.New("agent role required")
	// ErrModerationConflict: la publicación ya fue moderada en sentido contrario
	ErrModerationConflict = errors.New("room was already moderated")
)

// Actor es quien ejecuta una acción de moderación
// Sale de los claims del JWT, nunca del body del request
type Actor struct {
	Email string
	Name  string
	Role  domain.Role
}

// ModerationService gobierna el ciclo de vida pending → approved/rejected
// Todas las transiciones requieren rol de agente
type ModerationService interface {
	ListRooms(ctx context.Context, status string) ([]domain.Room, dto.ModerationCounts, error)
	Approve(ctx context.Context, id string, actor Actor) (*domain.Room, error)
	Reject(ctx context.Context, id string, actor Actor) (*domain.Room, error)
	Delete(ctx context.Context, id string, actor Actor) (*domain.Room, error)
}

// moderationService es la implementación real del servicio
type moderationService struct {
	repo      repositories.RoomRepository
	publisher EventPublisher
}

// NewModerationService crea una nueva instancia del servicio
func NewModerationService(repo repositories.RoomRepository, publisher EventPublisher) ModerationService {
	return &moderationService{repo: repo, publisher: publisher}
}

// ListRooms devuelve las publicaciones para el dashboard del agente
// Con status vacío o "all" devuelve todas; los contadores siempre son globales
func (s *moderationService) ListRooms(ctx context.Context, status string) ([]domain.Room, dto.ModerationCounts, error) {
	rooms, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, dto.ModerationCounts{}, err
	}

	counts := dto.ModerationCounts{Total: len(rooms)}
	for i := range rooms {
		switch rooms[i].CurrentStatus() {
		case domain.StatusPending:
			counts.Pending++
		case domain.StatusApproved:
			counts.Approved++
		case domain.StatusRejected:
			counts.Rejected++
		}
	}

	if status == "" || status == "all" {
		return rooms, counts, nil
	}

	filtered := []domain.Room{}
	want := domain.RoomStatus(status)
	for i := range rooms {
		if rooms[i].CurrentStatus() == want {
			filtered = append(filtered, rooms[i])
		}
	}
	return filtered, counts, nil
}

// Approve aprueba una publicación pendiente
// Política explícita: aprobar algo ya aprobado es un no-op idempotente;
// aprobar algo rechazado es un conflicto (hay que borrarlo y volver a publicar)
func (s *moderationService) Approve(ctx context.Context, id string, actor Actor) (*domain.Room, error) {
	if actor.Role != domain.RoleAgent {
		return nil, ErrNotAgent
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch room.CurrentStatus() {
	case domain.StatusApproved:
		// Ya estaba aprobada: devolver tal cual, sin pisar approvedBy original
		return room, nil
	case domain.StatusRejected:
		return nil, ErrModerationConflict
	}

	room.Status = domain.StatusApproved
	room.ApprovedBy = actor.Email
	room.ApprovedDate = time.Now().Format("2006-01-02")
	// A lo sumo una de las anotaciones puede estar cargada
	room.RejectedBy = ""
	room.RejectedDate = ""

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("Room approved: id=%s, by=%s", id, actor.Email)
	s.publish("approve", id)

	return room, nil
}

// Reject rechaza una publicación pendiente (simétrico a Approve)
func (s *moderationService) Reject(ctx context.Context, id string, actor Actor) (*domain.Room, error) {
	if actor.Role != domain.RoleAgent {
		return nil, ErrNotAgent
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch room.CurrentStatus() {
	case domain.StatusRejected:
		return room, nil
	case domain.StatusApproved:
		return nil, ErrModerationConflict
	}

	room.Status = domain.StatusRejected
	room.RejectedBy = actor.Email
	room.RejectedDate = time.Now().Format("2006-01-02")
	room.ApprovedBy = ""
	room.ApprovedDate = ""

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("Room rejected: id=%s, by=%s", id, actor.Email)
	s.publish("reject", id)

	return room, nil
}

// Delete elimina una publicación desde cualquier estado (sin papelera ni deshacer)
func (s *moderationService) Delete(ctx context.Context, id string, actor Actor) (*domain.Room, error) {
	if actor.Role != domain.RoleAgent {
		return nil, ErrNotAgent
	}

	room, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("Room deleted: id=%s, by=%s", id, actor.Email)
	s.publish("delete", id)

	return room, nil
}

// publish avisa por la cola para que se invalide el caché de búsquedas
func (s *moderationService) publish(action, roomID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(action, roomID); err != nil {
		log.Printf("Error publishing %s event for room %s: %v", action, roomID, err)
	}
}
