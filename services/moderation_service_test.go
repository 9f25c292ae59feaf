package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rooms-api/domain"
	"rooms-api/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// agentActor es el agente que ejecuta las acciones en los tests
var agentActor = Actor{
	Email: "agent@example.com",
	Name:  "Agent Smith",
	Role:  domain.RoleAgent,
}

// seedRoom inserta una publicación con estado conocido y devuelve su ID
func seedRoom(repo *mockRoomRepository, title string, status domain.RoomStatus) string {
	room := domain.Room{
		ID:     primitive.NewObjectID(),
		Title:  title,
		Status: status,
	}
	repo.rooms = append(repo.rooms, room)
	return room.ID.Hex()
}

// ============================================
// TESTS de aprobación
// ============================================

// Test: Aprobar una publicación pendiente
func TestApprove_PendingRoom(t *testing.T) {
	repo := newMockRoomRepository()
	publisher := &mockPublisher{}
	service := NewModerationService(repo, publisher)

	id := seedRoom(repo, "Pending room", domain.StatusPending)

	room, err := service.Approve(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if room.Status != domain.StatusApproved {
		t.Errorf("Expected status approved, got %s", room.Status)
	}

	if room.ApprovedBy != "agent@example.com" {
		t.Errorf("Expected approvedBy agent@example.com, got %s", room.ApprovedBy)
	}

	if room.ApprovedDate != time.Now().Format("2006-01-02") {
		t.Errorf("Expected today's date, got %s", room.ApprovedDate)
	}

	if len(publisher.events) != 1 || publisher.events[0] != "approve" {
		t.Errorf("Expected approve event, got %v", publisher.events)
	}
}

// Test: Re-aprobar algo ya aprobado es un no-op idempotente
func TestApprove_AlreadyApproved(t *testing.T) {
	repo := newMockRoomRepository()
	publisher := &mockPublisher{}
	service := NewModerationService(repo, publisher)

	id := seedRoom(repo, "Approved room", domain.StatusApproved)
	repo.rooms[0].ApprovedBy = "first-agent@example.com"

	room, err := service.Approve(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// No se pisa el aprobador original ni se publica otro evento
	if room.ApprovedBy != "first-agent@example.com" {
		t.Errorf("Expected original approver preserved, got %s", room.ApprovedBy)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no events, got %v", publisher.events)
	}
}

// Test: Aprobar algo rechazado es un conflicto
func TestApprove_RejectedRoomConflict(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	id := seedRoom(repo, "Rejected room", domain.StatusRejected)

	_, err := service.Approve(context.Background(), id, agentActor)

	if !errors.Is(err, ErrModerationConflict) {
		t.Errorf("Expected ErrModerationConflict, got %v", err)
	}
}

// Test: Las publicaciones viejas sin status cuentan como pendientes
func TestApprove_MissingStatusIsPending(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	id := seedRoom(repo, "Legacy room", "")

	room, err := service.Approve(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if room.Status != domain.StatusApproved {
		t.Errorf("Expected status approved, got %s", room.Status)
	}
}

// Test: Sin rol de agente no se puede aprobar
func TestApprove_RequiresAgentRole(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	id := seedRoom(repo, "Pending room", domain.StatusPending)

	user := Actor{Email: "user@example.com", Role: domain.RoleUser}
	_, err := service.Approve(context.Background(), id, user)

	if !errors.Is(err, ErrNotAgent) {
		t.Errorf("Expected ErrNotAgent, got %v", err)
	}
}

// Test: Aprobar una publicación que no existe
func TestApprove_RoomNotFound(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	_, err := service.Approve(context.Background(), "64f000000000000000000000", agentActor)

	if !errors.Is(err, repositories.ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

// ============================================
// TESTS de rechazo
// ============================================

// Test: Rechazar una publicación pendiente
func TestReject_PendingRoom(t *testing.T) {
	repo := newMockRoomRepository()
	publisher := &mockPublisher{}
	service := NewModerationService(repo, publisher)

	id := seedRoom(repo, "Pending room", domain.StatusPending)

	room, err := service.Reject(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if room.Status != domain.StatusRejected {
		t.Errorf("Expected status rejected, got %s", room.Status)
	}
	if room.RejectedBy != "agent@example.com" {
		t.Errorf("Expected rejectedBy agent@example.com, got %s", room.RejectedBy)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "reject" {
		t.Errorf("Expected reject event, got %v", publisher.events)
	}
}

// Test: Re-rechazar algo ya rechazado es un no-op idempotente
func TestReject_AlreadyRejected(t *testing.T) {
	repo := newMockRoomRepository()
	publisher := &mockPublisher{}
	service := NewModerationService(repo, publisher)

	id := seedRoom(repo, "Rejected room", domain.StatusRejected)

	room, err := service.Reject(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if room.Status != domain.StatusRejected {
		t.Errorf("Expected status rejected, got %s", room.Status)
	}
	if len(publisher.events) != 0 {
		t.Errorf("Expected no events, got %v", publisher.events)
	}
}

// Test: Rechazar algo aprobado es un conflicto
func TestReject_ApprovedRoomConflict(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	id := seedRoom(repo, "Approved room", domain.StatusApproved)

	_, err := service.Reject(context.Background(), id, agentActor)

	if !errors.Is(err, ErrModerationConflict) {
		t.Errorf("Expected ErrModerationConflict, got %v", err)
	}
}

// ============================================
// TESTS de borrado y listado
// ============================================

// Test: El borrado funciona desde cualquier estado
func TestDelete_AnyState(t *testing.T) {
	repo := newMockRoomRepository()
	publisher := &mockPublisher{}
	service := NewModerationService(repo, publisher)

	id := seedRoom(repo, "Approved room", domain.StatusApproved)

	room, err := service.Delete(context.Background(), id, agentActor)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if room.Title != "Approved room" {
		t.Errorf("Expected deleted room returned, got %s", room.Title)
	}

	// Ya no existe
	if _, err := service.Delete(context.Background(), id, agentActor); !errors.Is(err, repositories.ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound on second delete, got %v", err)
	}

	if publisher.events[0] != "delete" {
		t.Errorf("Expected delete event, got %v", publisher.events)
	}
}

// Test: El listado del dashboard trae los contadores globales
func TestListRooms_Counts(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	seedRoom(repo, "Pending 1", domain.StatusPending)
	seedRoom(repo, "Pending 2", domain.StatusPending)
	seedRoom(repo, "Approved", domain.StatusApproved)
	seedRoom(repo, "Rejected", domain.StatusRejected)
	seedRoom(repo, "Legacy", "") // Sin status: cuenta como pending

	rooms, counts, err := service.ListRooms(context.Background(), "")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(rooms) != 5 {
		t.Errorf("Expected 5 rooms, got %d", len(rooms))
	}
	if counts.Total != 5 || counts.Pending != 3 || counts.Approved != 1 || counts.Rejected != 1 {
		t.Errorf("Unexpected counts: %+v", counts)
	}
}

// Test: El filtro por estado no cambia los contadores globales
func TestListRooms_StatusFilter(t *testing.T) {
	repo := newMockRoomRepository()
	service := NewModerationService(repo, &mockPublisher{})

	seedRoom(repo, "Pending", domain.StatusPending)
	seedRoom(repo, "Approved", domain.StatusApproved)

	rooms, counts, err := service.ListRooms(context.Background(), "pending")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(rooms) != 1 || rooms[0].Title != "Pending" {
		t.Errorf("Expected only the pending room, got %d rooms", len(rooms))
	}
	if counts.Total != 2 {
		t.Errorf("Expected global total 2, got %d", counts.Total)
	}
}
