package services

import (
	"context"
	"sort"
	"time"

	"rooms-api/domain"
	"rooms-api/repositories"
	"rooms-api/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============================================
// MOCKS compartidos por los tests del paquete
// ============================================

// mockRoomRepository guarda las publicaciones en un slice en memoria
// El slice preserva el orden de inserción, igual que el sort por createdAt
type mockRoomRepository struct {
	rooms []domain.Room

	getApprovedCalls int
}

func newMockRoomRepository() *mockRoomRepository {
	return &mockRoomRepository{rooms: []domain.Room{}}
}

func (m *mockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	now := time.Now()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now
	m.rooms = append(m.rooms, *room)
	return nil
}

func (m *mockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID.Hex() == id {
			room := m.rooms[i]
			return &room, nil
		}
	}
	return nil, repositories.ErrRoomNotFound
}

func (m *mockRoomRepository) GetPaginated(ctx context.Context, filter repositories.RoomFilter, page, limit int) ([]domain.Room, int64, error) {
	matched := []domain.Room{}
	for i := range m.rooms {
		room := m.rooms[i]
		if filter.ApprovedOnly && !room.IsApproved() {
			continue
		}
		if filter.Status != "" && room.CurrentStatus() != filter.Status {
			continue
		}
		if filter.MinPrice != nil && room.Rent < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && room.Rent > *filter.MaxPrice {
			continue
		}
		if filter.Availability != nil && room.Availability != *filter.Availability {
			continue
		}
		matched = append(matched, room)
	}

	// Lo más nuevo primero, como el sort por createdAt descendente
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockRoomRepository) GetByLocation(ctx context.Context, location string, approvedOnly bool, page, limit int) ([]domain.Room, int64, error) {
	matched := []domain.Room{}
	for i := range m.rooms {
		room := m.rooms[i]
		if approvedOnly && !room.IsApproved() {
			continue
		}
		if !matchesLocation(&room, location) {
			continue
		}
		matched = append(matched, room)
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockRoomRepository) GetApproved(ctx context.Context) ([]domain.Room, error) {
	m.getApprovedCalls++
	approved := []domain.Room{}
	for i := range m.rooms {
		if m.rooms[i].IsApproved() {
			approved = append(approved, m.rooms[i])
		}
	}
	return approved, nil
}

func (m *mockRoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	all := make([]domain.Room, len(m.rooms))
	copy(all, m.rooms)
	return all, nil
}

func (m *mockRoomRepository) GetNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]domain.Room, error) {
	matched := []domain.Room{}
	for i := range m.rooms {
		room := m.rooms[i]
		if !room.IsApproved() || room.Latitude == nil || room.Longitude == nil {
			continue
		}
		if utils.Haversine(latitude, longitude, *room.Latitude, *room.Longitude) <= radiusKm {
			matched = append(matched, room)
		}
	}
	return matched, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	for i := range m.rooms {
		if m.rooms[i].ID == room.ID {
			room.UpdatedAt = time.Now()
			m.rooms[i] = *room
			return nil
		}
	}
	return repositories.ErrRoomNotFound
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) (*domain.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID.Hex() == id {
			room := m.rooms[i]
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return &room, nil
		}
	}
	return nil, repositories.ErrRoomNotFound
}

// mockCacheRepository es un caché en memoria sin TTL para los tests
type mockCacheRepository struct {
	entries map[string]cacheEntry
	sets    int
}

type cacheEntry struct {
	rooms []domain.Room
	total int
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{entries: make(map[string]cacheEntry)}
}

func (m *mockCacheRepository) Get(key string) ([]domain.Room, int, bool) {
	entry, found := m.entries[key]
	if !found {
		return nil, 0, false
	}
	return entry.rooms, entry.total, true
}

func (m *mockCacheRepository) Set(key string, rooms []domain.Room, total int, ttl time.Duration) {
	m.entries[key] = cacheEntry{rooms: rooms, total: total}
	m.sets++
}

func (m *mockCacheRepository) Delete(key string) {
	delete(m.entries, key)
}

func (m *mockCacheRepository) Flush() {
	m.entries = make(map[string]cacheEntry)
}

// mockPublisher registra las acciones publicadas en la cola
type mockPublisher struct {
	events []string
}

func (m *mockPublisher) Publish(action, roomID string) error {
	m.events = append(m.events, action)
	return nil
}
