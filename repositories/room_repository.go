package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rooms-api/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRoomNotFound se devuelve cuando la publicación no existe
var ErrRoomNotFound = errors.New("room not found")

// earthRadiusKm para convertir el radio de búsqueda a radianes ($centerSphere)
const earthRadiusKm = 6371

// RoomFilter son los filtros del listado público de publicaciones
// Los punteros en nil significan "sin filtro"
type RoomFilter struct {
	MinPrice     *float64
	MaxPrice     *float64
	Availability *bool
	Status       domain.RoomStatus // vacío = sin filtro de estado
	ApprovedOnly bool
}

// RoomRepository define la interfaz del repositorio de publicaciones
// Es como un "contrato" que dice qué operaciones debe tener
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	GetPaginated(ctx context.Context, filter RoomFilter, page, limit int) ([]domain.Room, int64, error)
	GetByLocation(ctx context.Context, location string, approvedOnly bool, page, limit int) ([]domain.Room, int64, error)
	GetApproved(ctx context.Context) ([]domain.Room, error)
	GetAll(ctx context.Context) ([]domain.Room, error)
	GetNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) (*domain.Room, error)
}

// roomRepository es la implementación real sobre MongoDB
type roomRepository struct {
	collection *mongo.Collection
}

// NewRoomRepository crea una nueva instancia del repositorio
// Recibe la base de datos de Mongo y asegura los índices que usamos
func NewRoomRepository(db *mongo.Database) RoomRepository {
	collection := db.Collection("rooms")

	// Índice 2dsphere para las búsquedas por cercanía ($geoWithin)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "geo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		log.Printf("Warning: could not create rooms indexes: %v", err)
	}

	return &roomRepository{collection: collection}
}

// Create inserta una nueva publicación
func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("error inserting room: %w", err)
	}

	// Mongo asigna el _id; lo copiamos de vuelta al struct
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid
	}
	return nil
}

// GetByID busca una publicación por su ID
func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Un ID mal formado es lo mismo que un ID que no existe
		return nil, ErrRoomNotFound
	}

	var room domain.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error fetching room: %w", err)
	}
	return &room, nil
}

// buildFilter arma el filtro de Mongo a partir del RoomFilter
func buildFilter(filter RoomFilter) bson.M {
	query := bson.M{}

	// Rango de precio: $gte / $lte según qué límites vinieron
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["rent"] = price
	}

	if filter.Availability != nil {
		query["availability"] = *filter.Availability
	}

	if filter.ApprovedOnly {
		query["status"] = domain.StatusApproved
	} else if filter.Status != "" {
		query["status"] = filter.Status
	}

	return query
}

// GetPaginated devuelve publicaciones paginadas con filtros de precio/disponibilidad
// Ordena por fecha de creación descendente (lo más nuevo primero)
func (r *roomRepository) GetPaginated(ctx context.Context, filter RoomFilter, page, limit int) ([]domain.Room, int64, error) {
	query := buildFilter(filter)
	skip := int64((page - 1) * limit)

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(skip).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []domain.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, 0, fmt.Errorf("error decoding rooms: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting rooms: %w", err)
	}

	return rooms, total, nil
}

// GetByLocation busca publicaciones por ubicación (case-insensitive, substring)
func (r *roomRepository) GetByLocation(ctx context.Context, location string, approvedOnly bool, page, limit int) ([]domain.Room, int64, error) {
	query := bson.M{
		"location": bson.M{"$regex": location, "$options": "i"},
	}
	if approvedOnly {
		query["status"] = domain.StatusApproved
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(skip).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching rooms by location: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []domain.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, 0, fmt.Errorf("error decoding rooms: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting rooms: %w", err)
	}

	return rooms, total, nil
}

// GetApproved devuelve todas las publicaciones aprobadas en orden de inserción
// Es la secuencia sobre la que trabaja el motor de filtrado
func (r *roomRepository) GetApproved(ctx context.Context) ([]domain.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.StatusApproved}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching approved rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []domain.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

// GetAll devuelve todas las publicaciones sin importar el estado
// Lo usa el dashboard del agente para moderar
func (r *roomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []domain.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

// GetNearby busca publicaciones aprobadas dentro de un radio en kilómetros
// Convierte el radio a radianes (radio / 6371) para $centerSphere
func (r *roomRepository) GetNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]domain.Room, error) {
	radiusInRadians := radiusKm / earthRadiusKm

	query := bson.M{
		"status": domain.StatusApproved,
		"geo": bson.M{
			"$geoWithin": bson.M{
				// MongoDB espera [longitude, latitude]
				"$centerSphere": []interface{}{
					[]float64{longitude, latitude},
					radiusInRadians,
				},
			},
		},
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching nearby rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []domain.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}

// Update reemplaza una publicación existente
func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	room.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	if err != nil {
		return fmt.Errorf("error updating room: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete elimina una publicación y devuelve el documento eliminado
func (r *roomRepository) Delete(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	var room domain.Room
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error deleting room: %w", err)
	}
	return &room, nil
}
