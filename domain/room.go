package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomStatus define los estados de moderación de una publicación
type RoomStatus string

const (
	StatusPending  RoomStatus = "pending"  // Recién publicada, esperando revisión
	StatusApproved RoomStatus = "approved" // Aprobada por un agente, visible en búsquedas
	StatusRejected RoomStatus = "rejected" // Rechazada por un agente
)

// AccommodationType define los tipos de alojamiento que se pueden publicar
type AccommodationType string

const (
	AccommodationRoom   AccommodationType = "Room"
	AccommodationHostel AccommodationType = "Hostel"
	AccommodationPG     AccommodationType = "PG"
)

// HostelGender define el género de un hostel (solo aplica a Hostel)
type HostelGender string

const (
	HostelBoys  HostelGender = "Boys"
	HostelGirls HostelGender = "Girls"
)

// GeoPoint es un punto GeoJSON para el índice 2dsphere de MongoDB
// Coordinates va en orden [longitude, latitude] (así lo pide MongoDB)
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Room representa una publicación de habitación/hostel/PG para estudiantes
type Room struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Rent              float64            `bson:"rent" json:"rent"`
	Deposit           float64            `bson:"deposit,omitempty" json:"deposit,omitempty"`
	Location          string             `bson:"location" json:"location"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	FlatNumber        string             `bson:"flatNumber,omitempty" json:"flatNumber,omitempty"` // También se usa como nombre del hostel
	Latitude          *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude         *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Geo               *GeoPoint          `bson:"geo,omitempty" json:"-"`
	AccommodationType AccommodationType  `bson:"accommodationType" json:"accommodationType"`
	HostelGender      HostelGender       `bson:"hostelGender,omitempty" json:"hostelGender,omitempty"`
	RoomType          string             `bson:"roomType,omitempty" json:"roomType,omitempty"` // single/double/1bhk/2bhk/3bhk
	AvailabilityDate  string             `bson:"availabilityDate,omitempty" json:"availabilityDate,omitempty"`
	Availability      bool               `bson:"availability" json:"availability"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Amenities         []string           `bson:"amenities" json:"amenities"`
	Images            []string           `bson:"images" json:"images"`
	ContactNumber     string             `bson:"contactNumber" json:"contactNumber"`
	PostedBy          string             `bson:"postedBy" json:"postedBy"`
	Status            RoomStatus         `bson:"status" json:"status"`
	ApprovedBy        string             `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedDate      string             `bson:"approvedDate,omitempty" json:"approvedDate,omitempty"`
	RejectedBy        string             `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedDate      string             `bson:"rejectedDate,omitempty" json:"rejectedDate,omitempty"`
	DistanceKm        float64            `bson:"-" json:"distanceKm,omitempty"` // Solo se completa en búsquedas por cercanía
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CurrentStatus devuelve el estado efectivo de la publicación
// Las publicaciones viejas no tienen status guardado: se consideran pending
func (r *Room) CurrentStatus() RoomStatus {
	if r.Status == "" {
		return StatusPending
	}
	return r.Status
}

// IsApproved indica si la publicación es visible en búsquedas públicas
func (r *Room) IsApproved() bool {
	return r.CurrentStatus() == StatusApproved
}

// ValidAccommodationType verifica que el tipo de alojamiento sea conocido
func ValidAccommodationType(t AccommodationType) bool {
	switch t {
	case AccommodationRoom, AccommodationHostel, AccommodationPG:
		return true
	}
	return false
}

// ValidHostelGender verifica que el género del hostel sea conocido
func ValidHostelGender(g HostelGender) bool {
	return g == HostelBoys || g == HostelGirls
}

// ValidRoomType verifica que el tipo de habitación sea conocido
func ValidRoomType(t string) bool {
	switch t {
	case "single", "double", "1bhk", "2bhk", "3bhk":
		return true
	}
	return false
}
