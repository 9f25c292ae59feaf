package domain

import (
	"strings"
	"time"
)

// Role define los roles de usuario que existen
type Role string

const (
	RoleUser     Role = "user"     // Usuario común: busca y publica habitaciones
	RoleAgent    Role = "agent"    // Agente: modera las publicaciones
	RoleEmployee Role = "employee" // Empleado: solo busca
)

// ValidRole verifica que el rol sea uno de los conocidos
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAgent, RoleEmployee:
		return true
	}
	return false
}

// User representa un usuario en el sistema
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // El "-" oculta el password en JSON
	Role      Role      `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName especifica el nombre de la tabla en MySQL
func (User) TableName() string {
	return "users"
}

// DisplayName devuelve el nombre a mostrar del usuario
// Si no cargó nombre, se deriva de la parte local del email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
