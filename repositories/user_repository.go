package repositories

import (
	"errors"

	"rooms-api/domain"

	"gorm.io/gorm"
)

// ErrUserNotFound se devuelve cuando el usuario no existe
var ErrUserNotFound = errors.New("user not found")

// UserRepository define la interfaz del repositorio de usuarios
type UserRepository interface {
	Create(user *domain.User) error
	GetByID(id uint) (*domain.User, error)
	GetByEmail(email string) (*domain.User, error)
	GetAll() ([]domain.User, error)
}

// userRepository es la implementación real del repositorio
// Tiene una conexión a la base de datos (db)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository crea una nueva instancia del repositorio
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserta un nuevo usuario en la base de datos
func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// GetByID busca un usuario por su ID
func (r *userRepository) GetByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail busca un usuario por su email
// Se usa en el login: acá el login es siempre por email
func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAll obtiene todos los usuarios
func (r *userRepository) GetAll() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Find(&users).Error
	return users, err
}
