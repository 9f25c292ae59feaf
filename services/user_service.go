package services

import (
	"errors"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
	"rooms-api/utils"
)

// UserService define la interfaz del servicio de usuarios
type UserService interface {
	Register(req dto.RegisterRequest) (*domain.User, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(id uint) (*domain.User, error)
}

// userService es la implementación real del servicio
// Tiene un repositorio para acceder a la base de datos
type userService struct {
	repo repositories.UserRepository
}

// NewUserService crea una nueva instancia del servicio
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register crea un nuevo usuario
// Aquí va toda la lógica: validaciones, hashear password, rol por defecto
func (s *userService) Register(req dto.RegisterRequest) (*domain.User, error) {
	// 1. Verificar si el email ya existe
	existingUser, _ := s.repo.GetByEmail(req.Email)
	if existingUser != nil {
		return nil, errors.New("email already exists")
	}

	// 2. Validar el rol (si no viene, es usuario común)
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, errors.New("invalid role")
	}

	// 3. Hashear la contraseña
	// NUNCA guardamos contraseñas en texto plano
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("error hashing password")
	}

	// 4. Crear el objeto User
	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword, // Guardamos el hash, no la contraseña
		Role:     role,
	}

	// Si no cargó nombre, derivarlo de la parte local del email
	if user.Name == "" {
		user.Name = user.DisplayName()
	}

	// 5. Guardar en la base de datos
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login autentica un usuario y genera un token JWT con su rol adentro
// El rol viaja FIRMADO: ningún cliente puede reclamar "agent" por su cuenta
func (s *userService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. Buscar el usuario por email
	user, err := s.repo.GetByEmail(req.Email)

	// 2. Si no existe, error genérico
	// (Por seguridad, no decimos si el email existe o no)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 3. Verificar que la contraseña sea correcta
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, errors.New("invalid credentials")
	}

	// 4. Generar el token JWT
	token, err := utils.GenerateToken(user.ID, user.Email, user.DisplayName(), string(user.Role))
	if err != nil {
		return nil, errors.New("error generating token")
	}

	// 5. Devolver el token y los datos del usuario
	return &dto.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// GetUserByID obtiene un usuario por su ID
// Esta función es simple, solo delega al repositorio
func (s *userService) GetUserByID(id uint) (*domain.User, error) {
	return s.repo.GetByID(id)
}
