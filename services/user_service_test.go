package services

import (
	"testing"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
)

// ============================================
// MOCK del repositorio de usuarios
// ============================================
type mockUserRepository struct {
	users map[uint]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[uint]*domain.User),
	}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	// Simular auto-increment del ID
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(id uint) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepository) GetAll() ([]domain.User, error) {
	users := []domain.User{}
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

// ============================================
// TESTS
// ============================================

// Test: Registrar usuario exitosamente
func TestRegister_Success(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	user, err := service.Register(req)

	// Verificaciones
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if user == nil {
		t.Fatal("Expected user, got nil")
	}

	if user.Email != req.Email {
		t.Errorf("Expected email %s, got %s", req.Email, user.Email)
	}

	// Sin rol explícito, es usuario común
	if user.Role != domain.RoleUser {
		t.Errorf("Expected role %s, got %s", domain.RoleUser, user.Role)
	}

	// Verificar que la contraseña fue hasheada (no es la original)
	if user.Password == req.Password {
		t.Error("Password should be hashed, not plain text")
	}
}

// Test: Sin nombre, se deriva de la parte local del email
func TestRegister_NameDefaultsFromEmail(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{
		Email:    "jdoe@example.com",
		Password: "password123",
	}

	user, err := service.Register(req)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "jdoe" {
		t.Errorf("Expected name jdoe, got %s", user.Name)
	}
}

// Test: Registrar un agente guarda el rol agent
func TestRegister_AgentRole(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{
		Name:     "Agent",
		Email:    "agent@example.com",
		Password: "password123",
		Role:     "agent",
	}

	user, err := service.Register(req)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Role != domain.RoleAgent {
		t.Errorf("Expected role agent, got %s", user.Role)
	}
}

// Test: Error al registrar con rol inventado
func TestRegister_InvalidRole(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Role:     "superadmin",
	}

	user, err := service.Register(req)

	if err == nil {
		t.Error("Expected error for invalid role, got nil")
	}

	if user != nil {
		t.Error("Expected nil user, got user")
	}
}

// Test: Error al registrar con email duplicado
func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	// Crear primer usuario
	req1 := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
	}
	service.Register(req1)

	// Intentar crear segundo usuario con mismo email
	req2 := dto.RegisterRequest{
		Email:    "test@example.com", // Email duplicado
		Password: "password456",
	}

	user, err := service.Register(req2)

	// Verificaciones
	if err == nil {
		t.Error("Expected error for duplicate email, got nil")
	}

	if user != nil {
		t.Error("Expected nil user, got user")
	}

	if err.Error() != "email already exists" {
		t.Errorf("Expected 'email already exists' error, got %v", err)
	}
}

// Test: Login exitoso
func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	// Crear usuario
	createReq := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}
	service.Register(createReq)

	// Intentar login
	loginReq := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}

	response, err := service.Login(loginReq)

	// Verificaciones
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if response == nil {
		t.Fatal("Expected login response, got nil")
	}

	if response.Token == "" {
		t.Error("Expected JWT token, got empty string")
	}

	if response.User.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", response.User.Email)
	}
}

// Test: Login fallido - usuario no existe
func TestLogin_UserNotFound(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	loginReq := dto.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	}

	response, err := service.Login(loginReq)

	// Verificaciones
	if err == nil {
		t.Error("Expected error for non-existent user, got nil")
	}

	if response != nil {
		t.Error("Expected nil response, got response")
	}

	// Por seguridad, el error no dice si el email existe o no
	if err.Error() != "invalid credentials" {
		t.Errorf("Expected 'invalid credentials' error, got %v", err)
	}
}

// Test: Login fallido - contraseña incorrecta
func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	// Crear usuario
	createReq := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
	}
	service.Register(createReq)

	// Intentar login con contraseña incorrecta
	loginReq := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}

	response, err := service.Login(loginReq)

	// Verificaciones
	if err == nil {
		t.Error("Expected error for wrong password, got nil")
	}

	if response != nil {
		t.Error("Expected nil response, got response")
	}

	if err.Error() != "invalid credentials" {
		t.Errorf("Expected 'invalid credentials' error, got %v", err)
	}
}

// Test: Obtener usuario por ID exitosamente
func TestGetUserByID_Success(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	// Crear usuario
	createReq := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
	}
	createdUser, _ := service.Register(createReq)

	// Obtener usuario por ID
	user, err := service.GetUserByID(createdUser.ID)

	// Verificaciones
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if user == nil {
		t.Fatal("Expected user, got nil")
	}

	if user.ID != createdUser.ID {
		t.Errorf("Expected ID %d, got %d", createdUser.ID, user.ID)
	}
}

// Test: Error al obtener usuario que no existe
func TestGetUserByID_NotFound(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	// Intentar obtener usuario con ID inexistente
	user, err := service.GetUserByID(999)

	// Verificaciones
	if err == nil {
		t.Error("Expected error for non-existent user, got nil")
	}

	if user != nil {
		t.Error("Expected nil user, got user")
	}
}
