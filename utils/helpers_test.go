package utils

import (
	"math"
	"testing"
)

// ============================================
// TESTS de Haversine
// ============================================

// Test: La distancia de un punto a sí mismo es cero
func TestHaversine_SamePoint(t *testing.T) {
	distance := Haversine(28.7041, 77.1025, 28.7041, 77.1025)

	if distance != 0 {
		t.Errorf("Expected distance 0, got %f", distance)
	}
}

// Test: La distancia es simétrica (A→B == B→A)
func TestHaversine_Symmetric(t *testing.T) {
	ab := Haversine(28.7041, 77.1025, 19.0760, 72.8777)
	ba := Haversine(19.0760, 72.8777, 28.7041, 77.1025)

	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Expected symmetric distances, got %f and %f", ab, ba)
	}
}

// Test: Distancia conocida Delhi - Mumbai (~1150 km)
func TestHaversine_KnownDistance(t *testing.T) {
	distance := Haversine(28.7041, 77.1025, 19.0760, 72.8777)

	if distance < 1100 || distance > 1200 {
		t.Errorf("Expected Delhi-Mumbai around 1150km, got %f", distance)
	}
}

// Test: Un grado de latitud son ~111 km
func TestHaversine_OneDegreeLatitude(t *testing.T) {
	distance := Haversine(0, 0, 1, 0)

	if distance < 110 || distance > 112 {
		t.Errorf("Expected ~111km for one degree of latitude, got %f", distance)
	}
}

// ============================================
// TESTS de validación de teléfono
// ============================================

// Test: Teléfonos válidos e inválidos
func TestIsValidPhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},       // Exactamente 10 dígitos
		{"919876543210", true},     // Más de 10 dígitos
		{"98765-43210", true},      // Con guión: los no-dígitos se ignoran
		{"98765 43210", true},      // Con espacio
		{"987654321", false},       // Solo 9 dígitos
		{"", false},                // Vacío
		{"abcdefghij", false},      // Sin dígitos
		{"98765abcde", false},      // Dígitos insuficientes tras limpiar
	}

	for _, c := range cases {
		if got := IsValidPhoneNumber(c.phone); got != c.valid {
			t.Errorf("IsValidPhoneNumber(%q) = %v, expected %v", c.phone, got, c.valid)
		}
	}
}

// ============================================
// TESTS de validación de coordenadas
// ============================================

// Test: Coordenadas en rango y fuera de rango
func TestIsValidCoordinates(t *testing.T) {
	cases := []struct {
		latitude  float64
		longitude float64
		valid     bool
	}{
		{28.7041, 77.1025, true},
		{0, 0, true},
		{90, 180, true},    // Límites exactos
		{-90, -180, true},  // Límites exactos negativos
		{91, 0, false},     // Latitud fuera de rango
		{-91, 0, false},
		{0, 181, false},    // Longitud fuera de rango
		{0, -181, false},
	}

	for _, c := range cases {
		if got := IsValidCoordinates(c.latitude, c.longitude); got != c.valid {
			t.Errorf("IsValidCoordinates(%f, %f) = %v, expected %v", c.latitude, c.longitude, got, c.valid)
		}
	}
}
