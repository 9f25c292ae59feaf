package utils

import (
	"math"
	"regexp"
)

// EarthRadiusKm es el radio de la Tierra en kilómetros
const EarthRadiusKm = 6371

var phoneRegex = regexp.MustCompile(`^[0-9]{10,}$`)
var nonDigits = regexp.MustCompile(`\D`)

// Haversine calcula la distancia del círculo máximo entre dos coordenadas
// Recibe latitudes y longitudes en grados y devuelve kilómetros
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*(math.Pi/180))*
			math.Cos(lat2*(math.Pi/180))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// IsValidPhoneNumber valida que el teléfono tenga al menos 10 dígitos
// Primero saca todo lo que no sea dígito (espacios, guiones, etc.)
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(nonDigits.ReplaceAllString(phone, ""))
}

// IsValidCoordinates valida que las coordenadas estén en rango
// Latitud en [-90, 90] y longitud en [-180, 180]
func IsValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 &&
		longitude >= -180 && longitude <= 180
}
