package models

// GeoPoint is a coordinate pair in floating-point degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location failure classes reported by the client when it could not obtain
// a position. They map one-to-one onto the platform geolocation error set.
const (
	LocationFailurePermissionDenied = "permission_denied"
	LocationFailureUnavailable      = "unavailable"
	LocationFailureTimeout          = "timeout"
	LocationFailureGeneric          = "generic"
)

type CheckPointRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required_without=Failure"`
	Longitude *float64 `json:"longitude" validate:"required_without=Failure"`
	// Failure carries the client-side geolocation error class when no
	// coordinates could be obtained.
	Failure string `json:"failure,omitempty" validate:"omitempty,oneof=permission_denied unavailable timeout generic"`
}

type CheckAddressRequest struct {
	Address string `json:"address" validate:"required,min=3,max=300"`
}

// DeliveryAssessment is derived, never stored. DistanceKm is nil when no
// distance could be computed (location failure or address approximation).
type DeliveryAssessment struct {
	Eligible        bool     `json:"eligible"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	DistanceDisplay string   `json:"distance_display,omitempty"`
	EstimatedTime   string   `json:"estimated_time,omitempty"`
	PlaceName       string   `json:"place_name,omitempty"`
	Approximate     bool     `json:"approximate,omitempty"`
	Message         string   `json:"message,omitempty"`
}
