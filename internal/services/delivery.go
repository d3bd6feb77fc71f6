package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const earthRadiusKm = 6371.0

// Geocoder resolves a coordinate pair to a place name. Lookups are decorative;
// every failure is swallowed.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

type DeliveryService interface {
	CheckPoint(ctx context.Context, req *models.CheckPointRequest) (*models.DeliveryAssessment, error)
	CheckAddress(ctx context.Context, req *models.CheckAddressRequest) (*models.DeliveryAssessment, error)
}

type deliveryService struct {
	store      models.GeoPoint
	storeName  string
	radiusKm   float64
	localities []string
	geocoder   Geocoder
	sanitizer  *bluemonday.Policy
}

// NewDeliveryService builds the eligibility checker around the configured
// store location. geocoder may be nil to disable place-name lookups.
func NewDeliveryService(cfg config.StoreLocation, geocoder Geocoder) DeliveryService {

	localities := make([]string, 0, len(cfg.ServiceableLocalities))
	for _, l := range cfg.ServiceableLocalities {
		localities = append(localities, strings.ToLower(l))
	}

	return &deliveryService{
		store:      models.GeoPoint{Latitude: cfg.Latitude, Longitude: cfg.Longitude},
		storeName:  cfg.Name,
		radiusKm:   cfg.RadiusKm,
		localities: localities,
		geocoder:   geocoder,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b models.GeoPoint) float64 {

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CheckPoint assesses a coordinate pair against the delivery radius. When the
// request carries a location failure class instead of coordinates, the
// assessment explains the failure without guessing a distance.
func (s *deliveryService) CheckPoint(ctx context.Context, req *models.CheckPointRequest) (*models.DeliveryAssessment, error) {

	if req.Failure != "" {
		return &models.DeliveryAssessment{
			Eligible: false,
			Message:  locationFailureMessage(req.Failure),
		}, nil
	}

	if req.Latitude == nil || req.Longitude == nil {
		return nil, errors.ValidationError("Latitude and longitude are required")
	}

	lat, lng := *req.Latitude, *req.Longitude
	if !isFiniteCoordinate(lat, -90, 90) || !isFiniteCoordinate(lng, -180, 180) {
		return nil, errors.ValidationError("Coordinates are out of range")
	}

	point := models.GeoPoint{Latitude: lat, Longitude: lng}
	distance := Haversine(s.store, point)

	assessment := &models.DeliveryAssessment{
		Eligible:        distance <= s.radiusKm,
		DistanceKm:      &distance,
		DistanceDisplay: formatDistance(distance),
		EstimatedTime:   s.estimateTime(distance),
	}

	if assessment.Eligible {
		assessment.Message = fmt.Sprintf("Great news! %s delivers to your location.", s.storeName)
	} else {
		assessment.Message = fmt.Sprintf("Sorry, your location is %s away, outside our %.0f km delivery area.",
			assessment.DistanceDisplay, s.radiusKm)
	}

	if s.geocoder != nil {
		name, err := s.geocoder.Reverse(ctx, lat, lng)
		if err != nil {
			middleware.LoggerFromContext(ctx).Debug("Reverse geocode lookup failed",
				slog.String("error", err.Error()))
		} else {
			assessment.PlaceName = name
		}
	}

	return assessment, nil
}

// CheckAddress is the manual-entry fallback: a case-insensitive substring
// match against the serviceable locality list. A hit is an approximation, not
// a measured distance.
func (s *deliveryService) CheckAddress(_ context.Context, req *models.CheckAddressRequest) (*models.DeliveryAssessment, error) {

	address := strings.ToLower(s.sanitizer.Sanitize(req.Address))
	if strings.TrimSpace(address) == "" {
		return nil, errors.ValidationError("Address must not be empty")
	}

	for _, locality := range s.localities {
		if strings.Contains(address, locality) {
			return &models.DeliveryAssessment{
				Eligible:      true,
				Approximate:   true,
				EstimatedTime: "60-90 minutes",
				Message:       fmt.Sprintf("Great news! %s delivers to your area.", s.storeName),
			}, nil
		}
	}

	return &models.DeliveryAssessment{
		Eligible:    false,
		Approximate: true,
		Message:     fmt.Sprintf("Sorry, %s does not deliver to your area yet.", s.storeName),
	}, nil
}

func (s *deliveryService) estimateTime(distanceKm float64) string {
	switch {
	case distanceKm > s.radiusKm:
		return "90+ minutes (outside delivery area)"
	case distanceKm <= 2.0:
		return "45-60 minutes"
	case distanceKm <= 3.5:
		return "60-75 minutes"
	default:
		return "75-90 minutes"
	}
}

// formatDistance renders meters below one kilometer, otherwise kilometers
// with one decimal.
func formatDistance(distanceKm float64) string {

	if distanceKm < 1 {
		return fmt.Sprintf("%d m", int(math.Round(distanceKm*1000)))
	}

	return fmt.Sprintf("%.1f km", distanceKm)
}

func isFiniteCoordinate(v, min, max float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= min && v <= max
}

func locationFailureMessage(class string) string {
	switch class {
	case models.LocationFailurePermissionDenied:
		return "Location permission denied. Please allow location access or enter your address manually."
	case models.LocationFailureUnavailable:
		return "Location is unavailable on this device. Please enter your address manually."
	case models.LocationFailureTimeout:
		return "Location request timed out. Please try again or enter your address manually."
	default:
		return "We could not determine your location. Please enter your address manually."
	}
}
