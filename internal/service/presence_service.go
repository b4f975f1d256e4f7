package service

import (
	"context"
	"errors"
	"time"

	"flexio/internal/metrics"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/internal/streak"
	"flexio/pkg/location"
	"flexio/pkg/proximity"

	"gorm.io/gorm"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinates")
	ErrGymNotFound       = errors.New("gym not found")
	ErrNotMember         = errors.New("user has no active membership at this gym")
)

type PresenceService struct {
	gyms          *repository.GymRepository
	members       *repository.MembershipRepository
	locations     *repository.LocationRepository
	defaultRadius float64
	maxGap        time.Duration
	minimum       time.Duration
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewPresenceService(
	gyms *repository.GymRepository,
	members *repository.MembershipRepository,
	locations *repository.LocationRepository,
	defaultRadius float64,
	maxGap, minimum time.Duration,
	m *metrics.Metrics,
	now func() time.Time,
) *PresenceService {
	if maxGap <= 0 {
		maxGap = streak.DefaultMaxSampleGap
	}
	if minimum <= 0 {
		minimum = streak.DefaultMinimumPresence
	}
	if now == nil {
		now = time.Now
	}
	return &PresenceService{
		gyms:          gyms,
		members:       members,
		locations:     locations,
		defaultRadius: defaultRadius,
		maxGap:        maxGap,
		minimum:       minimum,
		metrics:       m,
		now:           now,
	}
}

// RecordLocation stores one reading with its distance to the gym centre.
// A zero at means now.
func (s *PresenceService) RecordLocation(ctx context.Context, userID, gymID uint, lat, lng, accuracy float64, at time.Time) (*models.LocationSample, error) {
	if !location.ValidCoordinate(lat, lng) {
		return nil, ErrInvalidCoordinate
	}
	gym, err := s.gyms.GetByID(ctx, gymID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.members.GetActive(ctx, userID, gymID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}

	radius := gym.GeofenceRadiusMeters
	if radius <= 0 {
		radius = s.defaultRadius
	}
	fence := location.Geofence{Latitude: gym.Latitude, Longitude: gym.Longitude, RadiusMeters: radius}
	distance, within := fence.Check(lat, lng)
	if at.IsZero() {
		at = s.now()
	}
	sample := &models.LocationSample{
		UserID:         userID,
		GymID:          gymID,
		Latitude:       lat,
		Longitude:      lng,
		AccuracyMeters: accuracy,
		DistanceMeters: distance,
		WithinGeofence: within,
		RecordedAt:     at.UTC(),
	}
	if err := s.locations.Create(ctx, sample); err != nil {
		return nil, err
	}
	sample.Proximity = proximity.Label(distance, radius)
	sample.ProximityProgress = proximity.Progress(distance, radius)
	s.metrics.LocationSample(within)
	return sample, nil
}

// Presence computes continuous presence from the samples recorded in [from, to].
func (s *PresenceService) Presence(ctx context.Context, userID, gymID uint, from, to time.Time) (streak.Presence, error) {
	rows, err := s.locations.ListWindow(ctx, userID, gymID, from.UTC(), to.UTC())
	if err != nil {
		return streak.Presence{}, err
	}
	samples := make([]streak.Sample, len(rows))
	for i, r := range rows {
		samples[i] = streak.Sample{RecordedAt: r.RecordedAt, WithinGeofence: r.WithinGeofence}
	}
	return streak.ContinuousPresence(samples, s.maxGap, s.minimum), nil
}
