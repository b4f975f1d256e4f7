package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"flexio/config"
	"flexio/internal/domain"
	"flexio/internal/metrics"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/internal/streak"

	"gorm.io/gorm"
)

var (
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrInsufficientPresence = errors.New("not enough continuous presence at the gym")
)

// CheckInResult is what a member sees after checking in.
type CheckInResult struct {
	CheckIn     *models.CheckIn `json:"check_in"`
	Reward      streak.Reward   `json:"reward"`
	Presence    streak.Presence `json:"presence"`
	CoinBalance int64           `json:"coin_balance"`
}

type RewardService struct {
	members         *repository.MembershipRepository
	settings        *repository.SettingRepository
	checkIns        *repository.CheckInRepository
	users           *repository.UserRepository
	presence        *PresenceService
	defaults        streak.Settings
	requirePresence bool
	window          time.Duration
	loc             *time.Location
	metrics         *metrics.Metrics
	events          EventPublisher
	logger          *slog.Logger
	now             func() time.Time
}

type RewardOptions struct {
	Rewards  config.RewardsConfig
	Geofence config.GeofenceConfig
	Location *time.Location
	Metrics  *metrics.Metrics
	Events   EventPublisher
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewRewardService(
	members *repository.MembershipRepository,
	settings *repository.SettingRepository,
	checkIns *repository.CheckInRepository,
	users *repository.UserRepository,
	presence *PresenceService,
	opts RewardOptions,
) *RewardService {
	s := &RewardService{
		members:         members,
		settings:        settings,
		checkIns:        checkIns,
		users:           users,
		presence:        presence,
		defaults:        SettingsFromConfig(opts.Rewards),
		requirePresence: opts.Geofence.RequirePresence,
		window:          opts.Geofence.CheckInWindow,
		loc:             opts.Location,
		metrics:         opts.Metrics,
		events:          opts.Events,
		logger:          opts.Logger,
		now:             opts.Now,
	}
	if s.window <= 0 {
		s.window = 3 * time.Hour
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SettingsFromConfig maps platform defaults onto reward settings.
func SettingsFromConfig(c config.RewardsConfig) streak.Settings {
	return streak.Settings{
		Day1:             c.Day1,
		Day2:             c.Day2,
		Day3:             c.Day3,
		Day4:             c.Day4,
		Day5:             c.Day5,
		Day6Plus:         c.Day6Plus,
		SundayAutoStreak: c.SundayAutoStreak,
		UnifiedMode:      c.UnifiedMode,
		UnifiedValue:     c.UnifiedValue,
	}
}

// Settings returns the gym's reward settings. A missing or unreadable stored
// value yields the defaults.
func (s *RewardService) Settings(ctx context.Context, gymID uint) streak.Settings {
	raw, err := s.settings.Get(ctx, gymID, domain.SettingRewards)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("reward settings lookup failed, using defaults", "gym_id", gymID, "error", err)
		}
		return s.defaults
	}
	return streak.ParseSettings(s.defaults, raw)
}

// UpdateSettings applies o over the gym's current settings and stores the result.
func (s *RewardService) UpdateSettings(ctx context.Context, gymID uint, o streak.Override) (streak.Settings, error) {
	next := s.Settings(ctx, gymID).Apply(o)
	raw, err := json.Marshal(next)
	if err != nil {
		return streak.Settings{}, err
	}
	if err := s.settings.Set(ctx, gymID, domain.SettingRewards, string(raw)); err != nil {
		return streak.Settings{}, err
	}
	return next, nil
}

func (s *RewardService) Preview(ctx context.Context, gymID uint, streakDay int) streak.Reward {
	return streak.CalculateReward(streakDay, s.Settings(ctx, gymID))
}

// CheckIn records today's visit and credits the streak reward.
func (s *RewardService) CheckIn(ctx context.Context, userID, gymID uint) (*CheckInResult, error) {
	if _, err := s.members.GetActive(ctx, userID, gymID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.CheckIn("not_member", 0)
			return nil, ErrNotMember
		}
		return nil, err
	}
	settings := s.Settings(ctx, gymID)
	now := s.now().In(s.loc)

	day := 1
	last, err := s.checkIns.Last(ctx, userID, gymID)
	switch {
	case err == nil:
		next, ok := streak.NextStreakDay(last.CheckedInAt, last.StreakDay, now, settings.SundayAutoStreak)
		if !ok {
			s.metrics.CheckIn("already_checked_in", 0)
			return nil, ErrAlreadyCheckedIn
		}
		day = next
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var presence streak.Presence
	if s.presence != nil {
		presence, err = s.presence.Presence(ctx, userID, gymID, now.Add(-s.window), now)
		if err != nil {
			return nil, err
		}
		if s.requirePresence && !presence.HasMinimumPresence {
			s.metrics.CheckIn("insufficient_presence", 0)
			return nil, ErrInsufficientPresence
		}
	}

	reward := streak.CalculateReward(day, settings)
	c := &models.CheckIn{
		UserID:          userID,
		GymID:           gymID,
		CheckedInAt:     now.UTC(),
		StreakDay:       reward.StreakDay,
		CoinsEarned:     int64(reward.CoinsEarned),
		Multiplier:      reward.BonusMultiplier,
		PresenceMinutes: presence.Minutes,
	}
	coinTx, err := s.checkIns.CreateWithReward(ctx, c, reward.Description)
	if err != nil {
		return nil, err
	}
	s.metrics.CheckIn("ok", c.CoinsEarned)
	s.events.Publish(gymID, "check_in", map[string]interface{}{
		"user_id":      userID,
		"streak_day":   reward.StreakDay,
		"coins_earned": reward.CoinsEarned,
	})
	s.logger.Info("check-in recorded", "user_id", userID, "gym_id", gymID,
		"streak_day", reward.StreakDay, "coins", reward.CoinsEarned)

	return &CheckInResult{
		CheckIn:     c,
		Reward:      reward,
		Presence:    presence,
		CoinBalance: coinTx.BalanceAfter,
	}, nil
}

// Coins returns the user's balance and recent reward history.
func (s *RewardService) Coins(ctx context.Context, userID uint, limit int) (int64, []models.CoinTransaction, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	history, err := s.users.ListCoinTransactions(ctx, userID, limit)
	if err != nil {
		return 0, nil, err
	}
	return u.CoinBalance, history, nil
}
