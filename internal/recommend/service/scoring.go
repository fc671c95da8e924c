package service

import (
	"math"

	"smartgov_backend/internal/recommend/transport"
)

// Priority tiers derived from the final score. The partition is closed-open:
// [80,100] critical, [65,80) high, [50,65) medium, [0,50) low.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

const (
	tierCriticalMin = 80.0
	tierHighMin     = 65.0
	tierMediumMin   = 50.0
)

// Seasonality flag values accepted by the scorer. Anything else is rejected
// at the request boundary and never reaches this package.
const (
	SeasonalityInSeason  = "in_season"
	SeasonalityOffSeason = "off_season"
)

// Activity level values accepted by the scorer.
const (
	ActivityLow    = "low"
	ActivityMedium = "medium"
	ActivityHigh   = "high"
)

// ScoringConfig holds every tunable constant of the priority model in one
// place: factor weights, the fixed sub-score values, and the thresholds
// used to attach human-readable reasons.
type ScoringConfig struct {
	WeightUrgency     float64
	WeightSeasonality float64
	WeightCategory    float64
	WeightActivity    float64

	InSeasonScore  float64
	OffSeasonScore float64

	ActivityLowScore    float64
	ActivityMediumScore float64
	ActivityHighScore   float64

	// ExpiresSoonDays is the days-left threshold for the "Expires soon" reason.
	ExpiresSoonDays int
	// FrequentCategoryMin is the category-importance threshold for the
	// "Frequently used category" reason.
	FrequentCategoryMin float64
}

// DefaultScoring returns the production scoring model. Weights sum to 1.0.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		WeightUrgency:     0.40,
		WeightSeasonality: 0.25,
		WeightCategory:    0.20,
		WeightActivity:    0.15,

		InSeasonScore:  100,
		OffSeasonScore: 45,

		ActivityLowScore:    40,
		ActivityMediumScore: 70,
		ActivityHighScore:   100,

		ExpiresSoonDays:     30,
		FrequentCategoryMin: 0.7,
	}
}

// UrgencyScore maps days until expiry to [0,100]. Overdue and same-day
// services score 100; the curve is monotonically non-increasing and decays
// exponentially toward 0 past 90 days.
func (sc ScoringConfig) UrgencyScore(daysLeft int) float64 {
	d := float64(daysLeft)
	switch {
	case daysLeft <= 0:
		return 100
	case daysLeft <= 7:
		return clamp100(95 + (7 - d))
	case daysLeft <= 14:
		return 85 + (14-d)*0.7
	case daysLeft <= 30:
		return 70 + (30-d)*0.5
	case daysLeft <= 60:
		return 50 + (60-d)/3
	case daysLeft <= 90:
		return 30 + (90-d)/3
	default:
		return 30 * math.Exp(-(d-90)/200)
	}
}

// SeasonalityScore maps the seasonality flag to its fixed sub-score.
func (sc ScoringConfig) SeasonalityScore(seasonality string) float64 {
	if seasonality == SeasonalityInSeason {
		return sc.InSeasonScore
	}
	return sc.OffSeasonScore
}

// CategoryScore rescales category importance from [0,1] to [0,100].
// Out-of-range input is clamped rather than rejected.
func (sc ScoringConfig) CategoryScore(importance float64) float64 {
	return clamp01(importance) * 100
}

// ActivityScore maps the user's activity level to its fixed sub-score.
func (sc ScoringConfig) ActivityScore(level string) float64 {
	switch level {
	case ActivityHigh:
		return sc.ActivityHighScore
	case ActivityMedium:
		return sc.ActivityMediumScore
	default:
		return sc.ActivityLowScore
	}
}

// Score computes the full breakdown and final score for one (user, service)
// pair. Components are clamped to [0,100] before weighting, so the final
// score is always in [0,100]. The final score is rounded to the nearest
// integer; breakdown components keep two decimals.
func (sc ScoringConfig) Score(user transport.User, svc transport.ServiceInput) (transport.ScoreBreakdown, float64) {
	urgency := clamp100(sc.UrgencyScore(svc.DaysLeft))
	seasonality := clamp100(sc.SeasonalityScore(svc.Seasonality))
	category := clamp100(sc.CategoryScore(svc.CategoryImportance))
	activity := clamp100(sc.ActivityScore(user.ActivityLevel))

	final := urgency*sc.WeightUrgency +
		seasonality*sc.WeightSeasonality +
		category*sc.WeightCategory +
		activity*sc.WeightActivity

	breakdown := transport.ScoreBreakdown{
		Urgency:     transport.ComponentScore{Score: round2(urgency), Weight: sc.WeightUrgency},
		Seasonality: transport.ComponentScore{Score: round2(seasonality), Weight: sc.WeightSeasonality},
		Category:    transport.ComponentScore{Score: round2(category), Weight: sc.WeightCategory},
		Activity:    transport.ComponentScore{Score: round2(activity), Weight: sc.WeightActivity},
	}

	return breakdown, math.Round(final)
}

// PriorityLevel classifies a final score into its tier.
func PriorityLevel(score float64) string {
	switch {
	case score >= tierCriticalMin:
		return PriorityCritical
	case score >= tierHighMin:
		return PriorityHigh
	case score >= tierMediumMin:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func clamp100(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
