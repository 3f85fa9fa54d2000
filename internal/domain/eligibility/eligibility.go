// Package eligibility scores a candidate against the demo campus-hiring
// heuristic: qualifying degree, recent graduation and at least one year of
// experience each contribute one point.
package eligibility

import (
	"time"

	"github.com/okian/careerdesk/internal/domain/params"
)

// Scoring constants.
const (
	recentYears      = 2
	minExperience    = 1.0
	likelyEligibleAt = 2
)

// qualifyingDegrees must match exactly; "btech" or "B.Tech" do not qualify.
var qualifyingDegrees = map[string]struct{}{
	"BTech": {},
	"BE":    {},
	"CA":    {},
	"MBA":   {},
	"MTech": {},
	"MCA":   {},
}

// Verdict is the tri-state outcome of an eligibility check.
type Verdict int

// Verdicts, ordered from worst to best.
const (
	NotEligible Verdict = iota
	Borderline
	LikelyEligible
)

// String returns the user-facing verdict text.
func (v Verdict) String() string {
	switch v {
	case LikelyEligible:
		return "Likely eligible"
	case Borderline:
		return "Borderline"
	default:
		return "Not eligible (demo heuristic)"
	}
}

// FromScore maps a 0-3 score to a verdict.
func FromScore(score int) Verdict {
	switch {
	case score >= likelyEligibleAt:
		return LikelyEligible
	case score == 1:
		return Borderline
	default:
		return NotEligible
	}
}

// Input is the normalized form of the eligibility slots.
type Input struct {
	Degree          string
	GraduationYear  *int
	ExperienceYears float64
	// ExperienceValid is false when the raw experience value could not be
	// parsed; such input never earns the experience point.
	ExperienceValid bool
}

// Normalize builds an Input from raw slot values. It never fails.
func Normalize(degree string, rawYear, rawExperience any) Input {
	years, ok := params.ParseExperience(rawExperience)
	return Input{
		Degree:          degree,
		GraduationYear:  params.ParseYear(rawYear),
		ExperienceYears: years,
		ExperienceValid: ok,
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithClock sets the time source used to determine the current year.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone in which the current year is read.
func WithLocation(loc *time.Location) Option {
	return func(s *Scorer) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Scorer evaluates eligibility. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	now func() time.Time
	loc *time.Location
}

// NewScorer creates a Scorer reading the wall clock in UTC unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		now: time.Now,
		loc: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentYear returns the calendar year of now in the configured zone.
func (s *Scorer) CurrentYear() int {
	return s.now().In(s.loc).Year()
}

// Score returns the 0-3 heuristic score for in.
func (s *Scorer) Score(in Input) int {
	score := 0
	if _, ok := qualifyingDegrees[in.Degree]; ok {
		score++
	}
	if in.GraduationYear != nil && *in.GraduationYear >= s.CurrentYear()-recentYears {
		score++
	}
	if in.ExperienceValid && in.ExperienceYears >= minExperience {
		score++
	}
	return score
}

// Evaluate normalizes the raw slots and returns the verdict.
func (s *Scorer) Evaluate(degree string, rawYear, rawExperience any) Verdict {
	return FromScore(s.Score(Normalize(degree, rawYear, rawExperience)))
}
