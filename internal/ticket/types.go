// Package ticket holds the accumulator domain model shared by the generators,
// the normalizer and the session layer.
package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/kingbayo/internal/normalization"
)

const (
	// BatchSize is the number of tickets a generation produces.
	BatchSize = 3
	MinLegs   = 5
	MaxLegs   = 10
)

var (
	ErrUnknownMode     = errors.New("unknown mode")
	ErrUnknownRiskTier = errors.New("unknown risk tier")
)

type Mode string

const (
	ModePreMatch   Mode = "pre-match-window"
	ModeLive       Mode = "live"
	ModeBetBuilder Mode = "bet-builder"
)

// Modes lists the accepted modes in display order.
func Modes() []Mode {
	return []Mode{ModePreMatch, ModeLive, ModeBetBuilder}
}

func ParseMode(s string) (Mode, error) {
	switch normalization.Key(s) {
	case string(ModePreMatch), "24h", "pre-match":
		return ModePreMatch, nil
	case string(ModeLive):
		return ModeLive, nil
	case string(ModeBetBuilder), "betbuilder":
		return ModeBetBuilder, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) Valid() bool {
	return m == ModePreMatch || m == ModeLive || m == ModeBetBuilder
}

func (m Mode) IsLive() bool { return m == ModeLive }

func (m Mode) Description() string {
	switch m {
	case ModeLive:
		return "Live match momentum detection"
	case ModeBetBuilder:
		return "Bet builder correlated opportunities"
	default:
		return "Pre-match 24-hour analysis"
	}
}

type RiskTier string

const (
	TierSafe     RiskTier = "safe"
	TierBalanced RiskTier = "balanced"
	TierRisky    RiskTier = "risky"
)

// RiskTiers lists the tiers from least to most aggressive.
func RiskTiers() []RiskTier {
	return []RiskTier{TierSafe, TierBalanced, TierRisky}
}

func ParseRiskTier(s string) (RiskTier, error) {
	switch RiskTier(normalization.Key(s)) {
	case TierSafe:
		return TierSafe, nil
	case TierBalanced:
		return TierBalanced, nil
	case TierRisky:
		return TierRisky, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRiskTier, s)
	}
}

func (r RiskTier) Valid() bool {
	return r == TierSafe || r == TierBalanced || r == TierRisky
}

// Request is a single generation request.
type Request struct {
	Mode     Mode
	RiskTier RiskTier
}

func ParseRequest(mode, tier string) (Request, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Request{}, err
	}
	r, err := ParseRiskTier(tier)
	if err != nil {
		return Request{}, err
	}
	return Request{Mode: m, RiskTier: r}, nil
}

func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, r.Mode)
	}
	if !r.RiskTier.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRiskTier, r.RiskTier)
	}
	return nil
}

// Match is one leg of a ticket.
type Match struct {
	ID            string  `json:"id"`
	Sport         string  `json:"sport"`
	League        string  `json:"league"`
	Participants  string  `json:"participants"`
	ScheduledTime string  `json:"scheduled_time"`
	Prediction    string  `json:"prediction"`
	Odds          float64 `json:"odds"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
	IsLive        bool    `json:"is_live"`
}

// Ticket is an accumulator slip. Tickets are never mutated after creation;
// callers that hand them out use Clone.
type Ticket struct {
	ID               string    `json:"id"`
	Strategy         string    `json:"strategy"`
	Matches          []Match   `json:"matches"`
	TotalOdds        float64   `json:"total_odds"`
	Confidence       float64   `json:"confidence"`
	Timestamp        time.Time `json:"timestamp"`
	Reasoning        string    `json:"reasoning"`
	MathematicalEdge float64   `json:"mathematical_edge"`
}

func (t Ticket) Clone() Ticket {
	out := t
	out.Matches = append([]Match(nil), t.Matches...)
	return out
}

func CloneAll(in []Ticket) []Ticket {
	if in == nil {
		return nil
	}
	out := make([]Ticket, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
