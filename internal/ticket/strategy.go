package ticket

import "strings"

// Range is a closed interval of decimal odds or probabilities.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// GlobalTotalOdds bounds every generated accumulator's total odds.
var GlobalTotalOdds = Range{Min: 5.0, Max: 10.0}

// Profile is the static parameter set for one risk tier.
type Profile struct {
	Tier              RiskTier `json:"tier"`
	Label             string   `json:"label"`
	PerLegOdds        Range    `json:"per_leg_odds"`
	TotalOdds         Range    `json:"total_odds"`
	TotalOddsDefault  float64  `json:"total_odds_default"`
	ConfidenceDefault float64  `json:"confidence_default"`
	EdgeDefault       float64  `json:"edge_default"`
}

var profiles = map[RiskTier]Profile{
	TierSafe: {
		Tier:              TierSafe,
		Label:             "The Iron Bank",
		PerLegOdds:        Range{Min: 1.25, Max: 1.45},
		TotalOdds:         Range{Min: 5.0, Max: 6.5},
		TotalOddsDefault:  6.0,
		ConfidenceDefault: 0.8,
		EdgeDefault:       0.15,
	},
	TierBalanced: {
		Tier:              TierBalanced,
		Label:             "The Bookie Basher",
		PerLegOdds:        Range{Min: 1.50, Max: 1.75},
		TotalOdds:         Range{Min: 7.5, Max: 9.0},
		TotalOddsDefault:  8.0,
		ConfidenceDefault: 0.7,
		EdgeDefault:       0.20,
	},
	TierRisky: {
		Tier:              TierRisky,
		Label:             "The High-Yield Assassin",
		PerLegOdds:        Range{Min: 1.80, Max: 2.20},
		TotalOdds:         Range{Min: 9.0, Max: 10.0},
		TotalOddsDefault:  9.0,
		ConfidenceDefault: 0.6,
		EdgeDefault:       0.25,
	},
}

// ProfileFor returns the tier's profile. Unknown tiers resolve to balanced so
// the lookup stays total.
func ProfileFor(tier RiskTier) Profile {
	if p, ok := profiles[tier]; ok {
		return p
	}
	return profiles[TierBalanced]
}

func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, tier := range RiskTiers() {
		out = append(out, profiles[tier])
	}
	return out
}

// CanonicalLabel reports whether s names one of the strategy labels and
// returns it in canonical casing.
func CanonicalLabel(s string) (string, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Label, s) {
			return p.Label, true
		}
	}
	return "", false
}
