// Package normalize maps untrusted model payloads onto the ticket schema.
// Every field has its own default and is validated independently; a bad field
// never discards the surrounding match, ticket or batch.
package normalize

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/kingbayo/internal/extract"
	"github.com/yungbote/kingbayo/internal/ticket"
)

// Match defaults.
const (
	DefaultSport      = "Football"
	DefaultLeague     = "Global"
	DefaultTeams      = "TBD"
	DefaultMatchTime  = "00:00"
	DefaultPrediction = "Over/Under"
	DefaultOdds       = 1.5
	DefaultConfidence = 0.5
	DefaultReasoning  = "AI-generated analysis"
)

// DefaultTicketReasoning is used when a ticket entry carries no rationale.
const DefaultTicketReasoning = "AI-powered analysis"

// Tickets normalizes at most ticket.BatchSize entries. An empty result means
// the payload had nothing usable and the caller should fall back.
func Tickets(entries extract.Entries, tier ticket.RiskTier, mode ticket.Mode, now time.Time) []ticket.Ticket {
	if len(entries) > ticket.BatchSize {
		entries = entries[:ticket.BatchSize]
	}
	profile := ticket.ProfileFor(tier)

	out := make([]ticket.Ticket, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		out = append(out, normalizeTicket(e, profile, mode, now))
	}
	return out
}

func normalizeTicket(e map[string]any, profile ticket.Profile, mode ticket.Mode, now time.Time) ticket.Ticket {
	strategy := profile.Label
	if s, ok := e["strategy"].(string); ok {
		if label, ok := ticket.CanonicalLabel(s); ok {
			strategy = label
		}
	}

	var legs []ticket.Match
	if raw, ok := e["matches"].([]any); ok {
		if len(raw) > ticket.MaxLegs {
			raw = raw[:ticket.MaxLegs]
		}
		legs = make([]ticket.Match, 0, len(raw))
		for _, m := range raw {
			obj, _ := m.(map[string]any)
			legs = append(legs, normalizeMatch(obj, mode))
		}
	}
	if len(legs) == 0 {
		legs = []ticket.Match{normalizeMatch(nil, mode)}
	}

	return ticket.Ticket{
		ID:               uuid.NewString(),
		Strategy:         strategy,
		Matches:          legs,
		TotalOdds:        totalOdds(firstPresent(e, "totalOdds", "total_odds"), profile.TotalOddsDefault),
		Confidence:       probability(e["confidence"], profile.ConfidenceDefault),
		Timestamp:        now,
		Reasoning:        text(e["reasoning"], DefaultTicketReasoning),
		MathematicalEdge: probability(firstPresent(e, "mathematicalEdge", "mathematical_edge", "edge"), profile.EdgeDefault),
	}
}

// normalizeMatch tolerates a nil object, which yields the placeholder leg.
func normalizeMatch(obj map[string]any, mode ticket.Mode) ticket.Match {
	if obj == nil {
		obj = map[string]any{}
	}
	return ticket.Match{
		ID:            uuid.NewString(),
		Sport:         text(obj["sport"], DefaultSport),
		League:        text(obj["league"], DefaultLeague),
		Participants:  participants(obj),
		ScheduledTime: text(firstPresent(obj, "matchTime", "match_time", "time"), DefaultMatchTime),
		Prediction:    text(obj["prediction"], DefaultPrediction),
		Odds:          odds(obj["odds"], DefaultOdds),
		Confidence:    probability(obj["confidence"], DefaultConfidence),
		Reasoning:     text(obj["reasoning"], DefaultReasoning),
		IsLive:        mode.IsLive(),
	}
}

// participants prefers "teams", then a home/away pair.
func participants(obj map[string]any) string {
	if s := text(firstPresent(obj, "teams", "participants"), ""); s != "" {
		return s
	}
	home := text(obj["home"], "")
	away := text(obj["away"], "")
	if home != "" && away != "" {
		return home + " vs " + away
	}
	return DefaultTeams
}
