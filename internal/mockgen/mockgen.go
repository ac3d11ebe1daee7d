// Package mockgen builds deterministic placeholder tickets. It is the
// unconditional fallback of the generation pipeline and never fails.
package mockgen

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/kingbayo/internal/ticket"
)

// LegsPerTicket is the sliding window width over the fixture pool.
const LegsPerTicket = ticket.MinLegs

// Generate returns exactly ticket.BatchSize tickets for the request. Ticket i
// takes LegsPerTicket consecutive fixtures starting at pool offset i, so
// neighbouring tickets overlap. Only IDs and timestamps vary between calls.
func Generate(mode ticket.Mode, tier ticket.RiskTier, now time.Time) []ticket.Ticket {
	profile := ticket.ProfileFor(tier)
	plan, ok := plans[profile.Tier]
	if !ok {
		plan = plans[ticket.TierBalanced]
	}
	idx := tierIndex(profile.Tier)

	out := make([]ticket.Ticket, 0, ticket.BatchSize)
	for i := 0; i < ticket.BatchSize; i++ {
		legs := make([]ticket.Match, 0, LegsPerTicket)
		for j := 0; j < LegsPerTicket; j++ {
			tpl := pool[(i+j)%len(pool)]
			legs = append(legs, ticket.Match{
				ID:            uuid.NewString(),
				Sport:         tpl.sport,
				League:        tpl.league,
				Participants:  tpl.teams,
				ScheduledTime: tpl.kickoff,
				Prediction:    tpl.prediction,
				Odds:          clamp(tpl.odds[idx], profile.PerLegOdds),
				Confidence:    tpl.confidence,
				Reasoning:     tpl.reasoning,
				IsLive:        mode.IsLive(),
			})
		}
		p := plan[i]
		out = append(out, ticket.Ticket{
			ID:               uuid.NewString(),
			Strategy:         profile.Label,
			Matches:          legs,
			TotalOdds:        clamp(p.totalOdds, profile.TotalOdds),
			Confidence:       p.confidence,
			Timestamp:        now,
			Reasoning:        p.reasoning,
			MathematicalEdge: p.edge,
		})
	}
	return out
}

func tierIndex(tier ticket.RiskTier) int {
	switch tier {
	case ticket.TierSafe:
		return 0
	case ticket.TierRisky:
		return 2
	default:
		return 1
	}
}

// clamp pins v into r and rounds to two decimal places.
func clamp(v float64, r ticket.Range) float64 {
	d := decimal.NewFromFloat(v)
	lo := decimal.NewFromFloat(r.Min)
	hi := decimal.NewFromFloat(r.Max)
	if d.LessThan(lo) {
		d = lo
	}
	if d.GreaterThan(hi) {
		d = hi
	}
	f, _ := d.Round(2).Float64()
	return f
}
