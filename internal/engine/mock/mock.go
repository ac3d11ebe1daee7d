package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/kingbayo/internal/engine"
	"github.com/yungbote/kingbayo/internal/mockgen"
	"github.com/yungbote/kingbayo/internal/ticket"
)

// Engine is an offline stand-in for the upstream model. By default it answers
// with a short preamble followed by a JSON ticket array shaped like a real
// model reply, so the extract and normalize stages run end to end.
type Engine struct {
	// Reply, when non-empty, is returned verbatim instead.
	Reply string
	// Err, when set, is returned instead of any reply.
	Err error
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	_ = model
	_ = opts
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.Err != nil {
		return "", e.Err
	}
	if e.Reply != "" {
		return e.Reply, nil
	}

	var user string
	for i := len(messages) - 1; i >= 0; i-- {
		if strings.EqualFold(messages[i].Role, "user") {
			user = messages[i].Content
			break
		}
	}
	mode, tier := requestFromPrompt(user)

	payload, err := json.Marshal(wireTickets(mockgen.Generate(mode, tier, time.Now())))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mock: %s / %s accumulators below.\n```json\n%s\n```", mode, tier, payload), nil
}

// requestFromPrompt recovers the request from the "MODE:" and "RISK LEVEL:"
// lines of the generation prompt.
func requestFromPrompt(prompt string) (ticket.Mode, ticket.RiskTier) {
	mode := ticket.ModePreMatch
	tier := ticket.TierBalanced
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := cutPrefixFold(line, "RISK LEVEL:"); ok {
			if t, err := ticket.ParseRiskTier(v); err == nil {
				tier = t
			}
			continue
		}
		if v, ok := cutPrefixFold(line, "MODE:"); ok {
			for _, m := range ticket.Modes() {
				if strings.EqualFold(strings.TrimSpace(v), m.Description()) {
					mode = m
				}
			}
		}
	}
	return mode, tier
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

func wireTickets(in []ticket.Ticket) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, t := range in {
		legs := make([]map[string]any, 0, len(t.Matches))
		for _, m := range t.Matches {
			legs = append(legs, map[string]any{
				"sport":      m.Sport,
				"league":     m.League,
				"teams":      m.Participants,
				"matchTime":  m.ScheduledTime,
				"prediction": m.Prediction,
				"odds":       m.Odds,
				"confidence": m.Confidence,
				"reasoning":  m.Reasoning,
			})
		}
		out = append(out, map[string]any{
			"strategy":         t.Strategy,
			"totalOdds":        t.TotalOdds,
			"confidence":       t.Confidence,
			"mathematicalEdge": t.MathematicalEdge,
			"reasoning":        t.Reasoning,
			"matches":          legs,
		})
	}
	return out
}
