package pipeline

import (
	"fmt"
	"strings"

	"github.com/yungbote/kingbayo/internal/engine"
	"github.com/yungbote/kingbayo/internal/platform/promptstyle"
	"github.com/yungbote/kingbayo/internal/ticket"
)

const systemPrompt = `ROLE: KingBayo accumulator analyst. Cold, numbers-first, no favourite teams.
TASK: Build accumulator betting slips across every sport, league and market where value exists, obscure leagues included.
RULES:
- Only legs with a clear probability edge over the bookmaker price.
- Accumulators of 5-10 legs; total odds between 5.0 and 10.0.
- Always return slips in multiples of 3.
STRATEGY PROTOCOLS:
%s
OUTPUT: Return ONLY a JSON array of ticket objects (no prose).`

// Messages renders the generation prompt for req. The user message carries
// "MODE:" and "RISK LEVEL:" lines the offline engine also reads.
func Messages(req ticket.Request) []engine.Message {
	return []engine.Message{
		{Role: "system", Content: promptstyle.ApplySystem(fmt.Sprintf(systemPrompt, strategyProtocols()), promptstyle.FormatJSONArray)},
		{Role: "user", Content: userPrompt(req)},
	}
}

func strategyProtocols() string {
	var b strings.Builder
	for i, p := range ticket.Profiles() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s): %.2f-%.2f odds per leg", strings.ToUpper(p.Label), p.Tier, p.PerLegOdds.Min, p.PerLegOdds.Max)
	}
	return b.String()
}

func userPrompt(req ticket.Request) string {
	p := ticket.ProfileFor(req.RiskTier)
	var b strings.Builder
	b.WriteString("MODE: ")
	b.WriteString(req.Mode.Description())
	b.WriteString("\nRISK LEVEL: ")
	b.WriteString(strings.ToUpper(string(req.RiskTier)))
	fmt.Fprintf(&b, "\n\nGenerate %d accumulator slips using the %q protocol:\n", ticket.BatchSize, p.Label)
	fmt.Fprintf(&b, "- %d-%d matches per accumulator\n", ticket.MinLegs, ticket.MaxLegs)
	fmt.Fprintf(&b, "- total odds between %.1f and %.1f\n", ticket.GlobalTotalOdds.Min, ticket.GlobalTotalOdds.Max)
	if req.Mode.IsLive() {
		b.WriteString("- in-play matches only\n")
	}
	b.WriteString("\nEach ticket: strategy, totalOdds, confidence (0-1), mathematicalEdge (0-1), reasoning, matches.\n")
	b.WriteString("Each match: sport, league, teams, matchTime, prediction, odds, confidence (0-1), reasoning.\n")
	return b.String()
}
