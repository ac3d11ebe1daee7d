package v1

import "github.com/yungbote/kingbayo/internal/ticket"

type GenerateRequest struct {
	Mode     string `json:"mode"`
	RiskTier string `json:"risk_tier"`
}

type GenerateResponse struct {
	Source         string          `json:"source"`
	FallbackReason string          `json:"fallback_reason,omitempty"`
	Tickets        []ticket.Ticket `json:"tickets"`
}

type TicketsResponse struct {
	Tickets []ticket.Ticket `json:"tickets"`
}

type HistoryResponse struct {
	Count    int             `json:"count"`
	Capacity int             `json:"capacity"`
	Tickets  []ticket.Ticket `json:"tickets"`
}

type ModeInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Live        bool   `json:"live"`
}

type StrategiesResponse struct {
	Strategies []ticket.Profile `json:"strategies"`
	Modes      []ModeInfo       `json:"modes"`
}
