package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/yungbote/kingbayo/internal/httpapi/httputil"
	"github.com/yungbote/kingbayo/internal/platform/apierr"
	"github.com/yungbote/kingbayo/internal/ticket"
)

func handleGenerate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in GenerateRequest
		if err := httputil.DecodeJSON(w, r, d.Config.HTTP.MaxRequestBytes, &in); err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("request body is required")
			}
			writeError(w, r, d.Log, apierr.New(http.StatusBadRequest, "invalid_request", err))
			return
		}

		req, err := ticket.ParseRequest(in.Mode, in.RiskTier)
		if err != nil {
			writeError(w, r, d.Log, err)
			return
		}

		res, err := d.Session.Generate(r.Context(), req)
		if err != nil {
			writeError(w, r, d.Log, err)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, GenerateResponse{
			Source:         string(res.Source),
			FallbackReason: res.FallbackReason,
			Tickets:        res.Tickets,
		})
	}
}

func handleCurrent(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		tickets := d.Session.Current()
		if tickets == nil {
			tickets = []ticket.Ticket{}
		}
		httputil.WriteJSON(w, http.StatusOK, TicketsResponse{Tickets: tickets})
	}
}

func handleStrategies() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		modes := make([]ModeInfo, 0, len(ticket.Modes()))
		for _, m := range ticket.Modes() {
			modes = append(modes, ModeInfo{ID: string(m), Description: m.Description(), Live: m.IsLive()})
		}
		httputil.WriteJSON(w, http.StatusOK, StrategiesResponse{
			Strategies: ticket.Profiles(),
			Modes:      modes,
		})
	}
}
