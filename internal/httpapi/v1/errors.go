package v1

import (
	"errors"
	"net/http"

	"github.com/yungbote/kingbayo/internal/httpapi/httputil"
	"github.com/yungbote/kingbayo/internal/pipeline"
	"github.com/yungbote/kingbayo/internal/platform/apierr"
	"github.com/yungbote/kingbayo/internal/platform/logger"
	"github.com/yungbote/kingbayo/internal/session"
	"github.com/yungbote/kingbayo/internal/ticket"
)

func toAPIError(err error) *apierr.Error {
	switch {
	case errors.Is(err, ticket.ErrUnknownMode):
		return apierr.New(http.StatusBadRequest, "invalid_mode", err)
	case errors.Is(err, ticket.ErrUnknownRiskTier):
		return apierr.New(http.StatusBadRequest, "invalid_risk_tier", err)
	case errors.Is(err, session.ErrGenerationInFlight):
		return apierr.New(http.StatusConflict, "generation_in_flight", err)
	case errors.Is(err, pipeline.ErrUnexpectedFault):
		return apierr.New(http.StatusInternalServerError, "unexpected_fault", err)
	default:
		return apierr.From(err)
	}
}

// writeError maps err to a status and writes the error envelope. Server
// errors are logged and their message is not echoed back.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	ae := toAPIError(err)
	id := httputil.RequestIDFromContext(r.Context())
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		log.Error("request failed", "request_id", id, "code", ae.Code, "error", err)
		msg = "ticket generation failed, please retry"
	}
	httputil.WriteErrorCode(w, ae.Status, msg, ae.Code, id)
}
