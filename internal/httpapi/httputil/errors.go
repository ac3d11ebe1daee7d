package httputil

import (
	"net/http"
	"strings"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteErrorCode(w, status, message, "", "")
}

func WriteErrorCode(w http.ResponseWriter, status int, message, code, requestID string) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, errorEnvelope{
		Error: errorBody{
			Message:   msg,
			Code:      strings.TrimSpace(code),
			RequestID: strings.TrimSpace(requestID),
		},
	})
}
