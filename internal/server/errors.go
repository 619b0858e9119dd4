package server

import (
	"net/http"

	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/observability"
)

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errs.Is(err, errs.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	id := RequestIDFromContext(ctx)
	observability.HTTP().OnError(ctx, id, r.Method, r.URL.Path, err)

	status := statusFor(err)
	code := string(errs.GetCode(err))
	msg := errs.UserMessage(err)
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: code, Message: msg, RequestID: id})
}
