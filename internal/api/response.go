package api

import (
	"encoding/json"
	"net/http"

	"github.com/soaringjerry/messageservice/internal/middleware"
	"github.com/soaringjerry/messageservice/internal/services"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto statuses. Not found answers carry no
// body; anything unrecognised is logged and reported as a 500.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorNotFound:
			w.WriteHeader(http.StatusNotFound)
			return
		case services.ErrorInvalid:
			writeJSON(w, http.StatusBadRequest, errorBody{Error: se.Message})
			return
		}
	}
	rt.log.Error("request failed",
		"err", err,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}
