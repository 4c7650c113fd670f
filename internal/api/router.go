package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/soaringjerry/messageservice/internal/catalog"
	"github.com/soaringjerry/messageservice/internal/services"
)

const (
	messagesPath = "/messages/api/v1/messages"
	maxBodyBytes = 1 << 20
)

// BuildInfo is reported by /health and /version.
type BuildInfo struct {
	Name      string
	Version   string
	Commit    string
	BuildTime string
}

type Router struct {
	messages *services.MessageService
	info     BuildInfo
	log      *slog.Logger
}

func NewRouter(messages *services.MessageService, info BuildInfo, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{messages: messages, info: info, log: log}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+messagesPath+"/{code}", rt.handleGetMessage)
	mux.HandleFunc("GET "+messagesPath, rt.handleListMessages)
	mux.HandleFunc("PUT "+messagesPath+"/{code}", rt.handleUpsertMessage)
	mux.HandleFunc("DELETE "+messagesPath+"/{code}", rt.handleDeleteMessage)
	mux.HandleFunc("GET /health", rt.handleHealth)
	mux.HandleFunc("GET /version", rt.handleVersion)
}

// Handler returns a mux with every route registered.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	rt.Register(mux)
	return mux
}

// GET /messages/api/v1/messages/{code}
func (rt *Router) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := rt.messages.Get(r.PathValue("code"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// GET /messages/api/v1/messages
func (rt *Router) handleListMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.messages.List())
}

// PUT /messages/api/v1/messages/{code}
// The body's code, if any, is replaced by the path value.
func (rt *Router) handleUpsertMessage(w http.ResponseWriter, r *http.Request) {
	var body *catalog.Message
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "body too large"})
		case errors.Is(err, io.EOF):
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "message body required"})
		default:
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json: " + err.Error()})
		}
		return
	}
	stored, err := rt.messages.Upsert(r.PathValue("code"), body)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// DELETE /messages/api/v1/messages/{code}
func (rt *Router) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	removed, err := rt.messages.Remove(r.PathValue("code"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

// GET /health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"name":       rt.info.Name,
		"messages":   rt.messages.Count(),
		"commit":     rt.info.Commit,
		"build_time": rt.info.BuildTime,
	})
}

// GET /version
func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    rt.info.Version,
		"commit":     rt.info.Commit,
		"build_time": rt.info.BuildTime,
	})
}
