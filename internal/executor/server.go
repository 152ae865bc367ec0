package executor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

// maxRequestBytes caps the size of an incoming command.
const maxRequestBytes = 1 << 20

// Handler serves an Executor over HTTP:
//
//	POST /execute      {"command": "..."} -> {"result": "...", "error": bool}
//	GET  /favicon.ico  empty icon
//
// Every response allows any origin so browser consoles on other hosts can
// call it.
type Handler struct {
	exec Executor
	mux  *http.ServeMux
}

// NewHandler wraps exec.
func NewHandler(exec Executor) *Handler {
	h := &Handler{exec: exec, mux: http.NewServeMux()}
	h.mux.HandleFunc("/execute", h.handleExecute)
	h.mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		w.WriteHeader(http.StatusOK)
	})
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleExecute(w http.ResponseWriter, r *http.Request) {
	log := logger.Named("server")
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.WithField("remote", r.RemoteAddr).Warnf("bad request: %v", err)
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}

	log.WithField("remote", r.RemoteAddr).Infof("received command: %s", req.Command)
	start := time.Now()
	res, err := h.exec.Execute(r.Context(), req.Command)
	if err != nil {
		log.Errorf("error executing command: %v", err)
		res = Result{Output: err.Error(), Error: true}
	} else if res.Error {
		log.Errorf("error executing command: %s", res.Output)
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("command finished")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Warnf("write response: %v", err)
	}
}
