package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pwaforge/pwaforge/pkg/backend"
	"github.com/pwaforge/pwaforge/pkg/generator"
	"github.com/pwaforge/pwaforge/pkg/model"
	"github.com/pwaforge/pwaforge/pkg/version"
	"github.com/sirupsen/logrus"
)

const maxIconBytes = 2 << 20

type handler struct {
	backend backend.Backend
}

func newHandler(b backend.Backend) *handler {
	return &handler{
		backend: b,
	}
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, version.Get())
}

func (h *handler) listApps(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())

	apps, err := h.backend.ListApps(ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, apps)
}

func (h *handler) createApp(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())

	var input model.AppInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	app, err := h.backend.CreateApp(ownerID, input)
	if err != nil {
		handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, app)
}

func (h *handler) updateApp(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	var input model.AppInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	app, err := h.backend.UpdateApp(ownerID, id, input)
	if err != nil {
		handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, app)
}

func (h *handler) deleteApp(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.backend.DeleteApp(ownerID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) uploadIcon(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxIconBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart body: %v", err))
		return
	}
	file, header, err := r.FormFile("icon")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("missing icon file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxIconBytes))
	if err != nil {
		handleError(w, err)
		return
	}

	url, err := h.backend.UploadIcon(ownerID, id, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		handleError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.IconResponse{IconURL: url})
}

func (h *handler) apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Errorf("API endpoint not found: %s", r.URL.Path))
}

// public serves tenant traffic: resolve the app for the request host, then
// pick the artifact by exact path.
func (h *handler) public(w http.ResponseWriter, r *http.Request) {
	if h.backend == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<h1>Service is not configured.</h1>"))
		return
	}

	domain := requestHost(r)

	app, err := h.backend.ResolveDomain(domain)
	if errors.Is(err, backend.ErrNotFound) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(fmt.Sprintf("<h1>No app is configured for %s.</h1>", html.EscapeString(domain))))
		return
	}
	if err != nil {
		logrus.WithError(err).Errorf("failed to resolve domain %v", domain)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<h1>Server error</h1>"))
		return
	}

	switch r.URL.Path {
	case "/manifest.json":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(generator.Manifest(app)))
	case "/service-worker.js":
		w.Header().Set("Content-Type", "application/javascript")
		w.Header().Set("Service-Worker-Allowed", "/")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(generator.ServiceWorker(app.TargetURL)))
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(generator.InstallPage(app)))
	}
}

// requestHost strips any port from the Host header.
func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// handleError recovers the backend error taxonomy into status codes.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, backend.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, backend.ErrConflict):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, backend.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, backend.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		logrus.WithError(err).Error("unhandled backend error")
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
