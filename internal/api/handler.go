package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/jwhitt/daybook/internal/dateutil"
	"github.com/jwhitt/daybook/internal/record"
	"github.com/jwhitt/daybook/internal/store"
)

// TaskStore is the store surface the façade depends on.
type TaskStore interface {
	ListTasks(ctx context.Context, date string) ([]record.Task, error)
	CreateTask(ctx context.Context, text, date string) (record.Task, error)
	SetTaskCompletion(ctx context.Context, id int64, completed bool) error
	DeleteTask(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, date string) ([]record.Note, error)
	CreateNote(ctx context.Context, text, date string) (record.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	ListAll(ctx context.Context) (record.Records, error)
}

// WeatherSource reports the current rounded temperature.
type WeatherSource interface {
	Current(ctx context.Context) (int, error)
}

// handler translates HTTP requests into store operations.
type handler struct {
	mux     *http.ServeMux
	store   TaskStore
	weather WeatherSource
	logger  *log.Logger
}

func newHandler(st TaskStore, weather WeatherSource, logger *log.Logger) *handler {
	h := &handler{
		mux:     http.NewServeMux(),
		store:   st,
		weather: weather,
		logger:  logger,
	}
	h.routes()
	return h
}

func (h *handler) routes() {
	h.mux.HandleFunc("GET /api/tasks", h.listTasks)
	h.mux.HandleFunc("POST /api/tasks", h.createTask)
	h.mux.HandleFunc("PUT /api/tasks", h.updateTask)
	h.mux.HandleFunc("DELETE /api/tasks", h.deleteTask)
	h.mux.HandleFunc("GET /api/notes", h.listNotes)
	h.mux.HandleFunc("POST /api/notes", h.createNote)
	h.mux.HandleFunc("DELETE /api/notes", h.deleteNote)
	h.mux.HandleFunc("GET /api/records", h.records)
	h.mux.HandleFunc("GET /api/weather", h.currentWeather)
	h.mux.HandleFunc("GET /health", h.health)
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// successResponse is the acknowledgment body for updates and deletes.
type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Date is required"})
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), date)
	if err != nil {
		h.internalError(w, "GET /api/tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Text == "" || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Text and date are required"})
		return
	}
	if dateutil.Validate(req.Date) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Date must be YYYY-MM-DD"})
		return
	}

	task, err := h.store.CreateTask(r.Context(), req.Text, req.Date)
	if err != nil {
		h.internalError(w, "POST /api/tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	// completed is a pointer so an explicit false is distinguishable
	// from an absent field.
	var req struct {
		ID        *int64 `json:"id"`
		Completed *bool  `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.ID == nil || req.Completed == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Id and completed status are required"})
		return
	}

	err := h.store.SetTaskCompletion(r.Context(), *req.ID, *req.Completed)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Task not found"})
			return
		}
		h.internalError(w, "PUT /api/tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		h.internalError(w, "DELETE /api/tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Date is required"})
		return
	}

	notes, err := h.store.ListNotes(r.Context(), date)
	if err != nil {
		h.internalError(w, "GET /api/notes", err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Text == "" || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Text and date are required"})
		return
	}
	if dateutil.Validate(req.Date) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Date must be YYYY-MM-DD"})
		return
	}

	note, err := h.store.CreateNote(r.Context(), req.Text, req.Date)
	if err != nil {
		h.internalError(w, "POST /api/notes", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteNote(r.Context(), id); err != nil {
		h.internalError(w, "DELETE /api/notes", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handler) records(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.internalError(w, "GET /api/records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *handler) currentWeather(w http.ResponseWriter, r *http.Request) {
	if h.weather == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch weather data"})
		return
	}

	temp, err := h.weather.Current(r.Context())
	if err != nil {
		// Degraded, not fatal: the caller gets a fixed message, never
		// the upstream payload.
		h.logger.Printf("Error fetching weather: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch weather data"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"temp": temp})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// idParam extracts the required numeric id query parameter, writing a 400
// response and returning ok=false when it is missing or malformed.
func (h *handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Id is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Id must be numeric"})
		return 0, false
	}
	return id, true
}

// internalError logs the store failure with full detail and surfaces an
// opaque error to the caller.
func (h *handler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Printf("Error in %s: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
