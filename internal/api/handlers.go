// Package api exposes HTTP handlers for the exercise log service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/exerciselog/internal/domain"
)

// dateLayout renders dates the way the public API has always shown them:
// weekday, month, zero-padded day, year, no time of day.
const dateLayout = "Mon Jan 02 2006"

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", h.users)
	mux.HandleFunc("/api/users/", h.userSubresource)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodGet:
		h.listUsers(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) userSubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not_found", "unknown resource")
		return
	}
	id := parts[0]

	switch {
	case parts[1] == "exercises" && r.Method == http.MethodPost:
		h.addExercise(w, r, id)
	case parts[1] == "logs" && r.Method == http.MethodGet:
		h.userLog(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown resource")
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")

	user, err := h.service.CreateUser(r.Context(), username)
	if err != nil {
		// Original behavior: the failure is logged and the request is left
		// without a response body.
		h.logger.Error("failed to create user", zap.Error(err))
		return
	}

	writeJSON(w, http.StatusOK, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoUsers) {
			// An empty store is a 404, not an empty array.
			writeText(w, http.StatusNotFound, "No users found")
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An error occurred while retrieving users",
		})
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request, id string) {
	input := domain.ExerciseInput{
		Description: r.FormValue("description"),
		Duration:    parseNumber(r.FormValue("duration")),
		Date:        parseDate(r.FormValue("date")),
	}

	user, exercise, err := h.service.AddExercise(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A 200 carrying an error field, not an HTTP error status.
			writeJSON(w, http.StatusOK, map[string]string{"error": "Could not find user"})
			return
		}
		h.logger.Error("failed to record exercise", zap.String("user_id", id), zap.Error(err))
		return
	}

	writeJSON(w, http.StatusOK, ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.Format(dateLayout),
	})
}

func (h *Handler) userLog(w http.ResponseWriter, r *http.Request, id string) {
	query := r.URL.Query()

	filter := domain.LogFilter{
		From: parseDate(query.Get("from")),
		To:   parseDate(query.Get("to")),
	}
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.Limit = parsed
		}
	}

	user, log, err := h.service.UserLog(r.Context(), id, filter)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Plain text here, unlike the exercise endpoint's JSON payload.
			writeText(w, http.StatusOK, "Could not find user")
			return
		}
		writeText(w, http.StatusInternalServerError, "An error occurred while retrieving the log")
		return
	}

	entries := make([]LogEntry, 0, len(log))
	for _, exercise := range log {
		entries = append(entries, LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.Format(dateLayout),
		})
	}

	writeJSON(w, http.StatusOK, LogResponse{
		Username: user.Username,
		Count:    len(entries),
		ID:       user.ID,
		Log:      entries,
	})
}

// parseDate parses a calendar date, accepting a bare date or an RFC 3339
// timestamp. Unparseable input yields nil, which applies no filter (or, at
// creation time, defaults to the current date).
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

// parseNumber coerces a form value to an integer; anything unparseable
// silently becomes zero.
func parseNumber(raw string) int {
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

// UserView is the stored user as exposed over the API.
type UserView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ExerciseResponse flattens the owning user with the newly stored record.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is a single record in a user's log.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse packages the filtered, capped log for one user. Count reflects
// the returned set, not the total match before the cap.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Username: user.Username}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
