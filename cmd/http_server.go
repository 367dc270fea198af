package cmd

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wave-app/wave/internal/calendar"
	"github.com/wave-app/wave/internal/classify"
	"github.com/wave-app/wave/internal/habit"
	"github.com/wave-app/wave/internal/profile"
	"github.com/wave-app/wave/internal/theme"
	"github.com/wave-app/wave/internal/utils"
)

// APIHandler exposes the running instance over a local HTTP API so CLI
// subcommands (and remote tooling) can talk to it.
type APIHandler struct {
	store  habit.Store
	sched  *calendar.Scheduler
	class  classify.Classifier
	ctrl   *theme.Controller
	port   int
	notify func()
}

func NewAPIHandler(store habit.Store, sched *calendar.Scheduler, class classify.Classifier, ctrl *theme.Controller, port int) *APIHandler {
	return &APIHandler{
		store: store,
		sched: sched,
		class: class,
		ctrl:  ctrl,
		port:  port,
	}
}

// Serve runs the API on the given listener until it is closed. All
// routes except the health checks require the instance's bearer
// token; CORS is outermost so rejections still carry its headers.
func (a *APIHandler) Serve(listener net.Listener) error {
	utils.Debug("API listening on port %d", a.port)
	handler := corsMiddleware(authMiddleware(ensureAuthToken(), a.Handler()))
	server := &http.Server{Handler: handler}
	return server.Serve(listener)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS, PUT")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func authMiddleware(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/api/ping" {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if provided, ok := strings.CutPrefix(header, "Bearer "); ok {
			if len(provided) == len(token) && subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}

// Handler builds the API route table.
func (a *APIHandler) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /api/ping", a.handleHealth)

	mux.HandleFunc("POST /api/habits", a.handleCreateHabit)
	mux.HandleFunc("GET /api/habits", a.handleListHabits)
	mux.HandleFunc("GET /api/habits/{id}", a.handleGetHabit)
	mux.HandleFunc("PUT /api/habits/{id}", a.handleUpdateHabit)
	mux.HandleFunc("DELETE /api/habits/{id}", a.handleDeleteHabit)
	mux.HandleFunc("GET /api/habits/day/{day}", a.handleHabitsForDay)
	mux.HandleFunc("POST /api/habits/{id}/remark", a.handleRemark)
	mux.HandleFunc("GET /api/habits/{id}/completions", a.handleCompletions)
	mux.HandleFunc("GET /api/habits/{id}/stats", a.handleStats)
	mux.HandleFunc("POST /api/completions", a.handleAddCompletion)

	mux.HandleFunc("POST /api/analyze", a.handleAnalyze)
	mux.HandleFunc("POST /api/profile", a.handleProfile)

	mux.HandleFunc("POST /api/schedule", a.handleSchedule)
	mux.HandleFunc("POST /api/task", a.handleTask)
	mux.HandleFunc("POST /api/reschedule", a.handleReschedule)
	mux.HandleFunc("GET /api/events", a.handleEvents)
	mux.HandleFunc("POST /api/events/clear", a.handleClearEvents)

	mux.HandleFunc("GET /api/mode", a.handleGetMode)
	mux.HandleFunc("POST /api/mode/toggle", a.handleToggleMode)
	mux.HandleFunc("POST /api/audio", a.handleAudio)

	return mux
}

func (a *APIHandler) changed() {
	if a.notify != nil {
		a.notify()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Debug("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (a *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "port": a.port})
}

func (a *APIHandler) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var h habit.Habit
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	id, err := a.store.Create(&h)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	a.changed()
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (a *APIHandler) handleListHabits(w http.ResponseWriter, r *http.Request) {
	filter := habit.Type(r.URL.Query().Get("type"))
	habits, err := a.store.List(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if habits == nil {
		habits = []habit.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (a *APIHandler) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	h, err := a.store.Get(id)
	if errors.Is(err, habit.ErrNotFound) {
		writeError(w, http.StatusNotFound, "habit %d not found", id)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (a *APIHandler) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	var h habit.Habit
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	h.ID = id
	if err := a.store.Update(h); err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			writeError(w, http.StatusNotFound, "habit %d not found", id)
			return
		}
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	a.changed()
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *APIHandler) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	if err := a.store.Delete(id); err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			writeError(w, http.StatusNotFound, "habit %d not found", id)
			return
		}
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	a.changed()
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *APIHandler) handleHabitsForDay(w http.ResponseWriter, r *http.Request) {
	day := r.PathValue("day")
	if !habit.ValidDay(day) {
		writeError(w, http.StatusBadRequest, "invalid day %q", day)
		return
	}
	period := r.URL.Query().Get("period")
	if period != "" && !habit.ValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "invalid period %q", period)
		return
	}
	habits, err := a.store.ForDay(day, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if habits == nil {
		habits = []habit.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (a *APIHandler) handleRemark(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	h, err := a.store.Get(id)
	if errors.Is(err, habit.ErrNotFound) {
		writeError(w, http.StatusNotFound, "habit %d not found", id)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	merged := profile.MergeRemark(h.Remarks, req.Text)
	if err := a.store.SetRemarks(id, merged); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	a.changed()
	writeJSON(w, http.StatusOK, map[string]string{"remarks": merged})
}

func (a *APIHandler) handleCompletions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	comps, err := a.store.Completions(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if comps == nil {
		comps = []habit.Completion{}
	}
	writeJSON(w, http.StatusOK, comps)
}

func (a *APIHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}
	stats, err := a.store.Stats(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *APIHandler) handleAddCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HabitID int64  `json:"habit_id"`
		Notes   string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	id, err := a.store.AddCompletion(req.HabitID, time.Now(), req.Notes)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			writeError(w, http.StatusNotFound, "habit %d not found", req.HabitID)
			return
		}
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	stats, err := a.store.Stats(req.HabitID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	a.changed()
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "stats": stats})
}

func (a *APIHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	res, err := a.class.Analyze(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	resp := map[string]any{
		"confidence": res.Confidence,
		"analysis":   res.Rationale,
	}
	if res.SuggestedMode != nil {
		resp["suggested_mode"] = string(*res.SuggestedMode)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *APIHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	var answers map[string]any
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profile": profile.Generate(answers)})
}

type scheduleRequest struct {
	Summary   string     `json:"summary"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Attendees []string   `json:"attendees"`
	Until     *time.Time `json:"until"`
	Days      []string   `json:"days"`
}

func (a *APIHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	if req.Summary == "" {
		writeError(w, http.StatusBadRequest, "summary is required")
		return
	}
	for _, d := range req.Days {
		if !habit.ValidDay(d) {
			writeError(w, http.StatusBadRequest, "invalid day %q", d)
			return
		}
	}
	ev := a.sched.ScheduleHabit(req.Summary, req.Start, req.End, req.Attendees, req.Until, req.Days)
	writeJSON(w, http.StatusCreated, ev)
}

func (a *APIHandler) handleTask(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	if req.Summary == "" {
		writeError(w, http.StatusBadRequest, "summary is required")
		return
	}
	writeJSON(w, http.StatusCreated, a.sched.CreateTask(req.Summary, req.Start, req.End))
}

func (a *APIHandler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	ev, err := a.sched.Reschedule(req.Summary, req.Start, req.End)
	if errors.Is(err, calendar.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "no event named %q", req.Summary)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (a *APIHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if q := r.URL.Query().Get("day"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day %q, want YYYY-MM-DD", q)
			return
		}
		day = parsed
	}
	events := a.sched.EventsForDay(day)
	if events == nil {
		events = []calendar.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (a *APIHandler) handleClearEvents(w http.ResponseWriter, r *http.Request) {
	a.sched.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (a *APIHandler) handleGetMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":          string(a.ctrl.Current()),
		"audio_enabled": a.ctrl.AudioEnabled(),
		"transitioning": a.ctrl.Transitioning(),
	})
}

func (a *APIHandler) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	a.ctrl.Toggle()
	writeJSON(w, http.StatusOK, map[string]string{"mode": string(a.ctrl.Current())})
}

func (a *APIHandler) handleAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: %v", err)
		return
	}
	a.ctrl.SetAudioEnabled(req.Enabled)
	writeJSON(w, http.StatusOK, map[string]bool{"audio_enabled": a.ctrl.AudioEnabled()})
}
