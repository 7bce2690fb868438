package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/ledger"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/models"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/session"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

// oracleTimeout bounds the whole chat/reflection turn, covering both the
// reply and the mood call.
const oracleTimeout = 60 * time.Second

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type Handlers struct {
	session *session.Session
	oracle  llm.Generator
	store   store.Store
}

func NewHandlers(sess *session.Session, oracle llm.Generator, st store.Store) *Handlers {
	return &Handlers{
		session: sess,
		oracle:  oracle,
		store:   st,
	}
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if h.session.Degraded() {
		status = "degraded"
	}
	resp := models.HealthResponse{
		Status:  status,
		Oracle:  h.checkOracle(r.Context()),
		Store:   h.checkStore(r.Context()),
		Version: "1.0.0",
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) checkOracle(ctx context.Context) string {
	hc, ok := h.oracle.(llm.HealthChecker)
	if !ok {
		return "configured"
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := hc.HealthCheck(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "connected"
}

func (h *Handlers) checkStore(ctx context.Context) string {
	if h.store == nil {
		return "memory-only"
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if p, ok := h.store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return "error: " + err.Error()
		}
		return "connected"
	}
	if _, _, err := h.store.Get(ctx, "health_probe"); err != nil {
		return "error: " + err.Error()
	}
	return "connected"
}

// Chat handles POST /api/v1/chat
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), oracleTimeout)
	defer cancel()

	turn, err := h.session.Send(ctx, req.Text)
	if errors.Is(err, session.ErrEmptyInput) {
		writeError(w, http.StatusBadRequest, "text is required", "EMPTY_TEXT")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process message", "INTERNAL")
		return
	}

	writeJSON(w, http.StatusOK, turnToResponse(turn))
}

// History handles GET /api/v1/history
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	turns := h.session.History()
	resp := models.HistoryResponse{Turns: make([]models.TurnResponse, len(turns))}
	for i, t := range turns {
		resp.Turns[i] = turnToResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearHistory handles DELETE /api/v1/history
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.session.ClearHistory(r.Context())
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "cleared"})
}

// DeleteTurn handles DELETE /api/v1/history/{index}
func (h *Handlers) DeleteTurn(w http.ResponseWriter, r *http.Request) {
	h.deleteAt(w, r, h.session.DeleteTurn)
}

// Reflect handles POST /api/v1/reflections
func (h *Handlers) Reflect(w http.ResponseWriter, r *http.Request) {
	var req models.ReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), oracleTimeout)
	defer cancel()

	refl, support, err := h.session.Reflect(ctx, req.Text)
	if errors.Is(err, session.ErrEmptyInput) {
		writeError(w, http.StatusBadRequest, "text is required", "EMPTY_TEXT")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save reflection", "INTERNAL")
		return
	}

	resp := reflectionToResponse(refl)
	resp.Support = support
	writeJSON(w, http.StatusOK, resp)
}

// Reflections handles GET /api/v1/reflections
func (h *Handlers) Reflections(w http.ResponseWriter, r *http.Request) {
	entries := h.session.Reflections()
	resp := models.ReflectionsResponse{Reflections: make([]models.ReflectionResponse, len(entries))}
	for i, e := range entries {
		resp.Reflections[i] = reflectionToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearReflections handles DELETE /api/v1/reflections
func (h *Handlers) ClearReflections(w http.ResponseWriter, r *http.Request) {
	h.session.ClearReflections(r.Context())
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "cleared"})
}

// DeleteReflection handles DELETE /api/v1/reflections/{index}
func (h *Handlers) DeleteReflection(w http.ResponseWriter, r *http.Request) {
	h.deleteAt(w, r, h.session.DeleteReflection)
}

// ReflectionPrompt handles GET /api/v1/reflections/prompt
func (h *Handlers) ReflectionPrompt(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.PromptResponse{Prompt: h.session.ReflectionPrompt()})
}

// Insights handles GET /api/v1/insights
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.InsightsResponse{Insights: h.session.Insights()})
}

// MoodCounts handles GET /api/v1/moods
func (h *Handlers) MoodCounts(w http.ResponseWriter, r *http.Request) {
	counts := h.session.MoodCounts()
	resp := models.MoodCountsResponse{Counts: make(map[string]int, len(counts))}
	for m, n := range counts {
		resp.Counts[string(m)] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetNickname handles GET /api/v1/nickname
func (h *Handlers) GetNickname(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NicknameResponse{Nickname: h.session.Nickname()})
}

// SetNickname handles PUT /api/v1/nickname
func (h *Handlers) SetNickname(w http.ResponseWriter, r *http.Request) {
	var req models.NicknameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}
	writeJSON(w, http.StatusOK, models.NicknameResponse{Nickname: h.session.SetNickname(req.Nickname)})
}

func (h *Handlers) deleteAt(w http.ResponseWriter, r *http.Request, del func(context.Context, int) error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer", "INVALID_INDEX")
		return
	}

	if err := del(r.Context(), index); err != nil {
		if errors.Is(err, ledger.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "no entry at that position", "INVALID_INDEX")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete entry", "INTERNAL")
		return
	}

	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "deleted"})
}

func turnToResponse(t ledger.Turn) models.TurnResponse {
	return models.TurnResponse{
		UserText:  t.UserText,
		ReplyText: t.ReplyText,
		Mood:      string(t.Mood),
		Timestamp: t.Timestamp,
	}
}

func reflectionToResponse(r ledger.Reflection) models.ReflectionResponse {
	return models.ReflectionResponse{
		Text:      r.Text,
		Mood:      string(r.Mood),
		Timestamp: r.Timestamp,
	}
}
