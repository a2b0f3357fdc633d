package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/huevitoia/chef/internal/config"
	"github.com/huevitoia/chef/internal/conversation"
	apperrors "github.com/huevitoia/chef/internal/errors"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/middleware"
	"github.com/huevitoia/chef/internal/sentry"
	"github.com/huevitoia/chef/internal/services/generation"
	"github.com/huevitoia/chef/internal/services/recipes"
	"github.com/huevitoia/chef/internal/validation"
	"github.com/huevitoia/chef/internal/worker"
)

// RecipeGenerator produces a complete recipe from collected answers.
type RecipeGenerator interface {
	Generate(ctx context.Context, req generation.RecipeRequest) (*generation.RecipeResult, error)
}

// TaskEnqueuer submits background tasks; satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Server struct {
	cfg       *config.Config
	sessions  *conversation.Store
	generator RecipeGenerator
	recipes   recipes.Store
	enqueuer  TaskEnqueuer
	policy    validation.Policy
}

func NewServer(cfg *config.Config, sessions *conversation.Store, generator RecipeGenerator, recipeStore recipes.Store, enqueuer TaskEnqueuer) *Server {
	return &Server{
		cfg:       cfg,
		sessions:  sessions,
		generator: generator,
		recipes:   recipeStore,
		enqueuer:  enqueuer,
		policy:    validation.Policy{MaxPrepTimeMinutes: cfg.Conversation.MaxPrepTimeMinutes},
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Recovery string `json:"recovery,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, errorResponse{
			Error:    appErr.Message,
			Code:     appErr.Code(),
			Recovery: appErr.RecoverySuggestion(),
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

type sessionResponse struct {
	ID         string               `json:"id"`
	Stage      conversation.Stage   `json:"stage"`
	Transcript []conversation.Entry `json:"transcript"`
}

func toSessionResponse(s *conversation.Session) sessionResponse {
	return sessionResponse{
		ID:         s.ID,
		Stage:      s.Stage,
		Transcript: s.Transcript,
	}
}

// HandleCreateSession starts a new conversation.
func (s *Server) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := conversation.NewSession()
	if err := s.sessions.Put(r.Context(), session); err != nil {
		slog.Error("Failed to create session", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleGetSession returns the current transcript and stage.
func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

type messageRequest struct {
	Text string `json:"text"`
}

// HandleMessage feeds one user message through the conversation. When
// the final answer lands, the recipe is generated synchronously within
// this request and, for signed-in users, a save task is enqueued.
func (s *Server) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := s.sessions.Get(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body", "INVALID_BODY", "Send a JSON object with a text field."))
		return
	}

	genReq, err := session.Advance(s.policy, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrGenerationPending):
			writeJSON(w, http.StatusConflict, errorResponse{
				Error: "a recipe is already being generated for this session",
				Code:  "GENERATION_PENDING",
			})
		case errors.Is(err, conversation.ErrConversationOver):
			writeJSON(w, http.StatusConflict, errorResponse{
				Error:    "this conversation is finished",
				Code:     "CONVERSATION_OVER",
				Recovery: "Reset the session to start a new recipe.",
			})
		default:
			writeError(w, err)
		}
		return
	}

	if genReq == nil {
		// An intake step, accepted or re-prompted. Persist and return.
		if err := s.sessions.Put(ctx, session); err != nil {
			slog.Error("Failed to save session", "session_id", session.ID, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(session))
		return
	}

	// Record the Generating stage before calling the provider so a
	// concurrent message on the same session sees it and gets a 409.
	if err := s.sessions.Put(ctx, session); err != nil {
		slog.Error("Failed to save session", "session_id", session.ID, "error", err)
		writeError(w, err)
		return
	}

	result, genErr := s.generator.Generate(ctx, *genReq)
	if genErr != nil {
		slog.Error("Recipe generation failed", "session_id", session.ID, "error", genErr)
		sentry.CaptureException(genErr)
		session.FailGeneration("no se pudo generar la receta")
	} else {
		session.CompleteGeneration(result)
		metrics.ConversationsCompletedTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("cuisine", genReq.Cuisine)))
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		slog.Error("Failed to save session", "session_id", session.ID, "error", err)
		writeError(w, err)
		return
	}

	if genErr != nil {
		writeJSON(w, http.StatusOK, toSessionResponse(session))
		return
	}

	if userID, ok := middleware.GetUserID(ctx); ok {
		s.enqueueSave(userID, result)
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// enqueueSave hands the recipe to the worker. Failures are logged and
// dropped; the user already has the recipe on screen.
func (s *Server) enqueueSave(userID string, result *generation.RecipeResult) {
	task, err := worker.NewSaveRecipeTask(worker.SaveRecipePayload{
		OwnerID: userID,
		Recipe:  *result,
	})
	if err != nil {
		slog.Error("Failed to create save task", "user_id", userID, "error", err)
		return
	}
	if _, err := s.enqueuer.Enqueue(task); err != nil {
		slog.Error("Failed to enqueue save task", "user_id", userID, "error", err)
		sentry.CaptureException(err)
	}
}

// HandleResetSession returns a finished conversation to the start.
func (s *Server) HandleResetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := s.sessions.Get(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := session.Reset(); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: err.Error(),
			Code:  "RESET_REFUSED",
		})
		return
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandleListRecipes returns the signed-in user's saved recipes.
func (s *Server) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, apperrors.NewUnauthorizedError("authentication required", "AUTH_REQUIRED"))
		return
	}

	saved, err := s.recipes.ListByOwner(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list recipes", "user_id", userID, "error", err)
		writeError(w, err)
		return
	}

	if saved == nil {
		saved = []recipes.SavedRecipe{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": saved})
}
