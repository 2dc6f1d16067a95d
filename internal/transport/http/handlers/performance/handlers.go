package performancehandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/performance"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Now     func() time.Time
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleListEmployees)
	r.Get("/employees/{employeeID}/feedback", h.handleListFeedback)
	r.Get("/goals", h.handleListGoals)
	r.Post("/goals", h.handleCreateGoal)
	r.Put("/goals/{goalID}", h.handleUpdateGoal)
	r.Delete("/goals/{goalID}", h.handleDeleteGoal)
	r.Post("/feedback", h.handleCreateFeedback)
	r.Get("/insights", h.handleInsights)
	r.Get("/insights/report.pdf", h.handleInsightsReport)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.ListEmployees(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	sortKey, err := performance.ParseGoalSort(query.Get("sort"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_sort", fmt.Sprintf("sort must be one of %s", sortKeyList()), reqID)
		return
	}

	status := strings.TrimSpace(query.Get("status"))
	if strings.EqualFold(status, performance.StatusFilterAll) {
		status = performance.StatusFilterAll
	} else if status != "" {
		v := shared.NewValidator()
		status = v.Enum("status", status, performance.GoalStatuses, "unknown goal status")
		if v.Reject(w, reqID) {
			return
		}
	}

	goals := h.Service.ListGoals(r.Context(), performance.GoalFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Status:     status,
		Sort:       sortKey,
	})
	api.Success(w, goals, reqID)
}

type goalPayload struct {
	EmployeeID  string `json:"employeeId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// validate checks the fields shared by create and update and returns the
// parsed due date and canonical status.
func (p goalPayload) validate(v *shared.Validator) (time.Time, string) {
	v.Required("title", p.Title, "title is required")
	v.Required("description", p.Description, "description is required")
	dueDate, _ := v.Date("dueDate", p.DueDate)
	status := v.Enum("status", p.Status, performance.GoalStatuses, "status must be Pending, In Progress or Completed")
	return dueDate, status
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload goalPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	if payload.Status == "" {
		payload.Status = performance.GoalStatusPending
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	dueDate, status := payload.validate(v)
	if v.Reject(w, reqID) {
		return
	}

	goalID, ok := h.Service.AddGoal(r.Context(), performance.NewGoal{
		EmployeeID:  strings.TrimSpace(payload.EmployeeID),
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		DueDate:     dueDate,
		Status:      status,
	})
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", reqID)
		return
	}
	api.Created(w, map[string]string{"goalId": goalID}, reqID)
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	goalID := chi.URLParam(r, "goalID")
	var payload goalPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	dueDate, status := payload.validate(v)
	if v.Reject(w, reqID) {
		return
	}

	ok := h.Service.UpdateGoal(r.Context(), goalID, performance.GoalUpdate{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		DueDate:     dueDate,
		Status:      status,
	})
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "goal_update_failed", "failed to update goal", reqID)
		return
	}
	api.Success(w, map[string]string{"goalId": goalID}, reqID)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	goalID := chi.URLParam(r, "goalID")
	if !h.Service.DeleteGoal(r.Context(), goalID) {
		api.Fail(w, http.StatusInternalServerError, "goal_delete_failed", "failed to delete goal", reqID)
		return
	}
	api.Success(w, map[string]string{"goalId": goalID}, reqID)
}

func (h *Handler) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		FromEmployeeID string `json:"fromEmployeeId"`
		ToEmployeeID   string `json:"toEmployeeId"`
		Text           string `json:"feedbackText"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("fromEmployeeId", payload.FromEmployeeID, "author is required")
	v.Required("toEmployeeId", payload.ToEmployeeID, "recipient is required")
	v.Required("feedbackText", payload.Text, "feedback text is required")
	if v.Reject(w, reqID) {
		return
	}

	feedbackID, ok := h.Service.AddFeedback(r.Context(),
		strings.TrimSpace(payload.FromEmployeeID),
		strings.TrimSpace(payload.ToEmployeeID),
		strings.TrimSpace(payload.Text),
	)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "feedback_create_failed", "failed to create feedback", reqID)
		return
	}
	api.Created(w, map[string]string{"feedbackId": feedbackID}, reqID)
}

func (h *Handler) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	api.Success(w, h.Service.ListFeedback(r.Context(), employeeID), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Insights(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleInsightsReport(w http.ResponseWriter, r *http.Request) {
	generatedAt := h.Now()
	var buf bytes.Buffer
	if err := performance.RenderInsightsPDF(&buf, h.Service.Insights(r.Context()), generatedAt); err != nil {
		slog.Warn("insights report render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_render_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"insights-%s.pdf\"", generatedAt.UTC().Format("20060102")))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("insights report write failed", "err", err)
	}
}

func sortKeyList() string {
	keys := make([]string, 0, len(performance.GoalSortKeys))
	for _, key := range performance.GoalSortKeys {
		keys = append(keys, string(key))
	}
	return strings.Join(keys, ", ")
}
