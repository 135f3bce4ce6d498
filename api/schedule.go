package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/crewplan/crewplan/internal/schedule"
	"github.com/crewplan/crewplan/pkg/models"
	"github.com/crewplan/crewplan/pkg/repository"
	"github.com/gorilla/mux"
)

// Static messages forming the wire contract of the schedule endpoints.
const (
	msgFieldsRequired  = "All fields are required!"
	msgInvalidSchedule = "Invalid schedule data format"
	msgMonthRequired   = "Month parameter is required!"
	msgUnauthorized    = "Unauthorized access"
	msgServerError     = "Server error"
	msgSubmitted       = "Schedule submitted successfully!"
	msgUpdated         = "Schedule updated successfully!"
)

type ScheduleHandler struct {
	userRepo     repository.UserRepo
	scheduleRepo repository.ScheduleRepo
	editRepo     repository.EditRepo
}

func NewScheduleHandler(ur repository.UserRepo, sr repository.ScheduleRepo, er repository.EditRepo) *ScheduleHandler {
	return &ScheduleHandler{userRepo: ur, scheduleRepo: sr, editRepo: er}
}

// UserRole reports a user's role, defaulting to employee when the user row
// is absent.
func (h *ScheduleHandler) UserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	role, err := h.userRepo.GetRole(r.Context(), userID)
	if err != nil {
		logger.Error("get role", slog.Int64("user_id", userID), slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"role": role}, http.StatusOK)
}

type submitRequest struct {
	UserID       int64           `json:"user_id"`
	Month        string          `json:"month"`
	ScheduleData json.RawMessage `json:"schedule_data"`
}

// Submit inserts a new schedule row. Multiple submissions per user/month are
// allowed; history accumulates and reads take the newest row. The raw
// payload is stored verbatim; normalization only gates acceptance here.
func (h *ScheduleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, msgFieldsRequired, http.StatusBadRequest)
		return
	}

	if req.UserID <= 0 || req.Month == "" || emptyPayload(req.ScheduleData) {
		writeMessage(w, msgFieldsRequired, http.StatusBadRequest)
		return
	}

	res := schedule.Normalize(req.ScheduleData)
	if !res.Valid {
		writeMessage(w, msgInvalidSchedule, http.StatusBadRequest)
		return
	}

	// Acceptance stays lenient; surface shape gaps in the log only.
	if msgs := schedule.StrictViolations(r.Context(), req.ScheduleData); len(msgs) > 0 {
		logger.Warn("schedule payload deviates from strict shape",
			slog.Int64("user_id", req.UserID),
			slog.String("month", req.Month),
			slog.Any("violations", msgs),
		)
	}

	s := &models.Schedule{
		UserID:       req.UserID,
		Month:        req.Month,
		ScheduleData: rawPayloadText(req.ScheduleData),
		Submitted:    true,
	}
	if _, err := h.scheduleRepo.CreateSchedule(r.Context(), s); err != nil {
		logger.Error("create schedule", slog.Int64("user_id", req.UserID), slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	writeMessage(w, msgSubmitted, http.StatusCreated)
}

// FetchForUser returns the most recent schedule for a user/month as a
// one-element list, with the payload replaced by its normalized canonical
// form. When no row exists the list holds a synthetic default schedule that
// is not persisted.
func (h *ScheduleHandler) FetchForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		writeMessage(w, msgMonthRequired, http.StatusBadRequest)
		return
	}

	s, err := h.scheduleRepo.LatestForUserMonth(r.Context(), userID, month)
	if err != nil {
		logger.Error("fetch schedule", slog.Int64("user_id", userID), slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	if s == nil {
		writeJSON(w, []map[string]string{
			{"schedule_data": schedule.Encode(schedule.DefaultData())},
		}, http.StatusOK)
		return
	}

	s.ScheduleData = schedule.Encode(schedule.Normalize([]byte(s.ScheduleData)).Data)
	writeJSON(w, []models.Schedule{*s}, http.StatusOK)
}

// AllEmployees lists every historical schedule row of employee-role users,
// newest first. Boss only. Deduplicating to the current row per user is left
// to the caller.
func (h *ScheduleHandler) AllEmployees(w http.ResponseWriter, r *http.Request) {
	if !h.isBoss(w, r, r.URL.Query().Get("boss_id")) {
		return
	}

	rows, err := h.scheduleRepo.ListEmployeeSchedules(r.Context())
	if err != nil {
		logger.Error("list employee schedules", slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	for i := range rows {
		rows[i].ScheduleData = schedule.Encode(schedule.Normalize([]byte(rows[i].ScheduleData)).Data)
	}
	if rows == nil {
		rows = []models.EmployeeSchedule{}
	}

	writeJSON(w, rows, http.StatusOK)
}

type editRequest struct {
	ScheduleData json.RawMessage `json:"schedule_data"`
	BossID       json.Number     `json:"boss_id"`
}

// EditSchedule overwrites a schedule on behalf of a boss and appends one
// audit row, atomically.
func (h *ScheduleHandler) EditSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["schedule_id"], 10, 64)
	if err != nil {
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, msgUnauthorized, http.StatusForbidden)
		return
	}

	if !h.isBoss(w, r, req.BossID.String()) {
		return
	}
	bossID, _ := req.BossID.Int64()

	if err := h.editRepo.EditSchedule(r.Context(), scheduleID, bossID, rawPayloadText(req.ScheduleData)); err != nil {
		logger.Error("edit schedule", slog.Int64("schedule_id", scheduleID), slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	writeMessage(w, msgUpdated, http.StatusOK)
}

// isBoss resolves the boss_id and writes a 403 (or 500 on store error) when
// the caller is not a boss. An unparsable id is treated as an unknown user,
// not a validation error.
func (h *ScheduleHandler) isBoss(w http.ResponseWriter, r *http.Request, rawID string) bool {
	bossID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || bossID <= 0 {
		writeMessage(w, msgUnauthorized, http.StatusForbidden)
		return false
	}

	role, err := h.userRepo.GetRole(r.Context(), bossID)
	if err != nil {
		logger.Error("boss check", slog.Int64("boss_id", bossID), slog.Any("err", err))
		writeMessage(w, msgServerError, http.StatusInternalServerError)
		return false
	}
	if role != models.RoleBoss {
		writeMessage(w, msgUnauthorized, http.StatusForbidden)
		return false
	}
	return true
}

// emptyPayload reports whether a schedule_data field was absent or null.
func emptyPayload(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// rawPayloadText is the verbatim text persisted for a payload: a JSON string
// value is stored as its inner text, anything else as its JSON encoding.
func rawPayloadText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}
