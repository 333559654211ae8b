package handler

import (
	"net/http"
	"strconv"

	"github.com/DeadlyParkour777/solution-share/internal/resolver"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/DeadlyParkour777/solution-share/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func sessionResponse(s *resolver.Session, languages []string) types.SessionResponse {
	return types.SessionResponse{
		SessionID:   s.ID,
		State:       string(s.State),
		Language:    s.Language,
		Languages:   languages,
		Placeholder: s.Placeholder,
	}
}

func (h *Handler) handleStartSolution(w http.ResponseWriter, r *http.Request) {
	var req types.SolutionRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}

	res, err := h.service.Start(r.Context(), req.Mode, author(userID, req.Username, req.Mention), displayOptions(req.HideSpoilers))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch submission")
		return
	}

	if res.Solution != nil {
		writeSolution(w, r, http.StatusOK, res.Solution)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sessionResponse(res.Session, res.Languages))
}

func (h *Handler) handleSelectLanguage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req types.LanguageRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}

	s, err := h.service.SelectLanguage(r.Context(), sessionID, userID, req.Language)
	if err != nil {
		writeServiceError(w, err, "Failed to select language")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse(s, nil))
}

func (h *Handler) handleSubmitCode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req types.CodeRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}

	sol, err := h.service.SubmitCode(r.Context(), sessionID, req.SubmissionURL, req.Code,
		author(userID, req.Username, req.Mention), displayOptions(req.HideSpoilers))
	if err != nil {
		writeServiceError(w, err, "Failed to render solution")
		return
	}
	writeSolution(w, r, http.StatusOK, sol)
}

func (h *Handler) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	userID, ok := actingUser(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	if err := h.service.CancelSession(r.Context(), sessionID, userID); err != nil {
		writeServiceError(w, err, "Failed to cancel session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	var hide *bool
	if v := r.URL.Query().Get("hide_spoilers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "hide_spoilers must be a boolean")
			return
		}
		hide = &b
	}

	post, err := h.service.Daily(r.Context(), r.URL.Query().Get("user_id"), displayOptions(hide))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch daily question")
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}
