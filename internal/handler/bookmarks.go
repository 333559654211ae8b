package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/DeadlyParkour777/solution-share/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req types.BookmarkRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	userID, ok := actingUser(w, r, req.UserID)
	if !ok {
		return
	}

	title, added, err := h.service.AddBookmark(userID, req.ProblemURL)
	if err != nil {
		writeServiceError(w, err, "Failed to add bookmark")
		return
	}

	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	utils.WriteJSON(w, status, map[string]any{"title": title, "problem_url": req.ProblemURL, "added": added})
}

func (h *Handler) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r, chi.URLParam(r, "userID"))
	if !ok {
		return
	}

	start := 0
	if v := r.URL.Query().Get("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.WriteError(w, http.StatusBadRequest, "start must be a non-negative integer")
			return
		}
		start = n
	}

	page, err := h.service.ListBookmarks(userID, start)
	if err != nil {
		log.Printf("Failed to list bookmarks for %s: %v", userID, err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleRemoveBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r, chi.URLParam(r, "userID"))
	if !ok {
		return
	}

	var req types.RemoveBookmarksRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	removed, err := h.service.RemoveBookmarks(userID, req.Indices)
	if err != nil {
		log.Printf("Failed to remove bookmarks for %s: %v", userID, err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string][]string{"removed": removed})
}
