package handler

import (
	"net/http"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/DeadlyParkour777/solution-share/pkg/utils"
)

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterUserRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.RegisterUser(req.DiscordUsername, req.LeetcodeUsername)
	if err != nil {
		writeServiceError(w, err, "Failed to register user")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, types.JSONResponse{
		Status:  http.StatusCreated,
		Message: "Registered " + user.DiscordUsername + " as " + user.LeetcodeUsername,
		Data:    user,
	})
}

func (h *Handler) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterAdminRequest
	if !h.parseAndValidate(w, r, &req) {
		return
	}

	if err := h.service.RegisterAdmin(req.DiscordID); err != nil {
		writeServiceError(w, err, "Failed to register admin")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, types.JSONResponse{
		Status:  http.StatusCreated,
		Message: "Registered " + req.DiscordID + " as new admin",
	})
}
