package handler

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/DeadlyParkour777/solution-share/internal/auth"
	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/service"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/DeadlyParkour777/solution-share/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openApiSpec embed.FS

type userCtxKey string

const userIDKey = userCtxKey("userID")

type Handler struct {
	service   service.Service
	jwtSecret []byte
	validator *validator.Validate
}

func NewHandler(service service.Service, jwtSecret string) *Handler {
	return &Handler{
		service:   service,
		jwtSecret: []byte(jwtSecret),
		validator: validator.New(),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openApiSpec.ReadFile("openapi.yaml")
		if err != nil {
			http.Error(w, "Spec not found", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		w.Write(data)
	})

	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.yaml"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, "Solution share is running")
	})

	r.Get("/daily", h.handleDaily)

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Post("/solutions", h.handleStartSolution)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Post("/language", h.handleSelectLanguage)
			r.Post("/code", h.handleSubmitCode)
			r.Delete("/", h.handleCancelSession)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Post("/", h.handleAddBookmark)
			r.Get("/{userID}", h.handleListBookmarks)
			r.Delete("/{userID}", h.handleRemoveBookmarks)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)
		r.Use(h.AdminOnlyMiddleware)
		r.Post("/admin/users", h.handleRegisterUser)
		r.Post("/admin/admins", h.handleRegisterAdmin)
	})

	return r
}

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) != 2 {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		userID, err := auth.ValidateToken(h.jwtSecret, parts[1])
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(userIDKey).(string)
		if !ok {
			utils.WriteError(w, http.StatusInternalServerError, "Could not retrieve user id")
			return
		}

		isAdmin, err := h.service.IsAdmin(userID)
		if err != nil {
			log.Printf("Failed to check admin %s: %v", userID, err)
			utils.WriteError(w, http.StatusInternalServerError, "Could not check admin status")
			return
		}
		if !isAdmin {
			utils.WriteError(w, http.StatusForbidden, "You are not an admin")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// actingUser resolves the user a request acts for. A service token may act
// for the user named in the request; a user token only for itself.
func actingUser(w http.ResponseWriter, r *http.Request, claimed string) (string, bool) {
	tokenUser, _ := r.Context().Value(userIDKey).(string)
	if tokenUser == auth.ServicePrincipal {
		if claimed == "" {
			utils.WriteError(w, http.StatusBadRequest, "user_id is required")
			return "", false
		}
		return claimed, true
	}
	if claimed != "" && claimed != tokenUser {
		utils.WriteError(w, http.StatusForbidden, "You cannot act for another user")
		return "", false
	}
	return tokenUser, true
}

func (h *Handler) parseAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.ParseJSON(r, v); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validator.Struct(v); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps pipeline errors to responses. fetchPrefix names the
// failed operation in the user-facing message.
func writeServiceError(w http.ResponseWriter, err error, fetchPrefix string) {
	switch {
	case types.IsValidation(err):
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case types.IsFetch(err):
		utils.WriteError(w, http.StatusBadGateway, fmt.Sprintf("%s: `%v`", fetchPrefix, err))
	case errors.Is(err, types.ErrAutoModeUnavailable):
		utils.WriteError(w, http.StatusConflict, types.AutoModeGuidance)
	case errors.Is(err, types.ErrSessionOwner):
		utils.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, types.ErrSessionNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrInvalidTransition), errors.Is(err, types.ErrAlreadyRegistered):
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func displayOptions(hide *bool) render.Options {
	opts := render.DefaultOptions()
	if hide != nil {
		opts.HideSpoilers = *hide
	}
	return opts
}

func author(userID, username, mention string) types.Author {
	if mention == "" {
		mention = "<@" + userID + ">"
	}
	return types.Author{UserID: userID, Username: username, Mention: mention}
}

// writeSolution answers with JSON, or with an HTML preview when the client
// asks for ?format=html.
func writeSolution(w http.ResponseWriter, r *http.Request, status int, sol *types.RenderedSolution) {
	if r.URL.Query().Get("format") == "html" {
		page, err := render.PreviewHTML(*sol)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.WriteHTML(w, status, page)
		return
	}
	utils.WriteJSON(w, status, sol)
}
