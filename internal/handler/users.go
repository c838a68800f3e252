package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Users retrieved", users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"omitempty,oneof='IT Admin' 'HR Manager' 'HR Assistant'"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleHRAssistant
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Email:        req.Email,
		Role:         role,
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "users_username_key":
				h.errorResponse(w, r, http.StatusBadRequest, "Username is already taken")
				return
			case "users_email_key":
				h.errorResponse(w, r, http.StatusBadRequest, "User with this email already exists")
				return
			}
		}
		h.internalServerError(w, r, err)
		return
	}

	// Credentials go out by mail so the new user can sign in without an
	// admin relaying the password. Delivery failure must not fail the
	// request.
	h.publishNotification(r, domain.NotificationMessage{
		Type: "account_created",
		To:   user.Email,
		Data: domain.AccountCreatedData{
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
			Password: req.Password,
		},
	})

	h.createdResponse(w, r, "User created successfully", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	// Lookup runs before any format rejection so a malformed identifier
	// and a missing user read the same to the caller.
	userIDParam := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid user ID format or user not found")
		return
	}

	user, err := h.repository.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "User not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if user.Role == domain.RoleITAdmin {
		h.errorResponse(w, r, http.StatusBadRequest, "IT Admin users cannot be deleted for security reasons")
		return
	}

	if err := h.repository.DeleteUser(user.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "User deleted successfully", user)
}
