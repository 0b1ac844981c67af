package handlers

import (
	"net/http"
	"strings"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// UsersHandler 组织成员管理
type UsersHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewUsersHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *UsersHandler {
	return &UsersHandler{config: cfg, db: db, log: log}
}

// GET /api/users
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, ok := parsePage(w, r, 20, 100)
	if !ok {
		return
	}

	users, err := h.db.ListUsers(user.OrganizationID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	paged := utils.Paginate(users, page)
	out := make([]models.PublicUser, 0, len(paged))
	for i := range paged {
		out = append(out, paged[i].Public())
	}
	utils.WriteSuccessResponse(w, out)
}

// POST /api/users
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.UserCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		utils.WriteValidationErrorResponse(w, "username and password are required")
		return
	}

	created, err := h.db.CreateUser(admin.OrganizationID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("user created", zap.Int("user_id", created.ID), zap.Int("by", admin.ID))
	utils.WriteCreatedResponse(w, created.Public())
}

// PATCH /api/users/me
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.UserUpdateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.db.UpdateMe(user.ID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, updated.Public())
}

// DELETE /api/users/{user_id}
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := currentUser(w, r)
	if !ok {
		return
	}
	userID, ok := parseIDParam(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.db.DeleteUser(admin.OrganizationID, userID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("user deleted", zap.Int("user_id", userID), zap.Int("by", admin.ID))
	utils.WriteNoContent(w)
}
