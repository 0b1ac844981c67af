package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// APIKeysHandler 第三方服务密钥设置。响应只包含脱敏后的值
type APIKeysHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewAPIKeysHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *APIKeysHandler {
	return &APIKeysHandler{config: cfg, db: db, log: log}
}

// GET /api/settings/api-keys
func (h *APIKeysHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	keys, err := h.db.ListAPIKeys(user.OrganizationID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	views := make([]models.APIKeyView, 0, len(keys))
	for i := range keys {
		views = append(views, keys[i].View())
	}
	utils.WriteSuccessResponse(w, views)
}

// POST /api/settings/api-keys
func (h *APIKeysHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.APIKeyCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key, err := h.db.CreateAPIKey(user.OrganizationID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("api key created", zap.Int("key_id", key.ID), zap.String("masked_value", key.MaskedValue))
	utils.WriteCreatedResponse(w, key.View())
}

// PATCH /api/settings/api-keys/{key_id}
func (h *APIKeysHandler) UpdateAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(w, r, "key_id")
	if !ok {
		return
	}
	var req models.APIKeyUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key, err := h.db.UpdateAPIKey(user.OrganizationID, keyID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, key.View())
}

// DELETE /api/settings/api-keys/{key_id}
func (h *APIKeysHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(w, r, "key_id")
	if !ok {
		return
	}
	if err := h.db.DeleteAPIKey(user.OrganizationID, keyID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}
