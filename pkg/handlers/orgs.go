package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

type OrgsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewOrgsHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *OrgsHandler {
	return &OrgsHandler{config: cfg, db: db, log: log}
}

// GET /api/organizations
// 每个用户只属于一个组织，返回单元素列表
func (h *OrgsHandler) ListMyOrganizations(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	org, err := h.db.GetOrganization(user.OrganizationID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, []models.Organization{org})
}
