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

// AssetsHandler 素材库
type AssetsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewAssetsHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *AssetsHandler {
	return &AssetsHandler{config: cfg, db: db, log: log}
}

// GET /api/assets?asset_type=&search=&page=&size=
func (h *AssetsHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, ok := parsePage(w, r, 20, 100)
	if !ok {
		return
	}

	q := r.URL.Query()
	assets, err := h.db.ListAssets(user.OrganizationID, database.AssetFilter{
		AssetType: strings.TrimSpace(q.Get("asset_type")),
		Search:    strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, utils.Paginate(assets, page))
}

// POST /api/assets
func (h *AssetsHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.AssetCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	asset, err := h.db.CreateAsset(*user, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, asset)
}

// PATCH /api/assets/{asset_id}
func (h *AssetsHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	assetID, ok := parseIDParam(w, r, "asset_id")
	if !ok {
		return
	}
	var req models.AssetUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	asset, err := h.db.UpdateAsset(user.OrganizationID, assetID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, asset)
}

// DELETE /api/assets/{asset_id}
func (h *AssetsHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	assetID, ok := parseIDParam(w, r, "asset_id")
	if !ok {
		return
	}

	if err := h.db.DeleteAsset(user.OrganizationID, assetID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}
