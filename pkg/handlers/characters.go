package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// CharactersHandler 项目角色
type CharactersHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewCharactersHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *CharactersHandler {
	return &CharactersHandler{config: cfg, db: db, log: log}
}

func characterParams(w http.ResponseWriter, r *http.Request) (projectID, characterID int, ok bool) {
	if projectID, ok = parseIDParam(w, r, "project_id"); !ok {
		return
	}
	characterID, ok = parseIDParam(w, r, "character_id")
	return
}

// GET /api/projects/{project_id}/characters
func (h *CharactersHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}
	page, ok := parsePage(w, r, 100, 1000)
	if !ok {
		return
	}

	characters, err := h.db.ListCharacters(user.OrganizationID, projectID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, models.CharacterPage{
		Items: utils.Paginate(characters, page),
		Total: len(characters),
	})
}

// POST /api/projects/{project_id}/characters
func (h *CharactersHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}
	var req models.CharacterCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	character, err := h.db.CreateCharacter(user.OrganizationID, projectID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, character)
}

// GET /api/projects/{project_id}/characters/{character_id}
func (h *CharactersHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, characterID, ok := characterParams(w, r)
	if !ok {
		return
	}

	character, err := h.db.GetCharacter(user.OrganizationID, projectID, characterID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, character)
}

// PATCH /api/projects/{project_id}/characters/{character_id}
func (h *CharactersHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, characterID, ok := characterParams(w, r)
	if !ok {
		return
	}
	var req models.CharacterUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	character, err := h.db.UpdateCharacter(user.OrganizationID, projectID, characterID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, character)
}

// DELETE /api/projects/{project_id}/characters/{character_id}
func (h *CharactersHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, characterID, ok := characterParams(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteCharacter(user.OrganizationID, projectID, characterID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}

// POST /api/projects/{project_id}/characters/{character_id}/import-portraits
// 每张立绘生成一个素材记录
func (h *CharactersHandler) ImportPortraits(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, characterID, ok := characterParams(w, r)
	if !ok {
		return
	}

	imported, err := h.db.ImportPortraits(*user, projectID, characterID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("portraits imported", zap.Int("character_id", characterID), zap.Int("assets", len(imported)))
	utils.WriteCreatedResponse(w, imported)
}
