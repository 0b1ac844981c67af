package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// ChaptersHandler 章节与分镜
type ChaptersHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	sim    *simulate.Simulator
	log    *zap.Logger
}

func NewChaptersHandler(cfg *config.Config, db database.DatabaseInterface, sim *simulate.Simulator, log *zap.Logger) *ChaptersHandler {
	return &ChaptersHandler{config: cfg, db: db, sim: sim, log: log}
}

// chapterParams 读取 project_id 与 chapter_id
func chapterParams(w http.ResponseWriter, r *http.Request) (projectID, chapterID int, ok bool) {
	if projectID, ok = parseIDParam(w, r, "project_id"); !ok {
		return
	}
	chapterID, ok = parseIDParam(w, r, "chapter_id")
	return
}

// GET /api/projects/{project_id}/chapters
func (h *ChaptersHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}

	chapters, err := h.db.ListChapters(user.OrganizationID, projectID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, chapters)
}

// POST /api/projects/{project_id}/chapters
func (h *ChaptersHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}
	var req models.ChapterCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chapter, err := h.db.CreateChapter(user.OrganizationID, projectID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, chapter)
}

// PATCH /api/projects/{project_id}/chapters/{chapter_id}
func (h *ChaptersHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, chapterID, ok := chapterParams(w, r)
	if !ok {
		return
	}
	var req models.ChapterUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chapter, err := h.db.UpdateChapter(user.OrganizationID, projectID, chapterID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, chapter)
}

// DELETE /api/projects/{project_id}/chapters/{chapter_id}
func (h *ChaptersHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, chapterID, ok := chapterParams(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteChapter(user.OrganizationID, projectID, chapterID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}

// POST /api/projects/{project_id}/chapters/{chapter_id}/split
// 追加三条模拟分镜，返回新建的分镜
func (h *ChaptersHandler) SplitChapter(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, chapterID, ok := chapterParams(w, r)
	if !ok {
		return
	}

	storyboards, err := h.db.SplitChapter(user.OrganizationID, projectID, chapterID, h.sim.SplitDrafts())
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Debug("chapter split", zap.Int("chapter_id", chapterID), zap.Int("storyboards", len(storyboards)))
	utils.WriteSuccessResponse(w, storyboards)
}

// GET /api/projects/{project_id}/chapters/{chapter_id}/storyboards
func (h *ChaptersHandler) ListStoryboards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, chapterID, ok := chapterParams(w, r)
	if !ok {
		return
	}

	storyboards, err := h.db.ListStoryboards(user.OrganizationID, projectID, chapterID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, storyboards)
}

// PATCH /api/projects/{project_id}/chapters/{chapter_id}/storyboards/{storyboard_id}
func (h *ChaptersHandler) UpdateStoryboard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, chapterID, ok := chapterParams(w, r)
	if !ok {
		return
	}
	storyboardID, ok := parseIDParam(w, r, "storyboard_id")
	if !ok {
		return
	}
	var req models.StoryboardUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	storyboard, err := h.db.UpdateStoryboard(user.OrganizationID, projectID, chapterID, storyboardID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, storyboard)
}
