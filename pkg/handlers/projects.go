package handlers

import (
	"net/http"
	"strings"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/middleware"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

const defaultCoverPath = "/assets/project_cover.png"

// ProjectsHandler 项目与场景
type ProjectsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewProjectsHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{config: cfg, db: db, log: log}
}

// GET /api/projects?search=&page=&size=
func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, ok := parsePage(w, r, 20, 100)
	if !ok {
		return
	}

	projects, err := h.db.ListProjects(user.OrganizationID, strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, utils.Paginate(projects, page))
}

// POST /api/projects
func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.ProjectCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.db.CreateProject(*user, req, middleware.BaseURL(r)+defaultCoverPath)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("project created", zap.Int("project_id", project.ID), zap.Int("organization_id", project.OrganizationID))
	utils.WriteCreatedResponse(w, project)
}

// GET /api/projects/{project_id}
func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}

	project, err := h.db.GetProject(user.OrganizationID, projectID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, project)
}

// PATCH /api/projects/{project_id}
func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}
	var req models.ProjectUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.db.UpdateProject(user.OrganizationID, projectID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, project)
}

// DELETE /api/projects/{project_id}
// 级联删除章节、分镜、角色与场景
func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}

	if err := h.db.DeleteProject(user.OrganizationID, projectID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("project deleted", zap.Int("project_id", projectID))
	utils.WriteNoContent(w)
}

// GET /api/projects/{project_id}/scenes
func (h *ProjectsHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(w, r, "project_id")
	if !ok {
		return
	}

	scenes, err := h.db.ListScenes(user.OrganizationID, projectID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, scenes)
}

// GenerateStoryboards 返回为项目创建指定类型排队任务的处理函数，
// 用于 storyboards:generate-images / :generate-keyframes / :generate-videos
func (h *ProjectsHandler) GenerateStoryboards(taskType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		projectID, ok := parseIDParam(w, r, "project_id")
		if !ok {
			return
		}

		task, err := h.db.CreateProjectTask(user.OrganizationID, projectID, taskType)
		if err != nil {
			writeStoreError(w, h.log, err)
			return
		}
		utils.WriteSuccessResponse(w, task)
	}
}
