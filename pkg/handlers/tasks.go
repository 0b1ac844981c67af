package handlers

import (
	"net/http"
	"strings"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// TasksHandler 后台任务。任务创建后始终停留在 queued
type TasksHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	sim    *simulate.Simulator
	log    *zap.Logger
}

func NewTasksHandler(cfg *config.Config, db database.DatabaseInterface, sim *simulate.Simulator, log *zap.Logger) *TasksHandler {
	return &TasksHandler{config: cfg, db: db, sim: sim, log: log}
}

// GET /api/tasks?status=&limit=
func (h *TasksHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, err := utils.GetIntQueryParam(r, "limit", 50)
	if err != nil || limit < 1 {
		utils.WriteValidationErrorResponse(w, "limit must be an integer >= 1")
		return
	}
	if limit > 200 {
		limit = 200
	}

	tasks, err := h.db.ListTasks(user.OrganizationID, strings.TrimSpace(r.URL.Query().Get("status")))
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, utils.Paginate(tasks, utils.Page{Page: 1, Size: limit}))
}

// GET /api/tasks/{task_id}
func (h *TasksHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(w, r, "task_id")
	if !ok {
		return
	}

	task, err := h.db.GetTask(user.OrganizationID, taskID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, task)
}

// POST /api/tasks
func (h *TasksHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.TaskCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.db.CreateTask(user.OrganizationID, req.TaskType, req.Payload)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, task)
}

// POST /api/tasks/{task_id}/retry
func (h *TasksHandler) RetryTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(w, r, "task_id")
	if !ok {
		return
	}

	task, err := h.db.RetryTask(user.OrganizationID, taskID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("task requeued", zap.Int("task_id", task.ID))
	utils.WriteSuccessResponse(w, task)
}

// POST /api/tasks/text-to-image
func (h *TasksHandler) TextToImage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.TextToImageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.WriteValidationErrorResponse(w, "prompt is required")
		return
	}

	task, err := h.db.CreateTask(user.OrganizationID, models.TaskTextToImage, req.Payload())
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, task)
}

// POST /api/tasks/generate-character-images
// 同步覆盖角色立绘为三个角度的模拟图片
func (h *TasksHandler) GenerateCharacterImages(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CharacterImageTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.db.GenerateCharacterImages(user.OrganizationID, req, h.sim.CharacterPortraits(req.CharacterID))
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteCreatedResponse(w, task)
}
