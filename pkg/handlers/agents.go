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

// AgentsHandler 创作智能体（固定返回模拟内容）
type AgentsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	sim    *simulate.Simulator
	log    *zap.Logger
}

func NewAgentsHandler(cfg *config.Config, db database.DatabaseInterface, sim *simulate.Simulator, log *zap.Logger) *AgentsHandler {
	return &AgentsHandler{config: cfg, db: db, sim: sim, log: log}
}

// POST /api/agents/workflow/run
func (h *AgentsHandler) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	var req models.WorkflowRunRequest
	if !decodeBody(w, r, &req) {
		return
	}
	utils.WriteSuccessResponse(w, h.sim.RunWorkflow(req))
}

// POST /api/agents/generate-characters
func (h *AgentsHandler) GenerateCharacters(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.GenerateCharactersRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.db.GetProject(user.OrganizationID, req.ProjectID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, h.sim.GenerateCharacters(req.ProjectID))
}
