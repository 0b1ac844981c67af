package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// PlansHandler 套餐目录（全局，不区分组织）与订阅
type PlansHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewPlansHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *PlansHandler {
	return &PlansHandler{config: cfg, db: db, log: log}
}

// GET /api/plans
func (h *PlansHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.db.ListPlans()
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, plans)
}

// GET /api/plans/{plan_id}
func (h *PlansHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseIDParam(w, r, "plan_id")
	if !ok {
		return
	}
	plan, err := h.db.GetPlan(planID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, plan)
}

// POST /api/plans
func (h *PlansHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := h.db.CreatePlan(req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("plan created", zap.Int("plan_id", plan.ID))
	utils.WriteCreatedResponse(w, plan)
}

// PATCH /api/plans/{plan_id}
func (h *PlansHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseIDParam(w, r, "plan_id")
	if !ok {
		return
	}
	var req models.PlanUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := h.db.UpdatePlan(planID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, plan)
}

// DELETE /api/plans/{plan_id}
func (h *PlansHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseIDParam(w, r, "plan_id")
	if !ok {
		return
	}
	if err := h.db.DeletePlan(planID); err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteNoContent(w)
}

// POST /api/plans/subscribe?plan_id=
func (h *PlansHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	planID, err := utils.GetIntQueryParam(r, "plan_id", 0)
	if err != nil || planID == 0 {
		utils.WriteValidationErrorResponse(w, "plan_id is required")
		return
	}

	sub, err := h.db.Subscribe(user.OrganizationID, planID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	h.log.Info("plan subscribed", zap.Int("organization_id", user.OrganizationID), zap.Int("plan_id", planID))
	utils.WriteCreatedResponse(w, sub)
}
