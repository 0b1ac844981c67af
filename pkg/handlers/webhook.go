package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaymentsHandler 模拟微信 Native 支付：下单、查询与回调
type PaymentsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	sim    *simulate.Simulator
	log    *zap.Logger
}

// NewPaymentsHandler 创建支付处理器
func NewPaymentsHandler(cfg *config.Config, db database.DatabaseInterface, sim *simulate.Simulator, log *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{config: cfg, db: db, sim: sim, log: log}
}

// CreateWechatOrder 创建待支付订单并返回二维码链接
func (h *PaymentsHandler) CreateWechatOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.PaymentCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payment, codeURL, err := h.db.CreatePayment(user.OrganizationID, req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	h.log.Info("payment order created",
		zap.String("order_id", payment.OrderID),
		zap.String("plan_type", payment.PlanType),
		zap.Int("amount", payment.Amount),
	)
	utils.WriteSuccessResponse(w, models.PaymentCreateResponse{
		OrderID:              payment.OrderID,
		QRCodeURL:            codeURL,
		WechatRequestSummary: h.sim.WechatSummary(payment, codeURL),
	})
}

// GetWechatOrderStatus 查询本组织订单状态
func (h *PaymentsHandler) GetWechatOrderStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	orderID := chiRoute.URLParam(r, "order_id")

	payment, err := h.db.GetPayment(user.OrganizationID, orderID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, models.PaymentStatusResponse{OrderID: payment.OrderID, Status: payment.Status})
}

// HandleWechatCallback 处理支付回调。无需认证，未知订单静默忽略
func (h *PaymentsHandler) HandleWechatCallback(w http.ResponseWriter, r *http.Request) {
	// 读取请求体
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Warn("failed to read callback body", zap.Error(err))
		utils.WriteBadRequestResponse(w, "Failed to read request body")
		return
	}

	// 解析回调事件
	var event models.PaymentCallbackRequest
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warn("invalid callback payload", zap.Error(err))
		utils.WriteBadRequestResponse(w, "Invalid callback payload")
		return
	}

	status := models.PaymentPaid
	if event.Status != nil {
		status = models.PaymentStatus(*event.Status)
	}
	if event.OrderID != "" {
		if h.db.UpdatePaymentStatus(event.OrderID, status) {
			h.log.Info("payment status updated", zap.String("order_id", event.OrderID), zap.String("status", string(status)))
		} else {
			h.log.Debug("callback for unknown order ignored", zap.String("order_id", event.OrderID))
		}
	}

	utils.WriteSuccessResponse(w, map[string]string{"code": "SUCCESS", "message": "OK"})
}
