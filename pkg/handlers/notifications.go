package handlers

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

type NotificationsHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

func NewNotificationsHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{config: cfg, db: db, log: log}
}

// GET /api/notifications
func (h *NotificationsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	notifications, err := h.db.ListNotifications(user.OrganizationID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, notifications)
}

// PATCH /api/notifications/{notification_id}:read
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(w, r, "notification_id")
	if !ok {
		return
	}

	notification, err := h.db.MarkNotificationRead(user.OrganizationID, notificationID)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, notification)
}
