package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/middleware"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// writeStoreError 将存储层错误映射为HTTP响应
func writeStoreError(w http.ResponseWriter, log *zap.Logger, err error) {
	var storeErr *database.Error
	message := err.Error()
	if errors.As(err, &storeErr) {
		message = storeErr.Message
	}

	switch {
	case errors.Is(err, database.ErrNotFound):
		utils.WriteNotFoundResponse(w, message)
	case errors.Is(err, database.ErrConflict):
		utils.WriteConflictResponse(w, message)
	case errors.Is(err, database.ErrValidation):
		utils.WriteValidationErrorResponse(w, message)
	case errors.Is(err, database.ErrInvalidCredentials), errors.Is(err, database.ErrInactive):
		utils.WriteBadRequestResponse(w, message)
	case errors.Is(err, database.ErrInvalidToken):
		utils.WriteUnauthorizedResponse(w, message)
	default:
		log.Error("store operation failed", zap.Error(err))
		utils.WriteInternalServerErrorResponse(w, "Internal server error occurred")
	}
}

// parseIDParam 读取整数路径参数，非整数时写入400并返回false
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chiRoute.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		utils.WriteValidationErrorResponse(w, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// currentUser 返回认证中间件写入的用户；未认证时写入401
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Not authenticated")
		return nil, false
	}
	return user, true
}

// decodeBody 解析JSON请求体，失败时写入400
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := utils.ParseJSONBody(r, v); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return false
	}
	return true
}

// parsePage 读取分页参数，非法时写入400
func parsePage(w http.ResponseWriter, r *http.Request, defaultSize, maxSize int) (utils.Page, bool) {
	page, err := utils.ParsePage(r, defaultSize, maxSize)
	if err != nil {
		utils.WriteValidationErrorResponse(w, err.Error())
		return utils.Page{}, false
	}
	return page, true
}
