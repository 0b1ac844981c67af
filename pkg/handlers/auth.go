package handlers

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	log    *zap.Logger
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, db database.DatabaseInterface, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		db:     db,
		log:    log,
	}
}

// Register 用户注册：创建组织与管理员账号
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.OrganizationName) == "" {
		utils.WriteValidationErrorResponse(w, "email, password and organization_name are required")
		return
	}

	token, user, err := h.db.Register(req)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	h.log.Info("user registered", zap.Int("user_id", user.ID), zap.Int("organization_id", user.OrganizationID))
	utils.WriteSuccessResponse(w, models.UserLoginResponse{Token: token, User: user.Public()})
}

// Login 用户登录，支持表单与JSON两种请求体
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	token, user, err := h.db.Login(creds.Username, creds.Password)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, models.UserLoginResponse{Token: token, User: user.Public()})
}

// Token OAuth2 password grant 形式的登录
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	token, user, err := h.db.Login(creds.Username, creds.Password)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	utils.WriteSuccessResponse(w, models.OAuthTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
	})
}

// Me 返回当前登录用户
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	utils.WriteSuccessResponse(w, user.Public())
}

// readCredentials 读取 username/password，表单优先
func (h *AuthHandler) readCredentials(w http.ResponseWriter, r *http.Request) (models.UserLoginRequest, bool) {
	var creds models.UserLoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			utils.WriteBadRequestResponse(w, "Invalid form body")
			return creds, false
		}
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				utils.WriteBadRequestResponse(w, "Invalid form body")
				return creds, false
			}
		}
		creds.Username = r.FormValue("username")
		creds.Password = r.FormValue("password")
	default:
		if !decodeBody(w, r, &creds) {
			return creds, false
		}
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		utils.WriteValidationErrorResponse(w, "username and password are required")
		return creds, false
	}
	return creds, true
}

// HealthCheck 健康检查
func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	// 测试存储状态
	dbStatus := "healthy"
	if err := h.db.HealthCheck(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":      "ok",
		"service":     "aigc-studio-mock-api",
		"version":     "1.0.0",
		"environment": h.config.Environment,
		"persistence": h.config.PersistenceMode(),
		"db_status":   dbStatus,
		"timestamp":   time.Now().Unix(),
	})
}
