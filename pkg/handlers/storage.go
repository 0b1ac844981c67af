package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// StorageHandler 模拟对象存储：上传只登记对象，不保存文件内容
type StorageHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	signer *utils.PresignSigner
	tokens utils.TokenSource
	log    *zap.Logger
}

func NewStorageHandler(cfg *config.Config, db database.DatabaseInterface, signer *utils.PresignSigner, tokens utils.TokenSource, log *zap.Logger) *StorageHandler {
	if tokens == nil {
		tokens = utils.RandomTokenSource{}
	}
	return &StorageHandler{config: cfg, db: db, signer: signer, tokens: tokens, log: log}
}

// POST /api/storage/upload (multipart, field "file")
func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.config.MaxUploadBytes); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteValidationErrorResponse(w, "file is required")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	objectKey := fmt.Sprintf("%d/%s-%s", user.OrganizationID, h.tokens.Token("upload", 8), filename)
	obj := models.StorageObject{
		ObjectKey:      objectKey,
		URL:            h.signer.ObjectURL(objectKey),
		OrganizationID: user.OrganizationID,
	}
	if err := h.db.PutStorageObject(obj); err != nil {
		writeStoreError(w, h.log, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.log.Info("object uploaded", zap.String("object_key", objectKey), zap.Int64("size", header.Size))
	utils.WriteSuccessResponse(w, models.UploadResponse{
		FileID:      objectKey,
		ObjectKey:   objectKey,
		FileURL:     obj.URL,
		Filename:    filename,
		Size:        header.Size,
		ContentType: contentType,
		UploadedBy:  user.ID,
	})
}

// GET /api/storage/presign?object_key=
// 仅允许本组织前缀或本组织素材引用的对象，其余一律 404
func (h *StorageHandler) Presign(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	objectKey := r.URL.Query().Get("object_key")
	if objectKey == "" {
		utils.WriteValidationErrorResponse(w, "object_key is required")
		return
	}

	if !h.db.CanAccessObject(user.OrganizationID, objectKey) {
		utils.WriteNotFoundResponse(w, "Object not found")
		return
	}

	url, expiresAt, err := h.signer.Sign(objectKey, user.OrganizationID, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		h.log.Error("presign failed", zap.String("object_key", objectKey), zap.Error(err))
		utils.WriteInternalServerErrorResponse(w, "Failed to sign object url")
		return
	}

	utils.WriteSuccessResponse(w, models.PresignResponse{
		URL:           url,
		Method:        http.MethodGet,
		ExpiresAt:     &expiresAt,
		SignedHeaders: map[string]string{},
	})
}
