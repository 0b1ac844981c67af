package models

import "time"

// 素材创建方式
const (
	CreationUpload    = "UPLOAD"
	CreationGenerated = "GENERATED"
)

// Asset is a media file in an organization's library. ObjectKey is the
// coordinate in external object storage.
type Asset struct {
	ID             int       `json:"id"`
	OrganizationID int       `json:"organization_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	AssetType      string    `json:"asset_type"`
	SubType        *string   `json:"sub_type"`
	CreationMethod string    `json:"creation_method"`
	Tags           []string  `json:"tags"`
	FileURL        string    `json:"file_url"`
	ObjectKey      string    `json:"object_key"`
	UploadedByID   *int      `json:"uploaded_by_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssetView attaches the uploader when it still exists.
type AssetView struct {
	Asset
	UploadedBy *PublicUser `json:"uploaded_by,omitempty"`
}

// AssetCreateRequest 创建素材请求
type AssetCreateRequest struct {
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	AssetType      string   `json:"asset_type"`
	SubType        *string  `json:"sub_type"`
	CreationMethod *string  `json:"creation_method"`
	Tags           []string `json:"tags"`
	FileURL        string   `json:"file_url"`
	ObjectKey      string   `json:"object_key"`
}

// AssetUpdateRequest 更新素材请求
type AssetUpdateRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	FileURL     *string   `json:"file_url"`
}

// Apply overwrites the provided fields.
func (r *AssetUpdateRequest) Apply(a *Asset) {
	setString(&a.Name, r.Name)
	setOptional(&a.Description, r.Description)
	if r.Tags != nil {
		a.Tags = append([]string{}, (*r.Tags)...)
	}
	setString(&a.FileURL, r.FileURL)
}

// StorageObject indexes an uploaded object by key.
type StorageObject struct {
	ObjectKey      string `json:"object_key"`
	URL            string `json:"url"`
	OrganizationID int    `json:"organization_id"`
}

// UploadResponse describes a stored upload.
type UploadResponse struct {
	FileID      string `json:"file_id"`
	ObjectKey   string `json:"object_key"`
	FileURL     string `json:"file_url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	UploadedBy  int    `json:"uploaded_by"`
}

// PresignResponse is a time-limited download URL.
type PresignResponse struct {
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	ExpiresAt     *time.Time        `json:"expires_at"`
	SignedHeaders map[string]string `json:"signed_headers"`
}
