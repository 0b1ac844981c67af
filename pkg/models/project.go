package models

import "time"

// 项目状态
const (
	ProjectStatusDraft = "draft"
)

// Project is a creative project owned by an organization.
type Project struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	ProjectType     string    `json:"project_type"`
	Status          string    `json:"status"`
	Description     *string   `json:"description"`
	Prompt          string    `json:"prompt"`
	CoverImage      string    `json:"cover_image"`
	VideoScale      *string   `json:"video_scale"`
	VideoResolution *string   `json:"video_resolution"`
	OrganizationID  int       `json:"organization_id"`
	CreatedByID     int       `json:"created_by_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProjectView is a project with its creator expanded.
type ProjectView struct {
	Project
	CreatedBy *PublicUser `json:"created_by"`
}

// ProjectCreateRequest 创建项目请求
type ProjectCreateRequest struct {
	Name            string  `json:"name"`
	ProjectType     string  `json:"project_type"`
	Status          *string `json:"status"`
	Description     *string `json:"description"`
	Prompt          *string `json:"prompt"`
	CoverImage      *string `json:"cover_image"`
	VideoScale      *string `json:"video_scale"`
	VideoResolution *string `json:"video_resolution"`
}

// ProjectUpdateRequest 更新项目请求（仅覆盖非空字段）
type ProjectUpdateRequest struct {
	Name            *string `json:"name"`
	Status          *string `json:"status"`
	Description     *string `json:"description"`
	Prompt          *string `json:"prompt"`
	CoverImage      *string `json:"cover_image"`
	VideoScale      *string `json:"video_scale"`
	VideoResolution *string `json:"video_resolution"`
}

// Apply overwrites the provided fields.
func (r *ProjectUpdateRequest) Apply(p *Project) {
	setString(&p.Name, r.Name)
	setString(&p.Status, r.Status)
	setOptional(&p.Description, r.Description)
	setString(&p.Prompt, r.Prompt)
	setString(&p.CoverImage, r.CoverImage)
	setOptional(&p.VideoScale, r.VideoScale)
	setOptional(&p.VideoResolution, r.VideoResolution)
}

// Scene is a generated scene image attached to a project.
type Scene struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	GeneratedBy *int      `json:"generated_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// SceneView is a scene with the generating user expanded when it still exists.
type SceneView struct {
	Scene
	CreatedBy *PublicUser `json:"created_by,omitempty"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setOptional(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
