package models

import "time"

// Task statuses. Nothing advances a task past queued.
const (
	TaskQueued    = "queued"
	TaskRunning   = "running"
	TaskSucceeded = "succeeded"
	TaskFailed    = "failed"
)

// Task types created by the generation endpoints.
const (
	TaskGenerateStoryboardImages    = "generate_storyboard_images"
	TaskGenerateStoryboardKeyframes = "generate_storyboard_keyframes"
	TaskGenerateStoryboardVideos    = "generate_storyboard_videos"
	TaskTextToImage                 = "text_to_image"
	TaskGenerateCharacterImages     = "generate_character_images"
)

// Task is a background job record.
type Task struct {
	ID             int                    `json:"id"`
	OrganizationID int                    `json:"organization_id"`
	TaskType       string                 `json:"task_type"`
	Status         string                 `json:"status"`
	Payload        map[string]interface{} `json:"payload"`
	Progress       int                    `json:"progress"`
	Result         interface{}            `json:"result"`
	ErrorMessage   *string                `json:"error_message"`
	RetryToken     *string                `json:"retry_token"`
	CreatedAt      time.Time              `json:"created_at"`
}

// TaskCreateRequest 创建任务请求
type TaskCreateRequest struct {
	TaskType string                 `json:"task_type"`
	Payload  map[string]interface{} `json:"payload"`
}

// TextToImageRequest 文生图任务请求
type TextToImageRequest struct {
	Prompt           string   `json:"prompt"`
	Size             *string  `json:"size"`
	AssetName        *string  `json:"asset_name"`
	AssetDescription *string  `json:"asset_description"`
	SubType          *string  `json:"sub_type"`
	Tags             []string `json:"tags"`
}

// Payload fills defaults and flattens the request into a task payload.
func (r *TextToImageRequest) Payload() map[string]interface{} {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"prompt":            r.Prompt,
		"size":              stringOr(r.Size, "2K"),
		"asset_name":        stringOr(r.AssetName, "AI生成图片"),
		"asset_description": r.AssetDescription,
		"sub_type":          stringOr(r.SubType, "scene"),
		"tags":              tags,
	}
}

// CharacterImageTaskRequest 角色立绘生成任务请求
type CharacterImageTaskRequest struct {
	CharacterID int     `json:"character_id"`
	Prompt      string  `json:"prompt"`
	Size        *string `json:"size"`
}

// Payload flattens the request into a task payload.
func (r *CharacterImageTaskRequest) Payload() map[string]interface{} {
	return map[string]interface{}{
		"character_id": r.CharacterID,
		"prompt":       r.Prompt,
		"size":         stringOr(r.Size, "2K"),
	}
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
