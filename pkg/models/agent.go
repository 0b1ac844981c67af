package models

// WorkflowRunRequest 智能体工作流请求
type WorkflowRunRequest struct {
	Input      string                 `json:"input"`
	Style      *string                `json:"style"`
	WorkflowID *string                `json:"workflow_id"`
	Parameters map[string]interface{} `json:"parameters"`
}

// WorkflowEvent is one streamed workflow message.
type WorkflowEvent struct {
	Event string `json:"event" yaml:"event"`
	Data  string `json:"data" yaml:"data"`
	ID    string `json:"id" yaml:"id"`
}

// WorkflowRunResponse 工作流响应
type WorkflowRunResponse struct {
	WorkflowID string          `json:"workflow_id"`
	Events     []WorkflowEvent `json:"events"`
}

// GenerateCharactersRequest 角色生成请求
type GenerateCharactersRequest struct {
	RoleInfo  string `json:"role_info"`
	ProjectID int    `json:"project_id"`
}

// GeneratedCharacter is a character proposal from the agent.
type GeneratedCharacter struct {
	Name        string     `json:"name" yaml:"name"`
	DisplayName string     `json:"displayName" yaml:"display_name"`
	Description string     `json:"description" yaml:"description"`
	RoleType    string     `json:"roleType" yaml:"role_type"`
	VoicePreset string     `json:"voicePreset" yaml:"voice_preset"`
	VoiceSpeed  float64    `json:"voiceSpeed" yaml:"voice_speed"`
	VoiceScript string     `json:"voiceScript" yaml:"voice_script"`
	Portraits   []Portrait `json:"portraits" yaml:"portraits"`
}

// GenerateCharactersResponse 角色生成响应
type GenerateCharactersResponse struct {
	Success     bool                 `json:"success"`
	Characters  []GeneratedCharacter `json:"characters"`
	ProjectID   int                  `json:"project_id"`
	EventsCount int                  `json:"events_count"`
}
