package models

import "time"

// Portrait is one image reference of a character.
type Portrait struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Character is a cast member of a project.
type Character struct {
	ID          int        `json:"id"`
	ProjectID   int        `json:"project_id"`
	DisplayName string     `json:"display_name"`
	Description *string    `json:"description"`
	Portraits   []Portrait `json:"portraits"`
	VoicePreset *string    `json:"voice_preset"`
	VoiceSpeed  *float64   `json:"voice_speed"`
	VoiceScript *string    `json:"voice_script"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CharacterPage is the list response of the characters endpoint.
type CharacterPage struct {
	Items []Character `json:"items"`
	Total int         `json:"total"`
}

// CharacterCreateRequest 创建角色请求
type CharacterCreateRequest struct {
	ProjectID   int        `json:"project_id"`
	DisplayName string     `json:"display_name"`
	Description *string    `json:"description"`
	Portraits   []Portrait `json:"portraits"`
	VoicePreset *string    `json:"voice_preset"`
	VoiceSpeed  *float64   `json:"voice_speed"`
	VoiceScript *string    `json:"voice_script"`
}

// CharacterUpdateRequest 更新角色请求
type CharacterUpdateRequest struct {
	DisplayName *string     `json:"display_name"`
	Description *string     `json:"description"`
	Portraits   *[]Portrait `json:"portraits"`
	VoicePreset *string     `json:"voice_preset"`
	VoiceSpeed  *float64    `json:"voice_speed"`
	VoiceScript *string     `json:"voice_script"`
}

// Apply overwrites the provided fields.
func (r *CharacterUpdateRequest) Apply(c *Character) {
	setString(&c.DisplayName, r.DisplayName)
	setOptional(&c.Description, r.Description)
	if r.Portraits != nil {
		c.Portraits = append([]Portrait(nil), (*r.Portraits)...)
	}
	setOptional(&c.VoicePreset, r.VoicePreset)
	if r.VoiceSpeed != nil {
		v := *r.VoiceSpeed
		c.VoiceSpeed = &v
	}
	setOptional(&c.VoiceScript, r.VoiceScript)
}

// ImportedPortrait is the lightweight summary returned for each asset created
// from a character portrait.
type ImportedPortrait struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"name"`
	AssetType    string                 `json:"asset_type"`
	AssetSubType *string                `json:"asset_sub_type"`
	ObjectKey    string                 `json:"object_key"`
	URL          string                 `json:"url"`
	Size         int64                  `json:"size"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
}
