package models

import "time"

// APIKey is an organization-scoped third-party credential.
type APIKey struct {
	ID             int       `json:"id"`
	OrganizationID int       `json:"organization_id"`
	Name           string    `json:"name"`
	Value          string    `json:"value"`
	MaskedValue    string    `json:"masked_value"`
	CreatedAt      time.Time `json:"created_at"`
}

// MaskValue keeps the first four characters and hides the rest.
func MaskValue(value string) string {
	runes := []rune(value)
	if len(runes) < 4 {
		return "****"
	}
	return string(runes[:4]) + "****"
}

// APIKeyView never exposes the raw value.
type APIKeyView struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	MaskedValue string    `json:"masked_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// View returns the redacted response shape.
func (k *APIKey) View() APIKeyView {
	masked := k.MaskedValue
	if masked == "" {
		masked = MaskValue(k.Value)
	}
	return APIKeyView{ID: k.ID, Name: k.Name, MaskedValue: masked, CreatedAt: k.CreatedAt}
}

// APIKeyCreateRequest 创建 API Key 请求
type APIKeyCreateRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// APIKeyUpdateRequest 更新 API Key 请求
type APIKeyUpdateRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// Apply overwrites the provided fields and recomputes the mask when the value changes.
func (r *APIKeyUpdateRequest) Apply(k *APIKey) {
	setString(&k.Name, r.Name)
	if r.Value != nil {
		k.Value = *r.Value
		k.MaskedValue = MaskValue(*r.Value)
	}
}
