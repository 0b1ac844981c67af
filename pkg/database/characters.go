package database

import (
	"fmt"
	"sort"

	"aigc-studio-mock-api/pkg/models"
)

const (
	importedPortraitSize    = 102400
	importedPortraitSubType = "character_ip"
	defaultVoiceSpeed       = 1.0
)

func (db *MockDatabase) characterLocked(orgID, projectID, characterID int) (models.Character, error) {
	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return models.Character{}, err
	}
	c, ok := db.st.characters[characterID]
	if !ok || c.ProjectID != projectID {
		return models.Character{}, notFound("Character")
	}
	return c, nil
}

// ListCharacters 列出项目角色，按 id 升序
func (db *MockDatabase) ListCharacters(orgID, projectID int) ([]models.Character, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return nil, err
	}
	chars := []models.Character{}
	for _, c := range db.st.characters {
		if c.ProjectID == projectID {
			chars = append(chars, c)
		}
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i].ID < chars[j].ID })
	return chars, nil
}

// GetCharacter 获取角色
func (db *MockDatabase) GetCharacter(orgID, projectID, characterID int) (models.Character, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.characterLocked(orgID, projectID, characterID)
}

// CreateCharacter 创建角色。请求体中的 project_id 必须与路径一致
func (db *MockDatabase) CreateCharacter(orgID, projectID int, req models.CharacterCreateRequest) (models.Character, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return models.Character{}, err
	}
	if req.ProjectID != projectID {
		return models.Character{}, newError(ErrValidation, "Project ID mismatch")
	}
	if req.DisplayName == "" {
		return models.Character{}, newError(ErrValidation, "display_name is required")
	}

	portraits := append([]models.Portrait{}, req.Portraits...)
	speed := defaultVoiceSpeed
	if req.VoiceSpeed != nil {
		speed = *req.VoiceSpeed
	}
	now := db.now()
	c := models.Character{
		ID:          db.ids.next(kindCharacters),
		ProjectID:   projectID,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Portraits:   portraits,
		VoicePreset: req.VoicePreset,
		VoiceSpeed:  &speed,
		VoiceScript: req.VoiceScript,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.st.characters[c.ID] = c
	db.persistLocked()
	return c, nil
}

// UpdateCharacter 更新角色并刷新 updated_at
func (db *MockDatabase) UpdateCharacter(orgID, projectID, characterID int, req models.CharacterUpdateRequest) (models.Character, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, err := db.characterLocked(orgID, projectID, characterID)
	if err != nil {
		return models.Character{}, err
	}
	req.Apply(&c)
	c.UpdatedAt = db.now()
	db.st.characters[characterID] = c
	db.persistLocked()
	return c, nil
}

// DeleteCharacter 删除角色
func (db *MockDatabase) DeleteCharacter(orgID, projectID, characterID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.characterLocked(orgID, projectID, characterID); err != nil {
		return err
	}
	delete(db.st.characters, characterID)
	db.persistLocked()
	return nil
}

// ImportPortraits 将角色的每张立绘登记为一个素材，返回素材摘要
func (db *MockDatabase) ImportPortraits(user models.User, projectID, characterID int) ([]models.ImportedPortrait, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, err := db.characterLocked(user.OrganizationID, projectID, characterID)
	if err != nil {
		return nil, err
	}
	if len(c.Portraits) == 0 {
		return nil, newError(ErrValidation, "No portraits to import")
	}

	now := db.now()
	subType := importedPortraitSubType
	uploader := user.ID
	imported := make([]models.ImportedPortrait, 0, len(c.Portraits))
	for i, portrait := range c.Portraits {
		index := i + 1
		asset := models.Asset{
			ID:             db.ids.next(kindAssets),
			OrganizationID: user.OrganizationID,
			Name:           fmt.Sprintf("%s立绘-%d", c.DisplayName, index),
			Description:    c.Description,
			AssetType:      "IMAGE",
			SubType:        &subType,
			CreationMethod: models.CreationGenerated,
			Tags:           []string{"角色", c.DisplayName},
			FileURL:        portrait.Src,
			ObjectKey:      fmt.Sprintf("%d/characters/%d_%d.png", user.OrganizationID, characterID, index),
			UploadedByID:   &uploader,
			CreatedAt:      now,
		}
		db.st.assets[asset.ID] = asset
		imported = append(imported, models.ImportedPortrait{
			ID:           asset.ID,
			Name:         asset.Name,
			AssetType:    asset.AssetType,
			AssetSubType: asset.SubType,
			ObjectKey:    asset.ObjectKey,
			URL:          asset.FileURL,
			Size:         importedPortraitSize,
			Metadata:     map[string]interface{}{"character_id": characterID, "index": index},
			CreatedAt:    asset.CreatedAt,
		})
	}
	db.persistLocked()
	return imported, nil
}
