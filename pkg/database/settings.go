package database

import (
	"sort"

	"aigc-studio-mock-api/pkg/models"
)

// ListNotifications 列出组织通知，按创建时间倒序
func (db *MockDatabase) ListNotifications(orgID int) ([]models.Notification, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	items := []models.Notification{}
	for _, n := range db.st.notifications {
		if n.OrganizationID == orgID {
			items = append(items, n)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return newestFirst(items[i].CreatedAt, items[j].CreatedAt, items[i].ID, items[j].ID)
	})
	return items, nil
}

// MarkNotificationRead 标记通知已读
func (db *MockDatabase) MarkNotificationRead(orgID, notificationID int) (models.Notification, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n, ok := db.st.notifications[notificationID]
	if !ok || n.OrganizationID != orgID {
		return models.Notification{}, notFound("Notification")
	}
	n.IsRead = true
	db.st.notifications[notificationID] = n
	db.persistLocked()
	return n, nil
}

// ListAPIKeys 列出组织 API Key，按 id 升序
func (db *MockDatabase) ListAPIKeys(orgID int) ([]models.APIKey, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	keys := []models.APIKey{}
	for _, k := range db.st.apiKeys {
		if k.OrganizationID == orgID {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return keys, nil
}

// CreateAPIKey 创建 API Key 并计算掩码
func (db *MockDatabase) CreateAPIKey(orgID int, req models.APIKeyCreateRequest) (models.APIKey, error) {
	if req.Name == "" || req.Value == "" {
		return models.APIKey{}, newError(ErrValidation, "name and value are required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	k := models.APIKey{
		ID:             db.ids.next(kindAPIKeys),
		OrganizationID: orgID,
		Name:           req.Name,
		Value:          req.Value,
		MaskedValue:    models.MaskValue(req.Value),
		CreatedAt:      db.now(),
	}
	db.st.apiKeys[k.ID] = k
	db.persistLocked()
	return k, nil
}

// UpdateAPIKey 更新 API Key，value 变化时重新计算掩码
func (db *MockDatabase) UpdateAPIKey(orgID, keyID int, req models.APIKeyUpdateRequest) (models.APIKey, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	k, ok := db.st.apiKeys[keyID]
	if !ok || k.OrganizationID != orgID {
		return models.APIKey{}, notFound("API key")
	}
	req.Apply(&k)
	db.st.apiKeys[keyID] = k
	db.persistLocked()
	return k, nil
}

// DeleteAPIKey 删除 API Key
func (db *MockDatabase) DeleteAPIKey(orgID, keyID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	k, ok := db.st.apiKeys[keyID]
	if !ok || k.OrganizationID != orgID {
		return notFound("API key")
	}
	delete(db.st.apiKeys, keyID)
	db.persistLocked()
	return nil
}

// ListVoices 按条件过滤音色目录
func (db *MockDatabase) ListVoices(filter models.VoiceFilter) ([]models.Voice, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	voices := []models.Voice{}
	for _, v := range db.st.voices {
		if filter.Match(v) {
			voices = append(voices, v)
		}
	}
	return voices, nil
}
