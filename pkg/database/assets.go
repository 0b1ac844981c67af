package database

import (
	"sort"
	"strconv"
	"strings"

	"aigc-studio-mock-api/pkg/models"
)

// ListAssets 列出组织素材，可按类型过滤、按名称搜索，按创建时间倒序
func (db *MockDatabase) ListAssets(orgID int, filter AssetFilter) ([]models.AssetView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	needle := strings.ToLower(filter.Search)
	assets := []models.Asset{}
	for _, a := range db.st.assets {
		if a.OrganizationID != orgID {
			continue
		}
		if filter.AssetType != "" && a.AssetType != filter.AssetType {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool {
		return newestFirst(assets[i].CreatedAt, assets[j].CreatedAt, assets[i].ID, assets[j].ID)
	})

	views := make([]models.AssetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, db.assetViewLocked(a))
	}
	return views, nil
}

// CreateAsset 创建素材，creation_method 默认 UPLOAD
func (db *MockDatabase) CreateAsset(user models.User, req models.AssetCreateRequest) (models.AssetView, error) {
	if req.Name == "" || req.AssetType == "" {
		return models.AssetView{}, newError(ErrValidation, "name and asset_type are required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	method := models.CreationUpload
	if req.CreationMethod != nil && *req.CreationMethod != "" {
		method = *req.CreationMethod
	}
	tags := append([]string{}, req.Tags...)
	uploader := user.ID
	a := models.Asset{
		ID:             db.ids.next(kindAssets),
		OrganizationID: user.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		AssetType:      req.AssetType,
		SubType:        req.SubType,
		CreationMethod: method,
		Tags:           tags,
		FileURL:        req.FileURL,
		ObjectKey:      req.ObjectKey,
		UploadedByID:   &uploader,
		CreatedAt:      db.now(),
	}
	db.st.assets[a.ID] = a
	db.persistLocked()
	return db.assetViewLocked(a), nil
}

// UpdateAsset 更新素材
func (db *MockDatabase) UpdateAsset(orgID, assetID int, req models.AssetUpdateRequest) (models.AssetView, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	a, ok := db.st.assets[assetID]
	if !ok || a.OrganizationID != orgID {
		return models.AssetView{}, notFound("Asset")
	}
	req.Apply(&a)
	db.st.assets[assetID] = a
	db.persistLocked()
	return db.assetViewLocked(a), nil
}

// DeleteAsset 删除素材
func (db *MockDatabase) DeleteAsset(orgID, assetID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	a, ok := db.st.assets[assetID]
	if !ok || a.OrganizationID != orgID {
		return notFound("Asset")
	}
	delete(db.st.assets, assetID)
	db.persistLocked()
	return nil
}

// PutStorageObject 按 object_key 新增或覆盖对象记录
func (db *MockDatabase) PutStorageObject(obj models.StorageObject) error {
	if obj.ObjectKey == "" {
		return newError(ErrValidation, "object_key is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	replaced := false
	for i := range db.st.storageObjects {
		if db.st.storageObjects[i].ObjectKey == obj.ObjectKey {
			db.st.storageObjects[i] = obj
			replaced = true
			break
		}
	}
	if !replaced {
		db.st.storageObjects = append(db.st.storageObjects, obj)
	}
	db.persistLocked()
	return nil
}

// CanAccessObject reports whether the key is under the organization's prefix
// ("{org}/..." or ".../{org}/...") or is the object key of one of its assets.
func (db *MockDatabase) CanAccessObject(orgID int, objectKey string) bool {
	if objectKey == "" {
		return false
	}
	prefix := strconv.Itoa(orgID) + "/"
	if strings.HasPrefix(objectKey, prefix) || strings.Contains(objectKey, "/"+prefix) {
		return true
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, a := range db.st.assets {
		if a.OrganizationID == orgID && a.ObjectKey == objectKey {
			return true
		}
	}
	return false
}
