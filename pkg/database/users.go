package database

import (
	"sort"

	"aigc-studio-mock-api/pkg/models"
)

// GetOrganization 获取组织
func (db *MockDatabase) GetOrganization(orgID int) (models.Organization, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	org, ok := db.st.organizations[orgID]
	if !ok {
		return models.Organization{}, notFound("Organization")
	}
	return org, nil
}

// ListUsers 列出组织内用户，按 id 升序
func (db *MockDatabase) ListUsers(orgID int) ([]models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	users := []models.User{}
	for _, u := range db.st.users {
		if u.OrganizationID == orgID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateUser 管理员在本组织内创建用户；用户名、邮箱、手机号在全局范围内唯一
func (db *MockDatabase) CreateUser(orgID int, req models.UserCreateRequest) (models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if req.Username == "" {
		return models.User{}, newError(ErrValidation, "username is required")
	}
	if db.findUserByLoginLocked(req.Username) != nil {
		return models.User{}, newError(ErrConflict, "Username already exists")
	}
	if req.Email != nil && *req.Email != "" && db.findUserByLoginLocked(*req.Email) != nil {
		return models.User{}, newError(ErrConflict, "Email already exists")
	}
	if req.Phone != nil && *req.Phone != "" && db.findUserByLoginLocked(*req.Phone) != nil {
		return models.User{}, newError(ErrConflict, "Phone already exists")
	}

	displayName := req.Username
	if req.DisplayName != nil && *req.DisplayName != "" {
		displayName = *req.DisplayName
	}
	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}
	active := true
	user := models.User{
		ID:             db.ids.next(kindUsers),
		Username:       req.Username,
		DisplayName:    displayName,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           role,
		OrganizationID: orgID,
		IsActive:       &active,
		Password:       req.Password,
		CreatedAt:      db.now(),
	}
	db.st.users[user.ID] = user
	db.persistLocked()
	return user, nil
}

// UpdateMe 更新当前用户资料。所有字段先校验再写入
func (db *MockDatabase) UpdateMe(userID int, req models.UserUpdateMeRequest) (models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if req.Empty() {
		return models.User{}, newError(ErrValidation, "At least one field must be provided")
	}
	user, ok := db.st.users[userID]
	if !ok {
		return models.User{}, notFound("User")
	}
	if req.Email != nil {
		if other := db.findUserByLoginLocked(*req.Email); other != nil && other.ID != userID {
			return models.User{}, newError(ErrConflict, "Email already exists")
		}
	}
	if req.Phone != nil {
		if other := db.findUserByLoginLocked(*req.Phone); other != nil && other.ID != userID {
			return models.User{}, newError(ErrConflict, "Phone already exists")
		}
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		email := *req.Email
		user.Email = &email
	}
	if req.Phone != nil {
		phone := *req.Phone
		user.Phone = &phone
	}
	db.st.users[userID] = user
	db.persistLocked()
	return user, nil
}

// DeleteUser 删除同组织用户并吊销其全部 token
func (db *MockDatabase) DeleteUser(orgID, userID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	user, ok := db.st.users[userID]
	if !ok || user.OrganizationID != orgID {
		return notFound("User")
	}
	delete(db.st.users, userID)
	for token, uid := range db.st.tokens {
		if uid == userID {
			delete(db.st.tokens, token)
		}
	}
	db.persistLocked()
	return nil
}
