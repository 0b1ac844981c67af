package database

import (
	"sort"
	"strings"

	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"
)

const (
	sessionTokenPrefix = "mock-token"
	sessionTokenLength = 12
)

// Register 创建组织、管理员用户与会话 token（一次加锁内完成）
func (db *MockDatabase) Register(req models.UserRegisterRequest) (string, models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.findUserByLoginLocked(req.Email) != nil {
		return "", models.User{}, newError(ErrConflict, "Email already registered")
	}

	now := db.now()
	org := models.Organization{
		ID:        db.ids.next(kindOrganizations),
		Name:      req.OrganizationName,
		CreatedAt: now,
	}
	db.st.organizations[org.ID] = org

	username := req.Email
	if i := strings.Index(req.Email, "@"); i >= 0 {
		username = req.Email[:i]
	}
	displayName := username
	if req.DisplayName != nil && *req.DisplayName != "" {
		displayName = *req.DisplayName
	}
	email := req.Email
	active := true
	user := models.User{
		ID:             db.ids.next(kindUsers),
		Username:       username,
		DisplayName:    displayName,
		Email:          &email,
		Role:           models.RoleAdmin,
		OrganizationID: org.ID,
		IsActive:       &active,
		Password:       req.Password,
		CreatedAt:      now,
	}
	db.st.users[user.ID] = user

	token := db.tokenSource.Token(sessionTokenPrefix, sessionTokenLength)
	db.st.tokens[token] = user.ID
	db.persistLocked()

	return token, user, nil
}

// Login 按用户名、邮箱或手机号匹配用户并校验密码。
// 先校验凭据再检查启用状态；已有 token 时复用（取字典序最小的一个）
func (db *MockDatabase) Login(credential, password string) (string, models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	user := db.findUserByLoginLocked(credential)
	if user == nil || !utils.VerifyPassword(password, user.Password) {
		return "", models.User{}, newError(ErrInvalidCredentials, "Invalid credentials")
	}
	if !user.Active() {
		return "", models.User{}, newError(ErrInactive, "User is inactive")
	}

	var existing []string
	for token, userID := range db.st.tokens {
		if userID == user.ID {
			existing = append(existing, token)
		}
	}
	if len(existing) > 0 {
		sort.Strings(existing)
		return existing[0], *user, nil
	}

	token := db.tokenSource.Token(sessionTokenPrefix, sessionTokenLength)
	db.st.tokens[token] = user.ID
	db.persistLocked()
	return token, *user, nil
}

// Authenticate 将 bearer token 解析为用户
func (db *MockDatabase) Authenticate(token string) (models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	userID, ok := db.st.tokens[token]
	if !ok || token == "" {
		return models.User{}, newError(ErrInvalidToken, "Invalid token")
	}
	user, ok := db.st.users[userID]
	if !ok || !user.Active() {
		return models.User{}, newError(ErrInactive, "Inactive user")
	}
	return user, nil
}

// findUserByLoginLocked returns the lowest-id user whose username, email or phone
// equals credential.
func (db *MockDatabase) findUserByLoginLocked(credential string) *models.User {
	if credential == "" {
		return nil
	}
	var found *models.User
	for id := range db.st.users {
		u := db.st.users[id]
		if u.MatchesCredential(credential) && (found == nil || u.ID < found.ID) {
			found = &u
		}
	}
	return found
}
