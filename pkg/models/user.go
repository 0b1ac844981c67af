package models

import "time"

// Role values used by the admin checks. Any other string is a non-admin role.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents a user in the system. Password is kept here so the snapshot
// round-trips; handlers only ever serialize PublicUser.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Password       string    `json:"password,omitempty"`
	Role           string    `json:"role"`
	OrganizationID int       `json:"organization_id"`
	IsActive       *bool     `json:"is_active,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Active treats a missing is_active flag as active.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MatchesCredential reports whether credential equals the username, email or phone.
func (u *User) MatchesCredential(credential string) bool {
	if credential == "" {
		return false
	}
	if u.Username == credential {
		return true
	}
	if u.Email != nil && *u.Email == credential {
		return true
	}
	return u.Phone != nil && *u.Phone == credential
}

// PublicUser is the response shape of a user: everything except the password.
type PublicUser struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Role           string    `json:"role"`
	OrganizationID int       `json:"organization_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public strips the password.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		IsActive:       u.Active(),
		CreatedAt:      u.CreatedAt,
	}
}

// UserRegisterRequest represents the request payload for user registration
type UserRegisterRequest struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	OrganizationName string  `json:"organization_name"`
	DisplayName      *string `json:"display_name"`
}

// UserLoginRequest carries the credential (username, email or phone) and password.
type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLoginResponse represents the response payload for register and login
type UserLoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// OAuthTokenResponse is the OAuth2 password-grant shape of a login.
type OAuthTokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        PublicUser `json:"user"`
}

// UserCreateRequest is the admin-side user creation payload.
type UserCreateRequest struct {
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Role        string  `json:"role"`
	Password    string  `json:"password"`
}

// UserUpdateMeRequest is a partial update of the caller's own profile.
type UserUpdateMeRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
}

// Empty reports whether no field was provided.
func (r *UserUpdateMeRequest) Empty() bool {
	return r.DisplayName == nil && r.Email == nil && r.Phone == nil
}
