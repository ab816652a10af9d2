package models

import "strings"

// UserInfo is the authenticated user's token and identity. It is the value
// persisted under the "userInfo" storage key.
type UserInfo struct {
	AuthToken string `json:"authToken"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// Valid reports whether u carries every field a session needs.
// A record that fails this check is discarded on startup.
func (u UserInfo) Valid() bool {
	return strings.TrimSpace(u.AuthToken) != "" && strings.TrimSpace(u.Email) != "" && u.Name != ""
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email_addr"`
	Password string `json:"password" validate:"required,min=6"`
}
