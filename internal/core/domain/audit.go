package domain

import "time"

// Audit action tags recorded by the auth and favorites flows.
const (
	ActionRegister       = "REGISTER"
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionForgotPassword = "FORGOT_PASSWORD_REQUEST"
	ActionResetPassword  = "RESET_PASSWORD"
	ActionAddFavorite    = "ADD_FAVORITE"
	ActionRemoveFavorite = "REMOVE_FAVORITE"
)

// Audit entity types.
const (
	EntityUser  = "USER"
	EntityVideo = "VIDEO"
)

// AuditEntry is one immutable line of the security ledger. Entries reference
// a user but outlive the user record (append-only semantics).
type AuditEntry struct {
	UserID      int64     `json:"user_id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}
