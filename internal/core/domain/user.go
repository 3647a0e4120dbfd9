package domain

// User represents a wallet user.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`     // Never serialized
	AuditFields
}
