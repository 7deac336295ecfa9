package model

// DefaultUserID is the acting user for all ledger operations. The tracker
// is single-user; authentication resolves a user ID but every record is
// owned by this one account.
const DefaultUserID int64 = 1

// User is a stored account. Only the authentication collaborator reads
// the password hash; the core consumes the resolved ID.
type User struct {
	Username     string
	PasswordHash string
	Role         string
	ID           int64
}
