package model

import "time"

// TokenIssuer builds and signs session tokens.
type TokenIssuer interface {
	Issue(identity string, roles []string) (SessionToken, error)
}

// SessionToken is a signed, bounded-lifetime session credential.
type SessionToken struct {
	Value     string
	ID        string
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
