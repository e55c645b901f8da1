package models

import "time"

// Document is the entire persisted state of the service: one aggregate
// holding every account and every message, stored as a single remote JSON
// blob and replaced wholesale on every write.
type Document struct {
	Users    []Account `json:"users"`
	Messages []Message `json:"messages"`
}

// Account usernames are unique within a document (case-sensitive exact match).
// PasswordHash is an opaque bcrypt string, never the clear password.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Message recipients are plain usernames and are not required to correspond
// to a registered account.
type Message struct {
	Id        string    `json:"_id"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}
