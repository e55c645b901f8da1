package service

import (
	"github.com/vlnch/anonbox/store"
)

// SessionCredential is the bearer value a client presents on protected
// calls. Today it is literally the username in plaintext, unsigned and
// without expiry, so anyone who learns a username can read that user's
// inbox. The distinct type exists so a signed-token scheme can replace it
// without changing the service contracts.
type SessionCredential string

type Service struct {
	Store store.DocumentStore
}

func NewService(documentStore store.DocumentStore) *Service {
	return &Service{Store: documentStore}
}
