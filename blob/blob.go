package blob

import (
	"context"
	"errors"
)

// Transport is the remote service holding the document as one opaque byte
// blob under a fixed identifier. Get and Patch are independent network round
// trips; the transport offers no concurrency control of its own.
type Transport interface {
	Get(ctx context.Context) ([]byte, error)
	Patch(ctx context.Context, content []byte) error
}

// ErrNotFound is returned by Get when the backing blob does not exist yet
// (first run, or the remote object was removed out of band).
var ErrNotFound = errors.New("blob: not found")
