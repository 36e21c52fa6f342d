// Package storage wraps the remote object store that holds post attachments.
package storage

import "context"

// ObjectStore uploads an in-memory binary asset and returns its durable,
// publicly reachable URL. The buffer is never written to local disk.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
