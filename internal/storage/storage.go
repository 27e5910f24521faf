// Package storage publishes generated files to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PutObjectOptions are optional upload parameters. Size is the exact number
// of bytes, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage uploads objects.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}

// Key joins prefix and the base name of localPath with "/".
func Key(prefix, localPath string) string {
	base := filepath.Base(localPath)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

// PutFile uploads the file at localPath under prefix.
func PutFile(ctx context.Context, s Storage, prefix, localPath, contentType string, metadata map[string]string) (ObjectInfo, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("publish: %w", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("publish: %w", err)
	}
	key := Key(prefix, localPath)
	info, err := s.Put(ctx, key, f, PutObjectOptions{Size: st.Size(), ContentType: contentType, Metadata: metadata})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("publish %s: %w", key, err)
	}
	return info, nil
}
