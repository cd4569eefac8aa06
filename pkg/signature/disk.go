package signature

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DiskStore writes signature images under <root>/signatures and returns the
// path relative to the storage root.
type DiskStore struct {
	root   string
	logger zerolog.Logger
}

// NewDiskStore constructs a disk-backed store rooted at the given directory.
func NewDiskStore(root string, logger zerolog.Logger) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("signature storage root must not be empty")
	}

	if err := os.MkdirAll(filepath.Join(root, "signatures"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create signature directory: %w", err)
	}

	return &DiskStore{
		root:   root,
		logger: logger.With().Str("component", "signature_disk_store").Logger(),
	}, nil
}

// Save decodes and writes the signature, returning "signatures/<name>".
func (s *DiskStore) Save(ctx context.Context, payload, prefix string) (string, error) {
	raw, err := Decode(payload)
	if err != nil {
		return "", err
	}

	name := buildFileName(prefix)
	if err := os.WriteFile(filepath.Join(s.root, "signatures", name), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}

	relative := filepath.ToSlash(filepath.Join("signatures", name))
	s.logger.Debug().Str("path", relative).Msg("signature stored")

	return relative, nil
}
