package signature

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	// ErrEmptyPayload indicates no signature data was provided.
	ErrEmptyPayload = errors.New("no signature data provided")
	// ErrInvalidPayload indicates the payload is not valid encoded image data.
	ErrInvalidPayload = errors.New("signature payload is not a valid encoded image")
)

// Store persists a captured signature and returns a stable reference path
// (or URL) for it.
type Store interface {
	Save(ctx context.Context, payload, prefix string) (string, error)
}

// Decode accepts a data-URL or bare base64 string and returns the raw image
// bytes. The decoded payload must be detectable as an image.
func Decode(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	// Browser canvases send "data:image/png;base64,<data>".
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}

	if !strings.HasPrefix(mimetype.Detect(raw).String(), "image/") {
		return nil, ErrInvalidPayload
	}

	return raw, nil
}

func buildFileName(prefix string) string {
	if prefix == "" {
		prefix = "sig"
	}
	return fmt.Sprintf("%s_%d_%s.png", prefix, time.Now().Unix(), uuid.NewString()[:8])
}
