package signature

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// CloudinaryConfig contains credentials required to talk to Cloudinary.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStore uploads signature images to Cloudinary and returns the
// secure URL as the reference path. Used when the service runs on more than
// one instance and local disk would not be shared.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// NewCloudinaryStore constructs a Cloudinary-backed store.
func NewCloudinaryStore(cfg CloudinaryConfig, logger zerolog.Logger) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStore{
		client: cld,
		folder: cfg.Folder,
		logger: logger.With().Str("component", "signature_cloudinary_store").Logger(),
	}, nil
}

// Save decodes the signature and uploads it, returning the secure URL.
func (s *CloudinaryStore) Save(ctx context.Context, payload, prefix string) (string, error) {
	raw, err := Decode(payload)
	if err != nil {
		return "", err
	}

	name := buildFileName(prefix)
	params := uploader.UploadParams{
		Folder:       strings.Trim(s.folder, "/"),
		PublicID:     strings.TrimSuffix(name, ".png"),
		ResourceType: "image",
	}

	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(raw), params)
	if err != nil {
		return "", fmt.Errorf("failed to upload signature: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("signature uploaded to cloudinary")

	return result.SecureURL, nil
}
