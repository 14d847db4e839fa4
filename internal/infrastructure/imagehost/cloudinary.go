package imagehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"referhub/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUnavailable = errors.New("image host unavailable")

type Uploader interface {
	Upload(ctx context.Context, r io.Reader, folder string, publicID string) (string, error)
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	root   string
	logger *log.Logger
}

func New(cfg config.ImageHostConfig, logger *log.Logger) (Uploader, error) {
	if !cfg.Enabled() {
		if logger != nil {
			logger.Printf("[Images] Cloudinary not configured, uploads disabled")
		}
		return Disabled{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, root: strings.Trim(cfg.Folder, "/"), logger: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, folder string, publicID string) (string, error) {
	overwrite := true
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:    path.Join(c.root, folder),
		PublicID:  publicID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if res == nil {
		return "", fmt.Errorf("upload: empty response")
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload: %s", res.Error.Message)
	}
	if c.logger != nil {
		c.logger.Printf("[Images] uploaded | folder=%s public_id=%s", folder, res.PublicID)
	}
	return res.SecureURL, nil
}

type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string, string) (string, error) {
	return "", ErrUnavailable
}
