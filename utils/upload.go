package utils

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/tda-club/club-website-backend/config"
)

// maxImageSize caps uploads at 5MB, matching the media host plan.
const maxImageSize = 5 * 1024 * 1024

// ErrNotAnImage is returned for uploads without an image/* content type.
var ErrNotAnImage = errors.New("only image files are allowed")

// ErrImageTooLarge is returned for uploads over the size cap.
var ErrImageTooLarge = errors.New("image exceeds the 5MB size limit")

// Asset folders on the media host, one per content type.
const (
	FolderTeam   = "tda_team_members"
	FolderEvents = "tda_events"
	FolderNews   = "tda_news"
)

// Incoming transformations applied by the media host before storing.
const (
	TransformTeam   = "w_400,h_400,c_fill,g_face,q_auto"
	TransformBanner = "w_1200,h_600,c_fill,q_auto"
)

var cld *cloudinary.Cloudinary

// InitCloudinary configures the shared client. Uploads fail with a clear
// error when credentials are absent rather than at boot.
func InitCloudinary(cfg *config.Config) error {
	if cfg.CloudinaryCloudName == "" {
		return errors.New("cloudinary credentials not configured")
	}
	c, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return fmt.Errorf("init cloudinary: %w", err)
	}
	cld = c
	return nil
}

// UploadImage pushes a validated image to the media host and returns its
// stable URL. The URL is treated as an opaque string by callers; a failure
// here is reported once and never retried.
func UploadImage(ctx context.Context, fh *multipart.FileHeader, folder, transformation string) (string, error) {
	if cld == nil {
		return "", errors.New("media upload service not configured")
	}
	if fh.Size > maxImageSize {
		return "", ErrImageTooLarge
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrNotAnImage
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	publicID := fmt.Sprintf("%s_%d_%s", folder, time.Now().Unix(), uuid.NewString()[:8])

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		Format:         "jpg",
		Transformation: transformation,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return resp.SecureURL, nil
}
