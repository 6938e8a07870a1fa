package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader pushes a locally saved file to the image host and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath, folder string) (string, error)
}

// CloudinaryUploader uploads to Cloudinary, folder-scoped.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader reads CLOUDINARY_URL from the environment.
func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, localPath, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// LocalUploader copies files into a publicly served directory. Used in
// development when no CLOUDINARY_URL is configured.
type LocalUploader struct {
	BaseDir    string // filesystem root, e.g. /var/www/uploads
	PublicPath string // URL prefix the files are served under, e.g. /uploads
}

func (u *LocalUploader) Upload(ctx context.Context, localPath, folder string) (string, error) {
	dir := filepath.Join(u.BaseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(localPath)
	base := strings.TrimSuffix(filepath.Base(localPath), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := copyFile(localPath, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", u.PublicPath, folder, filename), nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
