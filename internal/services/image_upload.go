package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the upload ceiling. Larger payloads are rejected before
// anything is written.
const MaxImageSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrEmptyImage       = errors.New("image file is empty")
	ErrImageTooLarge    = errors.New("image exceeds the 5 MiB limit")
	ErrInvalidImageType = errors.New("image type not allowed")
)

// UploadDir returns the filesystem root for uploaded images.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./web/uploads"
}

// ValidateImage checks size and extension without touching the disk.
func ValidateImage(header *multipart.FileHeader) error {
	if header == nil || header.Size == 0 {
		return ErrEmptyImage
	}
	if header.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return ErrInvalidImageType
	}
	return nil
}

// SaveImage persists an uploaded image under the target folder with a
// collision-free name and returns its public path.
func SaveImage(header *multipart.FileHeader, folder string) (string, error) {
	if err := ValidateImage(header); err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(UploadDir(), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join("/uploads", folder, name), nil
}

// DeleteImage removes a previously uploaded image by its public path.
// Best-effort: a missing file just returns false, I/O failures are
// logged and reported as false.
func DeleteImage(publicPath string) bool {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok || rel == "" {
		return false
	}

	full := filepath.Join(UploadDir(), filepath.FromSlash(rel))
	if _, err := os.Stat(full); err != nil {
		return false
	}
	if err := os.Remove(full); err != nil {
		log.Printf("Failed to delete image %s: %v", publicPath, err)
		return false
	}
	return true
}
