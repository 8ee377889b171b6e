package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"devpress/cmd/internal/logger"
)

// Image upload failure modes the handler maps to specific status codes.
var (
	ErrImageTooLarge    = errors.New("file too large")
	ErrImageType        = errors.New("unsupported image type")
	ErrImageExists      = errors.New("file exists")
	ErrImageInvalidName = errors.New("invalid file name")
)

// 허용하는 업로드 MIME 타입과 저장 확장자.
var imageExtensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// ImageService stores admin image uploads on the local filesystem under the
// configured public directory.
type ImageService struct {
	dir     string
	maxSize int64
}

func NewImageService(dir string, maxSize int64) *ImageService {
	return &ImageService{dir: dir, maxSize: maxSize}
}

// Save writes the uploaded file and returns the public path of the stored
// image. customName 이 비어 있으면 충돌 없는 이름을 자동 생성하고, 지정된
// 경우 동일 이름 파일이 있으면 덮어쓰지 않고 ErrImageExists 를 돌려준다.
func (s *ImageService) Save(file *multipart.FileHeader, customName string) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrImageTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrImageType
	}

	name := customName
	if name == "" {
		name = fmt.Sprintf("image-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	} else if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", ErrImageInvalidName
	}
	filename := name + "." + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filename)
	if customName != "" {
		if _, err := os.Stat(dst); err == nil {
			return "", ErrImageExists
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	logger.InfoWithFields("image stored", logger.Fields{
		"filename": filename,
		"size":     file.Size,
	})
	return "/images/" + filename, nil
}
