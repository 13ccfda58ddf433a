package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/linktrove/linktrove/config"
	"github.com/linktrove/linktrove/internal/infra/logger"
	"go.uber.org/zap"
)

// allowedImageTypes maps accepted sniffed MIME types to the stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUploadTooLarge is returned when an upload exceeds the configured size cap.
var ErrUploadTooLarge = fmt.Errorf("upload exceeds size limit")

// ErrUploadBadType is returned when an upload is not an accepted image type.
var ErrUploadBadType = fmt.Errorf("upload is not an accepted image type")

// CleanupReport summarises one orphan scan over the upload directory.
type CleanupReport struct {
	Scanned  int      `json:"scanned"`
	Orphans  []string `json:"orphans"`
	Deleted  int      `json:"deleted"`
	Referred int      `json:"referred"`
}

// UploadService stores images on local disk and can scan the upload
// directory for files no longer referenced by any row.
type UploadService interface {
	SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	Cleanup(ctx context.Context, deleteOrphans bool) (*CleanupReport, error)
}

// PhotoURLLister and ImagePathLister are the two reference sources the
// orphan scan consults.
type PhotoURLLister interface {
	AllPhotoURLs(ctx context.Context) ([]string, error)
}

type ImagePathLister interface {
	AllImagePaths(ctx context.Context) ([]string, error)
}

type uploadService struct {
	cfg      config.UploadConfig
	trees    PhotoURLLister
	articles ImagePathLister
}

// NewUploadService returns an UploadService writing into cfg.Dir.
func NewUploadService(cfg config.UploadConfig, trees PhotoURLLister, articles ImagePathLister) UploadService {
	return &uploadService{cfg: cfg, trees: trees, articles: articles}
}

// SaveImage validates the upload, writes it under a random name, and returns
// the public URL path to store in the referencing row.
func (s *uploadService) SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	maxSize := s.cfg.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = config.DefaultUploadMaxSize
	}
	if file.Size > maxSize {
		return "", fmt.Errorf("%d bytes: %w", file.Size, ErrUploadTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Sniff the content type instead of trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%s: %w", contentType, ErrUploadBadType)
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.cfg.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join(s.cfg.PublicPath, name), nil
}

// Cleanup walks the upload directory and reports files not referenced by any
// linktree photo or article featured image. With deleteOrphans set, orphans
// are removed.
func (s *uploadService) Cleanup(ctx context.Context, deleteOrphans bool) (*CleanupReport, error) {
	referenced := make(map[string]struct{})

	photoURLs, err := s.trees.AllPhotoURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list photo urls: %w", err)
	}
	imagePaths, err := s.articles.AllImagePaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("list image paths: %w", err)
	}
	for _, u := range append(photoURLs, imagePaths...) {
		if u == "" {
			continue
		}
		referenced[path.Base(u)] = struct{}{}
	}

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &CleanupReport{}, nil
		}
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	report := &CleanupReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		report.Scanned++
		name := entry.Name()
		if _, ok := referenced[name]; ok {
			report.Referred++
			continue
		}
		report.Orphans = append(report.Orphans, strings.TrimSpace(name))
		if deleteOrphans {
			if err := os.Remove(filepath.Join(s.cfg.Dir, name)); err != nil {
				logger.L().Warn("failed to remove orphan upload",
					zap.String("file", name), zap.Error(err))
				continue
			}
			report.Deleted++
		}
	}
	return report, nil
}
