package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// FileService handles uploaded binaries and external asset fetching.
// It also implements AssetFetcher for the board and policy services.
type FileService interface {
	Upload(ctx context.Context, fh *multipart.FileHeader, kind string) (*dto.UploadedFile, error)
	UploadMultiple(ctx context.Context, fhs []*multipart.FileHeader, kind string) ([]*dto.UploadedFile, error)
	// Download returns the file content and its metadata; the original
	// upload name is recovered from the board store when an attachment
	// references the stored name
	Download(ctx context.Context, fileName string) (io.ReadCloser, *dto.UploadedFile, error)
	Delete(ctx context.Context, fileName string) error
	Fetch(ctx context.Context, kind, rawURL string) (string, error)
	Exists(ctx context.Context, kind, fileName string) bool
}

type fileServiceImpl struct {
	store      filestore.FileStore
	boardRepo  repository.BoardRepository
	httpClient *http.Client
	maxFiles   int
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewFileService creates a new instance of FileService. fetchTimeout bounds
// external asset downloads; maxFiles caps one multipart batch.
func NewFileService(
	store filestore.FileStore,
	boardRepo repository.BoardRepository,
	fetchTimeout time.Duration,
	maxFiles int,
	m *metrics.Metrics,
	logger *zap.Logger,
) FileService {
	if maxFiles <= 0 {
		maxFiles = 10
	}
	return &fileServiceImpl{
		store:      store,
		boardRepo:  boardRepo,
		httpClient: &http.Client{Timeout: fetchTimeout},
		maxFiles:   maxFiles,
		metrics:    m,
		logger:     logger,
	}
}

// Upload stores one multipart file under a generated collision-free name
func (s *fileServiceImpl) Upload(ctx context.Context, fh *multipart.FileHeader, kind string) (*dto.UploadedFile, error) {
	if fh == nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "업로드할 파일이 없습니다.", "")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "업로드 파일을 열지 못했습니다.", err.Error())
	}
	defer src.Close()

	stored := filestore.GenerateFileName(fh.Filename)
	size, err := s.store.Save(ctx, kind, stored, src)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStorage, "파일 저장에 실패했습니다.", err.Error())
	}

	s.logger.Info("파일 업로드 완료",
		zap.String("kind", kind),
		zap.String("file_name", stored),
		zap.String("original_name", fh.Filename),
		zap.Int64("size", size))

	url := s.store.URL(kind, stored)
	return &dto.UploadedFile{
		FileName:     stored,
		OriginalName: fh.Filename,
		Size:         size,
		MimeType:     contentType(fh),
		URL:          url,
		DownloadURL:  url,
	}, nil
}

// UploadMultiple stores each file in turn; the first failure aborts
func (s *fileServiceImpl) UploadMultiple(ctx context.Context, fhs []*multipart.FileHeader, kind string) ([]*dto.UploadedFile, error) {
	if len(fhs) == 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "업로드할 파일이 없습니다.", "")
	}
	if len(fhs) > s.maxFiles {
		return nil, response.NewAppError(response.ErrCodeValidation,
			fmt.Sprintf("파일은 한 번에 최대 %d개까지 업로드할 수 있습니다.", s.maxFiles), "")
	}

	files := make([]*dto.UploadedFile, 0, len(fhs))
	for _, fh := range fhs {
		f, err := s.Upload(ctx, fh, kind)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(path.Ext(fh.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Download opens a stored attachment for streaming. The original upload
// name, when an attachment entry references this file, replaces the stored
// name in the returned metadata.
func (s *fileServiceImpl) Download(ctx context.Context, fileName string) (io.ReadCloser, *dto.UploadedFile, error) {
	if !s.store.Exists(ctx, filestore.KindAttachments, fileName) {
		return nil, nil, response.NewAppError(response.ErrCodeNotFound, "파일을 찾을 수 없습니다.", "")
	}

	rc, err := s.store.Open(ctx, filestore.KindAttachments, fileName)
	if err != nil {
		return nil, nil, response.NewAppError(response.ErrCodeStorage, "파일을 열지 못했습니다.", err.Error())
	}

	meta := &dto.UploadedFile{
		FileName:     fileName,
		OriginalName: s.originalName(ctx, fileName),
		MimeType:     mimeTypeFor(fileName),
		URL:          s.store.URL(filestore.KindAttachments, fileName),
	}
	meta.DownloadURL = meta.URL
	return rc, meta, nil
}

// originalName scans the board store for an attachment referencing the
// stored file; failing that, the stored name is returned as-is
func (s *fileServiceImpl) originalName(ctx context.Context, fileName string) string {
	doc, err := s.boardRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("원본 파일명 조회 실패", zap.String("file_name", fileName), zap.Error(err))
		return fileName
	}
	for _, post := range doc {
		for _, a := range post.Attachments {
			if strings.HasSuffix(a.URL, "/"+fileName) || strings.HasSuffix(a.DownloadURL, "/"+fileName) {
				if a.Name != "" {
					return a.Name
				}
			}
		}
	}
	return fileName
}

func mimeTypeFor(fileName string) string {
	if ct := mime.TypeByExtension(path.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Delete removes a stored attachment
func (s *fileServiceImpl) Delete(ctx context.Context, fileName string) error {
	if !s.store.Exists(ctx, filestore.KindAttachments, fileName) {
		return response.NewAppError(response.ErrCodeNotFound, "파일을 찾을 수 없습니다.", "")
	}
	if err := s.store.Delete(ctx, filestore.KindAttachments, fileName); err != nil {
		return response.NewAppError(response.ErrCodeStorage, "파일 삭제에 실패했습니다.", err.Error())
	}
	s.logger.Info("파일 삭제 완료", zap.String("file_name", fileName))
	return nil
}

// Fetch downloads an external asset into the filestore and returns the
// local URL under which it is now served. The download is bounded by the
// configured timeout; callers treat failure as non-fatal.
func (s *fileServiceImpl) Fetch(ctx context.Context, kind, rawURL string) (string, error) {
	start := time.Now()
	local, err := s.fetch(ctx, kind, rawURL)
	if s.metrics != nil {
		s.metrics.RecordExternalFetch(kind, time.Since(start), err)
	}
	return local, err
}

func (s *fileServiceImpl) fetch(ctx context.Context, kind, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	stored := filestore.GenerateFileNameFromURL(rawURL)
	size, err := s.store.Save(ctx, kind, stored, resp.Body)
	if err != nil {
		return "", err
	}

	s.logger.Info("외부 자산 다운로드 완료",
		zap.String("kind", kind),
		zap.String("url", rawURL),
		zap.String("file_name", stored),
		zap.Int64("size", size))

	return s.store.URL(kind, stored), nil
}

// Exists reports whether a stored file is present
func (s *fileServiceImpl) Exists(ctx context.Context, kind, fileName string) bool {
	return s.store.Exists(ctx, kind, fileName)
}

// ensure the board service's fetcher contract is satisfied
var _ AssetFetcher = (FileService)(nil)
