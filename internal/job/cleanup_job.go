package job

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
)

// CleanupJob removes uploaded files no record references anymore and clears
// lock files left behind by crashed writers. It only runs against the local
// upload backend.
type CleanupJob struct {
	boardRepo  repository.BoardRepository
	policyRepo repository.PolicyRepository
	uploadDir  string
	storePaths []string
	minAge     time.Duration
	staleLock  time.Duration
	logger     *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance. storePaths are the JSON
// documents whose .lock files are subject to stale cleanup.
func NewCleanupJob(
	boardRepo repository.BoardRepository,
	policyRepo repository.PolicyRepository,
	uploadDir string,
	storePaths []string,
	minAge time.Duration,
	staleLock time.Duration,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		boardRepo:  boardRepo,
		policyRepo: policyRepo,
		uploadDir:  uploadDir,
		storePaths: storePaths,
		minAge:     minAge,
		staleLock:  staleLock,
		logger:     logger,
	}
}

// Run executes one cleanup pass
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("업로드 파일 정리 작업 시작")

	// 잠금 청소는 스토어 내용과 무관하니 조회 실패에 가려지지 않게 먼저 돈다
	j.sweepStaleLocks()

	referenced, err := j.referencedFiles(ctx)
	if err != nil {
		j.logger.Error("참조 파일 목록 조회 실패", zap.Error(err))
		return
	}

	removed, failed := 0, 0
	for _, kind := range []string{filestore.KindAttachments, filestore.KindThumbnails} {
		r, f := j.sweepKind(kind, referenced)
		removed += r
		failed += f
	}

	j.logger.Info("업로드 파일 정리 작업 완료",
		zap.Int("removed", removed),
		zap.Int("failed", failed),
	)
}

// referencedFiles collects every stored file name any post or policy still
// points at
func (j *CleanupJob) referencedFiles(ctx context.Context) (map[string]bool, error) {
	referenced := make(map[string]bool)

	keep := func(u string) {
		if idx := strings.LastIndex(u, "/"); idx >= 0 && strings.Contains(u, "/uploads/") {
			referenced[u[idx+1:]] = true
		}
	}

	doc, err := j.boardRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range doc {
		keep(post.Thumbnail)
		for _, a := range post.Attachments {
			keep(a.URL)
			keep(a.DownloadURL)
		}
	}

	policies, err := j.policyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range policies {
		keep(p.Thumbnail)
	}

	return referenced, nil
}

// sweepKind removes unreferenced files of one kind older than minAge
func (j *CleanupJob) sweepKind(kind string, referenced map[string]bool) (removed, failed int) {
	dir := filepath.Join(j.uploadDir, kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Warn("업로드 디렉터리 조회 실패", zap.String("dir", dir), zap.Error(err))
		}
		return 0, 0
	}

	cutoff := time.Now().Add(-j.minAge)
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			// 최근 파일은 아직 저장 전인 레코드가 참조할 수 있다
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			j.logger.Warn("고아 파일 삭제 실패",
				zap.String("kind", kind),
				zap.String("file_name", entry.Name()),
				zap.Error(err))
			failed++
			continue
		}
		j.logger.Info("고아 파일 삭제",
			zap.String("kind", kind),
			zap.String("file_name", entry.Name()))
		removed++
	}
	return removed, failed
}

// sweepStaleLocks removes lock files nobody holds anymore. mtime만으로는
// 보유 여부를 알 수 없으므로 파일 자체에 probe 잠금을 잡아본 뒤, 잡힌
// 파일만 잠금을 쥔 채로 지운다.
func (j *CleanupJob) sweepStaleLocks() {
	for _, path := range j.storePaths {
		lockPath := path + ".lock"
		info, err := os.Stat(lockPath)
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < j.staleLock {
			continue
		}

		probe := flock.New(lockPath)
		locked, err := probe.TryLock()
		if err != nil || !locked {
			// 살아있는 보유자가 있다
			continue
		}
		if info, err = os.Stat(lockPath); err == nil && time.Since(info.ModTime()) >= j.staleLock {
			if err := os.Remove(lockPath); err != nil {
				j.logger.Warn("오래된 잠금 파일 삭제 실패", zap.String("path", lockPath), zap.Error(err))
			} else {
				j.logger.Info("오래된 잠금 파일 삭제", zap.String("path", lockPath))
			}
		}
		if err := probe.Unlock(); err != nil {
			j.logger.Warn("잠금 파일 probe 해제 실패", zap.String("path", lockPath), zap.Error(err))
		}
	}
}
