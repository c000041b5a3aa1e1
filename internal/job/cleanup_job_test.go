package job

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(storage.Options{
		Retries:        3,
		MinBackoff:     time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		StaleThreshold: 50 * time.Millisecond,
	}, zap.NewNop(), nil)
}

// writeUpload creates a file under the upload tree with the given mtime
func writeUpload(t *testing.T, uploadDir, kind, name string, mtime time.Time) string {
	t.Helper()
	dir := filepath.Join(uploadDir, kind)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("내용"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestCleanupJob_RemovesOrphansKeepsReferenced(t *testing.T) {
	dir := t.TempDir()
	uploadDir := filepath.Join(dir, "uploads")
	store := testStore(t)
	boardPath := filepath.Join(dir, "board-data.json")
	policyPath := filepath.Join(dir, "health-policy-posts.json")
	boardRepo := repository.NewBoardRepository(store, boardPath)
	policyRepo := repository.NewPolicyRepository(store, policyPath)

	old := time.Now().Add(-2 * time.Hour)
	referencedAttachment := writeUpload(t, uploadDir, filestore.KindAttachments, "kept.pdf", old)
	orphanAttachment := writeUpload(t, uploadDir, filestore.KindAttachments, "orphan.pdf", old)
	referencedThumbnail := writeUpload(t, uploadDir, filestore.KindThumbnails, "cover.png", old)
	recentOrphan := writeUpload(t, uploadDir, filestore.KindAttachments, "recent.pdf", time.Now())

	err := boardRepo.Mutate(context.Background(), func(doc domain.BoardDocument) error {
		doc.Put(&domain.Post{
			ID: 1,
			Attachments: []domain.Attachment{
				{ID: 1, URL: "/uploads/attachments/kept.pdf"},
			},
		})
		return nil
	})
	require.NoError(t, err)
	_, err = policyRepo.Insert(context.Background(), func(doc domain.PolicyDocument) (*domain.Policy, error) {
		return &domain.Policy{ID: 1, Thumbnail: "/uploads/thumbnails/cover.png"}, nil
	})
	require.NoError(t, err)

	job := NewCleanupJob(boardRepo, policyRepo, uploadDir,
		[]string{boardPath, policyPath}, time.Hour, 10*time.Second, zap.NewNop())
	job.Run()

	assert.FileExists(t, referencedAttachment)
	assert.FileExists(t, referencedThumbnail)
	// 최근 파일은 참조가 아직 저장되지 않았을 수 있어 보존한다
	assert.FileExists(t, recentOrphan)
	assert.NoFileExists(t, orphanAttachment)
}

func TestCleanupJob_SweepsStaleLocks(t *testing.T) {
	dir := t.TempDir()
	store := testStore(t)
	boardPath := filepath.Join(dir, "board-data.json")
	policyPath := filepath.Join(dir, "health-policy-posts.json")
	boardRepo := repository.NewBoardRepository(store, boardPath)
	policyRepo := repository.NewPolicyRepository(store, policyPath)

	staleLock := boardPath + ".lock"
	require.NoError(t, os.WriteFile(staleLock, nil, 0o644))
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(staleLock, past, past))
	staleBefore, err := os.Stat(staleLock)
	require.NoError(t, err)

	freshLock := policyPath + ".lock"
	require.NoError(t, os.WriteFile(freshLock, nil, 0o644))
	freshBefore, err := os.Stat(freshLock)
	require.NoError(t, err)

	job := NewCleanupJob(boardRepo, policyRepo, filepath.Join(dir, "uploads"),
		[]string{boardPath, policyPath}, time.Hour, 10*time.Second, zap.NewNop())
	job.Run()

	// 작업 자체의 스토어 조회가 잠금 파일을 새로 만들므로 inode로 비교한다:
	// 만료된 파일은 치워졌고, 갓 만든 파일은 그대로다
	staleAfter, err := os.Stat(staleLock)
	require.NoError(t, err)
	assert.False(t, os.SameFile(staleBefore, staleAfter))
	freshAfter, err := os.Stat(freshLock)
	require.NoError(t, err)
	assert.True(t, os.SameFile(freshBefore, freshAfter))
}

func TestCleanupJob_KeepsHeldLockDespiteOldMtime(t *testing.T) {
	dir := t.TempDir()
	store := testStore(t)
	boardPath := filepath.Join(dir, "board-data.json")
	policyPath := filepath.Join(dir, "health-policy-posts.json")
	boardRepo := repository.NewBoardRepository(store, boardPath)
	policyRepo := repository.NewPolicyRepository(store, policyPath)

	// 쓰기 중인 프로세스가 잡고 있는 잠금: mtime은 오래됐지만 flock은 살아있다
	heldLock := boardPath + ".lock"
	holder := flock.New(heldLock)
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer holder.Unlock()
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(heldLock, past, past))
	before, err := os.Stat(heldLock)
	require.NoError(t, err)

	job := NewCleanupJob(boardRepo, policyRepo, filepath.Join(dir, "uploads"),
		[]string{boardPath, policyPath}, time.Hour, 10*time.Second, zap.NewNop())
	job.Run()

	// 보유자의 잠금 파일이 제거되거나 교체되지 않았다
	after, err := os.Stat(heldLock)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))
}

func TestCleanupJob_MissingUploadDirIsNoop(t *testing.T) {
	dir := t.TempDir()
	store := testStore(t)
	boardRepo := repository.NewBoardRepository(store, filepath.Join(dir, "board-data.json"))
	policyRepo := repository.NewPolicyRepository(store, filepath.Join(dir, "health-policy-posts.json"))

	job := NewCleanupJob(boardRepo, policyRepo, filepath.Join(dir, "no-such-dir"),
		nil, time.Hour, 10*time.Second, zap.NewNop())
	// 디렉터리가 없어도 패닉 없이 끝나야 한다
	job.Run()
}
