package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

func testPolicyRepository(t *testing.T) PolicyRepository {
	t.Helper()
	store := storage.New(storage.Options{
		Retries:        3,
		MinBackoff:     time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		StaleThreshold: 50 * time.Millisecond,
	}, zap.NewNop(), nil)
	return NewPolicyRepository(store, filepath.Join(t.TempDir(), "health-policy-posts.json"))
}

func insertPolicy(t *testing.T, repo PolicyRepository, title string) *domain.Policy {
	t.Helper()
	policy, err := repo.Insert(context.Background(), func(doc domain.PolicyDocument) (*domain.Policy, error) {
		return &domain.Policy{
			ID:        domain.NextPolicyID(doc),
			Title:     title,
			IsVisible: true,
		}, nil
	})
	require.NoError(t, err)
	return policy
}

func TestPolicyRepository_InsertPrependsToDocument(t *testing.T) {
	repo := testPolicyRepository(t)

	insertPolicy(t, repo, "첫 정책")
	insertPolicy(t, repo, "둘째 정책")

	doc, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, doc, 2)
	// 최신 정책이 문서 맨 앞에 온다
	assert.Equal(t, "둘째 정책", doc[0].Title)
	assert.Equal(t, 2, doc[0].ID)
	assert.Equal(t, "첫 정책", doc[1].Title)
}

func TestPolicyRepository_FindByIDNotFound(t *testing.T) {
	repo := testPolicyRepository(t)

	_, err := repo.FindByID(context.Background(), 7)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestPolicyRepository_UpdatePersistsMutation(t *testing.T) {
	repo := testPolicyRepository(t)
	policy := insertPolicy(t, repo, "수정 전")

	_, err := repo.Update(context.Background(), policy.ID, func(p *domain.Policy) error {
		p.LikeCount = 3
		p.IsVisible = false
		return nil
	})
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LikeCount)
	assert.False(t, got.IsVisible)
}

func TestPolicyRepository_RemoveKeepsRemainingOrder(t *testing.T) {
	repo := testPolicyRepository(t)
	insertPolicy(t, repo, "정책 1")
	target := insertPolicy(t, repo, "정책 2")
	insertPolicy(t, repo, "정책 3")

	require.NoError(t, repo.Remove(context.Background(), target.ID))

	doc, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Equal(t, "정책 3", doc[0].Title)
	assert.Equal(t, "정책 1", doc[1].Title)

	err = repo.Remove(context.Background(), target.ID)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}
