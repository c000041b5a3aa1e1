package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

func newTestPolicyService(t *testing.T, fetcher AssetFetcher) (PolicyService, repository.PolicyRepository) {
	t.Helper()
	store := storage.New(storage.Options{
		Retries:        3,
		MinBackoff:     time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		StaleThreshold: 50 * time.Millisecond,
	}, zap.NewNop(), nil)
	repo := repository.NewPolicyRepository(store, filepath.Join(t.TempDir(), "health-policy-posts.json"))
	if fetcher == nil {
		fetcher = &MockAssetFetcher{}
	}
	return NewPolicyService(repo, fetcher, nil, zap.NewNop()), repo
}

func TestPolicyService_CreateDefaults(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{
		Title:   "건강검진 지원",
		Content: "<p>내용</p>",
		Author:  "관리자",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, policy.ID)
	assert.Equal(t, domain.DefaultPolicyThumbnail, policy.Thumbnail)
	assert.Equal(t, domain.PolicyToday(), policy.CreateDate)
	assert.True(t, policy.IsVisible)
	assert.Equal(t, []string{}, policy.Tags)
	assert.Equal(t, 0, policy.ViewCount)
	assert.Equal(t, 0, policy.LikeCount)
}

func TestPolicyService_CreateValidation(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	var appErr *response.AppError
	_, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Content: "내용", Author: "관리자"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "title 필드는 필수입니다.", appErr.Message)

	_, err = svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "제목", Author: "관리자"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "content 필드는 필수입니다.", appErr.Message)

	_, err = svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "제목", Content: "내용"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "author 필드는 필수입니다.", appErr.Message)

	_, err = svc.Create(context.Background(), &dto.CreatePolicyRequest{
		Title: "제목", Content: "내용", Author: "관리자", Tags: `["복지"`,
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestPolicyService_CreateParsesTags(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{
		Title: "제목", Content: "내용", Author: "관리자", Tags: `["신체건강","복지"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"신체건강", "복지"}, policy.Tags)
}

func TestPolicyService_ListDefaultsToVisibleOnly(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	visible, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "공개", Content: "내용", Author: "관리자"})
	require.NoError(t, err)
	hidden, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "비공개", Content: "내용", Author: "관리자"})
	require.NoError(t, err)
	_, err = svc.SetVisible(context.Background(), hidden.ID, false)
	require.NoError(t, err)

	result, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Policies, 1)
	assert.Equal(t, visible.ID, result.Policies[0].ID)

	// isVisible=false 필터로 숨김 정책만
	result, err = svc.List(context.Background(), &dto.PolicyFilters{IsVisible: ptr(false)})
	require.NoError(t, err)
	require.Len(t, result.Policies, 1)
	assert.Equal(t, hidden.ID, result.Policies[0].ID)
}

func TestPolicyService_ListPreservesDocumentOrder(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	for _, title := range []string{"첫째", "둘째", "셋째"} {
		_, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: title, Content: "내용", Author: "관리자"})
		require.NoError(t, err)
	}

	result, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Policies, 3)
	// 최신 정책이 앞에 온다
	assert.Equal(t, "셋째", result.Policies[0].Title)
	assert.Equal(t, "첫째", result.Policies[2].Title)
}

func TestPolicyService_GetHidesInvisible(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	_, err = svc.SetVisible(context.Background(), policy.ID, false)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), policy.ID)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestPolicyService_UpdateOverwritesOnPresenceOnly(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{
		Title: "수정 전", Content: "내용", Author: "관리자", Tags: `["복지"]`,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), policy.ID, &dto.UpdatePolicyRequest{
		Title: ptr("수정 후"),
		Tags:  ptr(`[]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "수정 후", updated.Title)
	assert.Equal(t, "내용", updated.Content)
	assert.Empty(t, updated.Tags)
}

func TestPolicyService_LikeUnlikeFloorsAtZero(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	count, err := svc.Like(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.Unlike(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = svc.Unlike(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPolicyService_CommentIDsArePerPolicy(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	first, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책 1", Content: "내용", Author: "관리자"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책 2", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	c1, err := svc.AddComment(context.Background(), first.ID, &dto.CreatePolicyCommentRequest{Content: "댓글"})
	require.NoError(t, err)
	c2, err := svc.AddComment(context.Background(), first.ID, &dto.CreatePolicyCommentRequest{Content: "댓글"})
	require.NoError(t, err)
	// 다른 정책에서는 id가 1부터 다시 시작한다
	other, err := svc.AddComment(context.Background(), second.ID, &dto.CreatePolicyCommentRequest{Content: "댓글"})
	require.NoError(t, err)

	assert.Equal(t, 1, c1.ID)
	assert.Equal(t, 2, c2.ID)
	assert.Equal(t, 1, other.ID)
}

func TestPolicyService_CommentCountTracksLength(t *testing.T) {
	svc, repo := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	c1, err := svc.AddComment(context.Background(), policy.ID, &dto.CreatePolicyCommentRequest{Content: "첫 댓글"})
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), policy.ID, &dto.CreatePolicyCommentRequest{Content: "둘째 댓글"})
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentCount)

	// 정책 댓글 삭제는 물리 삭제다
	require.NoError(t, svc.DeleteComment(context.Background(), policy.ID, c1.ID))
	got, err = repo.FindByID(context.Background(), policy.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 1)
	assert.Equal(t, 1, got.CommentCount)
}

func TestPolicyService_UpdateCommentNotFound(t *testing.T) {
	svc, _ := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	_, err = svc.UpdateComment(context.Background(), policy.ID, 99, "수정")
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestPolicyService_DeleteRemovesRecord(t *testing.T) {
	svc, repo := newTestPolicyService(t, nil)

	policy, err := svc.Create(context.Background(), &dto.CreatePolicyRequest{Title: "정책", Content: "내용", Author: "관리자"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), policy.ID))

	_, err = repo.FindByID(context.Background(), policy.ID)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}
