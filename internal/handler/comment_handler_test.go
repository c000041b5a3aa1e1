package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

func commentRouter(svc *MockBoardService) *gin.Engine {
	r := gin.New()
	h := NewCommentHandler(svc)
	comments := r.Group("/api/board/comments")
	{
		comments.POST("", h.CreateComment)
		comments.PUT("/:commentId", h.UpdateComment)
		comments.DELETE("/:commentId", h.DeleteComment)
		comments.PATCH("/:commentId/deleted", h.SetCommentDeleted)
	}
	return r
}

func TestCommentHandler_CreateComment(t *testing.T) {
	svc := &MockBoardService{
		AddCommentFunc: func(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error) {
			assert.Equal(t, 3, req.PostID)
			assert.Equal(t, "댓글 내용", req.Content)
			return &domain.Comment{ID: 1, PostID: req.PostID, Content: req.Content}, nil
		},
	}
	r := commentRouter(svc)

	w := performRequest(r, http.MethodPost, "/api/board/comments",
		`{"post_id":3,"author_id":"hong","author_name":"홍길동","content":"댓글 내용"}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "댓글이 등록되었습니다.", body["message"])
}

func TestCommentHandler_CreateCommentPostNotFound(t *testing.T) {
	svc := &MockBoardService{
		AddCommentFunc: func(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
		},
	}
	r := commentRouter(svc)

	w := performRequest(r, http.MethodPost, "/api/board/comments",
		`{"post_id":99,"content":"댓글"}`, "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler_UpdateComment(t *testing.T) {
	svc := &MockBoardService{
		UpdateCommentFunc: func(ctx context.Context, commentID int, req *dto.UpdateCommentRequest) (*domain.Comment, error) {
			assert.Equal(t, 7, commentID)
			return &domain.Comment{ID: commentID, Content: req.Content}, nil
		},
	}
	r := commentRouter(svc)

	w := performRequest(r, http.MethodPut, "/api/board/comments/7",
		`{"content":"수정된 댓글"}`, "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentHandler_DeleteCommentPermanentFlag(t *testing.T) {
	var gotPermanent bool
	svc := &MockBoardService{
		DeleteCommentFunc: func(ctx context.Context, commentID int, permanent bool) error {
			gotPermanent = permanent
			return nil
		},
	}
	r := commentRouter(svc)

	w := performRequest(r, http.MethodDelete, "/api/board/comments/7?permanent=true", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotPermanent)
}

func TestCommentHandler_SetCommentDeletedRequiresFlag(t *testing.T) {
	called := false
	svc := &MockBoardService{
		SetCommentDeletedFunc: func(ctx context.Context, commentID int, deleted bool) (*domain.Comment, error) {
			called = true
			return &domain.Comment{ID: commentID, IsDeleted: deleted}, nil
		},
	}
	r := commentRouter(svc)

	// is_deleted 없는 요청은 400
	w := performRequest(r, http.MethodPatch, "/api/board/comments/7/deleted", `{}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)

	w = performRequest(r, http.MethodPatch, "/api/board/comments/7/deleted",
		`{"is_deleted":false}`, "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
