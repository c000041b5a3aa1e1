package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

func policyRouter(svc *MockPolicyService) *gin.Engine {
	r := gin.New()
	h := NewPolicyHandler(svc)
	policy := r.Group("/api/health/policy")
	{
		policy.GET("", h.ListPolicies)
		policy.POST("", h.CreatePolicy)
		policy.GET("/:id", h.GetPolicy)
		policy.PUT("/:id", h.UpdatePolicy)
		policy.DELETE("/:id", h.DeletePolicy)
		policy.PATCH("/:id/:action", h.SetPolicyVisibility)
		policy.POST("/:id/like", h.LikePolicy)
		policy.DELETE("/:id/like", h.UnlikePolicy)
		policy.POST("/:id/comments", h.CreatePolicyComment)
		policy.PUT("/:id/comments/:commentId", h.UpdatePolicyComment)
		policy.DELETE("/:id/comments/:commentId", h.DeletePolicyComment)
	}
	return r
}

func TestPolicyHandler_ListPoliciesParsesCamelCaseQuery(t *testing.T) {
	svc := &MockPolicyService{
		ListFunc: func(ctx context.Context, filters *dto.PolicyFilters) (*dto.PolicyListResult, error) {
			assert.Equal(t, "PHYSICAL", filters.CategoryCode)
			require.NotNil(t, filters.IsVisible)
			assert.False(t, *filters.IsVisible)
			return &dto.PolicyListResult{
				Policies: []*domain.Policy{{ID: 1, Thumbnail: domain.DefaultPolicyThumbnail}},
				Total:    1,
			}, nil
		},
	}
	r := policyRouter(svc)

	w := performRequest(r, http.MethodGet, "/api/health/policy?categoryCode=PHYSICAL&isVisible=false", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	data := body["data"].([]interface{})
	policy := data[0].(map[string]interface{})
	assert.Equal(t, "http://example.com"+domain.DefaultPolicyThumbnail, policy["thumbnail"])
}

func TestPolicyHandler_GetPolicyNotFound(t *testing.T) {
	svc := &MockPolicyService{
		GetFunc: func(ctx context.Context, id int) (*domain.Policy, error) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "정책을 찾을 수 없습니다.", "")
		},
	}
	r := policyRouter(svc)

	w := performRequest(r, http.MethodGet, "/api/health/policy/42", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPolicyHandler_CreatePolicyFormBinding(t *testing.T) {
	svc := &MockPolicyService{
		CreateFunc: func(ctx context.Context, req *dto.CreatePolicyRequest) (*domain.Policy, error) {
			assert.Equal(t, "새 정책", req.Title)
			assert.Equal(t, `["복지"]`, req.Tags)
			return &domain.Policy{ID: 1, Title: req.Title}, nil
		},
	}
	r := policyRouter(svc)

	form := url.Values{}
	form.Set("title", "새 정책")
	form.Set("content", "내용")
	form.Set("tags", `["복지"]`)

	w := performRequest(r, http.MethodPost, "/api/health/policy", form.Encode(), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPolicyHandler_VisibilityActions(t *testing.T) {
	var gotVisible *bool
	svc := &MockPolicyService{
		SetVisibleFunc: func(ctx context.Context, id int, visible bool) (*domain.Policy, error) {
			gotVisible = &visible
			return &domain.Policy{ID: id, IsVisible: visible}, nil
		},
	}
	r := policyRouter(svc)

	w := performRequest(r, http.MethodPatch, "/api/health/policy/1/visible", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotVisible)
	assert.True(t, *gotVisible)

	w = performRequest(r, http.MethodPatch, "/api/health/policy/1/invisible", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, *gotVisible)

	gotVisible = nil
	w = performRequest(r, http.MethodPatch, "/api/health/policy/1/publish", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, gotVisible)
}

func TestPolicyHandler_LikeUsesCamelCaseKey(t *testing.T) {
	svc := &MockPolicyService{
		LikeFunc: func(ctx context.Context, id int) (int, error) { return 9, nil },
	}
	r := policyRouter(svc)

	w := performRequest(r, http.MethodPost, "/api/health/policy/1/like", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(9), body["likeCount"])
	_, hasSnake := body["like_count"]
	assert.False(t, hasSnake)
}

func TestPolicyHandler_CommentRoutes(t *testing.T) {
	svc := &MockPolicyService{
		AddCommentFunc: func(ctx context.Context, policyID int, req *dto.CreatePolicyCommentRequest) (*domain.PolicyComment, error) {
			assert.Equal(t, 5, policyID)
			return &domain.PolicyComment{ID: 1, PostID: policyID, Content: req.Content}, nil
		},
		UpdateCommentFunc: func(ctx context.Context, policyID, commentID int, content string) (*domain.PolicyComment, error) {
			assert.Equal(t, 5, policyID)
			assert.Equal(t, 2, commentID)
			return &domain.PolicyComment{ID: commentID, Content: content}, nil
		},
		DeleteCommentFunc: func(ctx context.Context, policyID, commentID int) error {
			assert.Equal(t, 5, policyID)
			assert.Equal(t, 2, commentID)
			return nil
		},
	}
	r := policyRouter(svc)

	w := performRequest(r, http.MethodPost, "/api/health/policy/5/comments",
		`{"content":"댓글"}`, "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPut, "/api/health/policy/5/comments/2",
		`{"content":"수정"}`, "application/json")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, "/api/health/policy/5/comments/2", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
