package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// PolicyService defines the interface for policy business logic
type PolicyService interface {
	List(ctx context.Context, filters *dto.PolicyFilters) (*dto.PolicyListResult, error)
	Get(ctx context.Context, id int) (*domain.Policy, error)
	Create(ctx context.Context, req *dto.CreatePolicyRequest) (*domain.Policy, error)
	Update(ctx context.Context, id int, req *dto.UpdatePolicyRequest) (*domain.Policy, error)
	Delete(ctx context.Context, id int) error
	SetVisible(ctx context.Context, id int, visible bool) (*domain.Policy, error)
	Like(ctx context.Context, id int) (int, error)
	Unlike(ctx context.Context, id int) (int, error)
	AddComment(ctx context.Context, policyID int, req *dto.CreatePolicyCommentRequest) (*domain.PolicyComment, error)
	UpdateComment(ctx context.Context, policyID, commentID int, content string) (*domain.PolicyComment, error)
	DeleteComment(ctx context.Context, policyID, commentID int) error
}

type policyServiceImpl struct {
	policyRepo repository.PolicyRepository
	fetcher    AssetFetcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewPolicyService creates a new instance of PolicyService
func NewPolicyService(
	policyRepo repository.PolicyRepository,
	fetcher AssetFetcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) PolicyService {
	return &policyServiceImpl{
		policyRepo: policyRepo,
		fetcher:    fetcher,
		metrics:    m,
		logger:     logger,
	}
}

// List returns a filtered, optionally paginated view of the policy store.
// Without an explicit isVisible filter only visible policies are returned.
// Document order (newest first) is preserved.
func (s *policyServiceImpl) List(ctx context.Context, filters *dto.PolicyFilters) (*dto.PolicyListResult, error) {
	doc, err := s.policyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if filters == nil {
		filters = &dto.PolicyFilters{}
	}

	policies := make([]*domain.Policy, 0, len(doc))
	for _, p := range doc {
		if !matchesPolicyFilters(p, filters) {
			continue
		}
		policies = append(policies, p)
	}

	result := &dto.PolicyListResult{Total: len(policies)}

	if filters.Page != nil || filters.Limit != nil {
		page, limit := 1, 10
		if filters.Page != nil && *filters.Page > 0 {
			page = *filters.Page
		}
		if filters.Limit != nil && *filters.Limit > 0 {
			limit = *filters.Limit
		}
		result.Policies, result.Pagination = paginatePolicies(policies, page, limit)
	} else {
		result.Policies = policies
	}

	return result, nil
}

func matchesPolicyFilters(p *domain.Policy, f *dto.PolicyFilters) bool {
	if f.IsVisible == nil {
		if !p.IsVisible {
			return false
		}
	} else if p.IsVisible != *f.IsVisible {
		return false
	}

	if f.CategoryCode != "" && p.CategoryCode != f.CategoryCode {
		return false
	}
	if f.CategoryName != "" && p.CategoryName != f.CategoryName {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	if f.Search != "" {
		if !strings.Contains(p.Title, f.Search) &&
			!strings.Contains(p.Content, f.Search) &&
			!strings.Contains(p.Author, f.Search) {
			return false
		}
	}
	return true
}

func paginatePolicies(policies []*domain.Policy, page, limit int) ([]*domain.Policy, *response.Pagination) {
	total := len(policies)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return policies[start:end], &response.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		PageSize:    limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Get retrieves a visible policy and bumps its view count; invisible
// policies report not-found
func (s *policyServiceImpl) Get(ctx context.Context, id int) (*domain.Policy, error) {
	return s.policyRepo.Update(ctx, id, func(policy *domain.Policy) error {
		if !policy.IsVisible {
			return response.NewAppError(response.ErrCodeNotFound, "정책을 찾을 수 없습니다.", "")
		}
		policy.ViewCount++
		return nil
	})
}

// Create persists a new policy at the head of the document
func (s *policyServiceImpl) Create(ctx context.Context, req *dto.CreatePolicyRequest) (*domain.Policy, error) {
	if req.Title == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "title 필드는 필수입니다.", "")
	}
	if req.Content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "content 필드는 필수입니다.", "")
	}
	if req.Author == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "author 필드는 필수입니다.", "")
	}

	tags, err := parsePolicyTags(req.Tags)
	if err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.Insert(ctx, func(doc domain.PolicyDocument) (*domain.Policy, error) {
		thumbnail := req.Thumbnail
		if thumbnail == "" {
			thumbnail = domain.DefaultPolicyThumbnail
		} else if isExternalURL(thumbnail) {
			local, fetchErr := s.fetcher.Fetch(ctx, filestore.KindThumbnails, thumbnail)
			if fetchErr != nil {
				s.logger.Warn("정책 썸네일 다운로드 실패, 원본 URL 유지",
					zap.String("url", thumbnail),
					zap.Error(fetchErr))
			} else {
				thumbnail = local
			}
		}

		return &domain.Policy{
			ID:           domain.NextPolicyID(doc),
			Title:        req.Title,
			Content:      req.Content,
			Author:       req.Author,
			CreateDate:   domain.PolicyToday(),
			CategoryCode: req.CategoryCode,
			CategoryName: req.CategoryName,
			Tags:         tags,
			IsVisible:    true,
			Thumbnail:    thumbnail,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPolicyCreated()
	}
	return policy, nil
}

func parsePolicyTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"tags 필드 형식이 올바르지 않습니다.", err.Error())
	}
	return tags, nil
}

// Update applies a partial update; only fields present in the request
// overwrite
func (s *policyServiceImpl) Update(ctx context.Context, id int, req *dto.UpdatePolicyRequest) (*domain.Policy, error) {
	var tags []string
	if req.Tags != nil {
		parsed, err := parsePolicyTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		tags = parsed
	}

	return s.policyRepo.Update(ctx, id, func(policy *domain.Policy) error {
		if req.Title != nil {
			policy.Title = *req.Title
		}
		if req.Content != nil {
			policy.Content = *req.Content
		}
		if req.CategoryCode != nil {
			policy.CategoryCode = *req.CategoryCode
		}
		if req.CategoryName != nil {
			policy.CategoryName = *req.CategoryName
		}
		if req.Tags != nil {
			policy.Tags = tags
		}
		if req.Thumbnail != nil {
			thumbnail := *req.Thumbnail
			if isExternalURL(thumbnail) {
				local, fetchErr := s.fetcher.Fetch(ctx, filestore.KindThumbnails, thumbnail)
				if fetchErr != nil {
					s.logger.Warn("정책 썸네일 다운로드 실패, 원본 URL 유지",
						zap.String("url", thumbnail),
						zap.Error(fetchErr))
				} else {
					thumbnail = local
				}
			}
			policy.Thumbnail = thumbnail
		}
		return nil
	})
}

// Delete removes a policy physically
func (s *policyServiceImpl) Delete(ctx context.Context, id int) error {
	return s.policyRepo.Remove(ctx, id)
}

// SetVisible toggles the isVisible flag
func (s *policyServiceImpl) SetVisible(ctx context.Context, id int, visible bool) (*domain.Policy, error) {
	return s.policyRepo.Update(ctx, id, func(policy *domain.Policy) error {
		policy.IsVisible = visible
		return nil
	})
}

// Like increments the like counter and returns the new count
func (s *policyServiceImpl) Like(ctx context.Context, id int) (int, error) {
	policy, err := s.policyRepo.Update(ctx, id, func(policy *domain.Policy) error {
		policy.LikeCount++
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordLike("inc")
	}
	return policy.LikeCount, nil
}

// Unlike decrements the like counter, flooring at zero
func (s *policyServiceImpl) Unlike(ctx context.Context, id int) (int, error) {
	policy, err := s.policyRepo.Update(ctx, id, func(policy *domain.Policy) error {
		if policy.LikeCount > 0 {
			policy.LikeCount--
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordLike("dec")
	}
	return policy.LikeCount, nil
}

// AddComment appends a comment with a per-policy id and keeps commentCount
// equal to the number of comments
func (s *policyServiceImpl) AddComment(ctx context.Context, policyID int, req *dto.CreatePolicyCommentRequest) (*domain.PolicyComment, error) {
	if req.Content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "content 필드는 필수입니다.", "")
	}

	var created domain.PolicyComment
	_, err := s.policyRepo.Update(ctx, policyID, func(policy *domain.Policy) error {
		created = domain.PolicyComment{
			ID:          domain.NextPolicyCommentID(policy),
			PostID:      policyID,
			AuthorID:    req.AuthorID,
			AuthorName:  req.AuthorName,
			CompanyName: req.CompanyName,
			Content:     req.Content,
			CreatedAt:   domain.CommentNow(),
		}
		policy.Comments = append(policy.Comments, created)
		policy.CommentCount = len(policy.Comments)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordCommentAdded()
	}
	return &created, nil
}

// UpdateComment replaces a comment's content only
func (s *policyServiceImpl) UpdateComment(ctx context.Context, policyID, commentID int, content string) (*domain.PolicyComment, error) {
	if content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "content 필드는 필수입니다.", "")
	}

	var updated domain.PolicyComment
	_, err := s.policyRepo.Update(ctx, policyID, func(policy *domain.Policy) error {
		for i := range policy.Comments {
			if policy.Comments[i].ID == commentID {
				policy.Comments[i].Content = content
				updated = policy.Comments[i]
				return nil
			}
		}
		return response.NewAppError(response.ErrCodeNotFound, "댓글을 찾을 수 없습니다.", "")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment removes a comment physically and recomputes commentCount
func (s *policyServiceImpl) DeleteComment(ctx context.Context, policyID, commentID int) error {
	_, err := s.policyRepo.Update(ctx, policyID, func(policy *domain.Policy) error {
		for i := range policy.Comments {
			if policy.Comments[i].ID == commentID {
				policy.Comments = append(policy.Comments[:i], policy.Comments[i+1:]...)
				policy.CommentCount = len(policy.Comments)
				return nil
			}
		}
		return response.NewAppError(response.ErrCodeNotFound, "댓글을 찾을 수 없습니다.", "")
	})
	return err
}
