package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	List(ctx context.Context, filters *dto.PostFilters, admin bool) (*dto.PostListResult, error)
	Get(ctx context.Context, id int) (*domain.Post, error)
	GetAdmin(ctx context.Context, id int) (*domain.Post, error)
	Create(ctx context.Context, req *dto.CreatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error)
	Update(ctx context.Context, id int, req *dto.UpdatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error)
	Delete(ctx context.Context, id int, permanent bool) error
	SetPublic(ctx context.Context, id int, public bool) (*domain.Post, error)
	SetDeleted(ctx context.Context, id int, deleted bool) (*domain.Post, error)
	Like(ctx context.Context, id int) (int, error)
	Unlike(ctx context.Context, id int) (int, error)
	AddComment(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error)
	UpdateComment(ctx context.Context, commentID int, req *dto.UpdateCommentRequest) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID int, permanent bool) error
	SetCommentDeleted(ctx context.Context, commentID int, deleted bool) (*domain.Comment, error)
	UnreadProgramCount(ctx context.Context) (int, error)
}

// AssetFetcher pulls externally referenced binaries into the filestore and
// answers existence checks for stale-attachment pruning
type AssetFetcher interface {
	Fetch(ctx context.Context, kind, rawURL string) (string, error)
	Exists(ctx context.Context, kind, fileName string) bool
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	fetcher   AssetFetcher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	fetcher AssetFetcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		fetcher:   fetcher,
		metrics:   m,
		logger:    logger,
	}
}

// List returns a filtered, sorted, optionally paginated view of the board
// store. Public callers only see posts that are not deleted and public;
// admin callers default to not-deleted but can toggle both flags.
func (s *boardServiceImpl) List(ctx context.Context, filters *dto.PostFilters, admin bool) (*dto.PostListResult, error) {
	doc, err := s.boardRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if filters == nil {
		filters = &dto.PostFilters{}
	}

	posts := make([]*domain.Post, 0, len(doc))
	for _, p := range doc {
		if !matchesFilters(p, filters, admin) {
			continue
		}
		posts = append(posts, p)
	}

	sortPosts(posts, filters.SortBy, filters.Order)

	result := &dto.PostListResult{Total: len(posts)}

	if filters.Page != nil || filters.Limit != nil {
		page, limit := 1, 10
		if filters.Page != nil && *filters.Page > 0 {
			page = *filters.Page
		}
		if filters.Limit != nil && *filters.Limit > 0 {
			limit = *filters.Limit
		}
		result.Posts, result.Pagination = paginate(posts, page, limit)
	} else {
		result.Posts = posts
	}

	return result, nil
}

func matchesFilters(p *domain.Post, f *dto.PostFilters, admin bool) bool {
	if admin {
		// is_deleted 필터 기본값은 false (삭제글 숨김)
		wantDeleted := false
		if f.IsDeleted != nil {
			wantDeleted = *f.IsDeleted
		}
		if p.IsDeleted != wantDeleted {
			return false
		}
		if f.IsPublic != nil && p.IsPublic != *f.IsPublic {
			return false
		}
	} else {
		if p.IsDeleted || !p.IsPublic {
			return false
		}
	}

	if f.BoardType != "" && p.BoardType != f.BoardType {
		return false
	}
	if f.CompanyNo != nil && p.CompanyNo != *f.CompanyNo {
		return false
	}
	if f.CategoryCode != "" && p.CategoryCode != f.CategoryCode {
		return false
	}
	if f.Category != "" && p.CategoryName != f.Category {
		return false
	}
	// tag는 직렬화된 배열 문자열에 대한 부분 일치
	if f.Tag != "" && !strings.Contains(p.Tag, f.Tag) {
		return false
	}
	if f.Search != "" {
		if !strings.Contains(p.Title, f.Search) &&
			!strings.Contains(p.Content, f.Search) &&
			!strings.Contains(p.AuthorName, f.Search) {
			return false
		}
	}
	return true
}

// sortPosts orders posts by the requested key. An unknown key falls back to
// descending id; the known keys default to descending direction.
func sortPosts(posts []*domain.Post, sortBy, order string) {
	if sortBy == "" {
		sortBy = "created_at"
	}

	asc := order == "asc"

	var less func(a, b *domain.Post) bool
	switch sortBy {
	case "created_at":
		less = func(a, b *domain.Post) bool { return a.CreatedAt < b.CreatedAt }
	case "like_count":
		less = func(a, b *domain.Post) bool { return a.LikeCount < b.LikeCount }
	case "view_count":
		less = func(a, b *domain.Post) bool { return a.ViewCount < b.ViewCount }
	case "comment_count":
		less = func(a, b *domain.Post) bool { return a.CommentCount < b.CommentCount }
	default:
		sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
		return
	}

	sort.Slice(posts, func(i, j int) bool {
		if asc {
			return less(posts[i], posts[j])
		}
		return less(posts[j], posts[i])
	})
}

func paginate(posts []*domain.Post, page, limit int) ([]*domain.Post, *response.Pagination) {
	total := len(posts)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return posts[start:end], &response.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		PageSize:    limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Get retrieves a post for public callers. Deleted or private posts report
// not-found. Reading a post bumps its view count.
func (s *boardServiceImpl) Get(ctx context.Context, id int) (*domain.Post, error) {
	return s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		if post.IsDeleted || !post.IsPublic {
			return response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
		}
		post.ViewCount++
		return nil
	})
}

// GetAdmin retrieves any non-absent post regardless of visibility, bumps the
// view count, and marks health-programs posts as read.
func (s *boardServiceImpl) GetAdmin(ctx context.Context, id int) (*domain.Post, error) {
	return s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		post.ViewCount++
		if post.BoardType == domain.BoardTypeHealthPrograms {
			post.Step = 1
		}
		return nil
	})
}

// Create assigns the next post id from the current snapshot, resolves
// attachments and thumbnail (external URLs are fetched locally, falling back
// to the remote reference on failure) and persists the new post.
func (s *boardServiceImpl) Create(ctx context.Context, req *dto.CreatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error) {
	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	inputs, err := parseAttachmentInputs(req.Attachments)
	if err != nil {
		return nil, err
	}
	inputs = append(uploaded, inputs...)

	post, err := s.boardRepo.Insert(ctx, func(doc domain.BoardDocument) (*domain.Post, error) {
		now := domain.Now()
		p := &domain.Post{
			ID:          domain.NextPostID(doc),
			Title:       req.Title,
			Content:     req.Content,
			AuthorName:  req.AuthorName,
			AuthorID:    req.AuthorID,
			CompanyName: req.CompanyName,
			CompanyNo:   req.CompanyNo,
			CreatedAt:   now,
			UpdatedAt:   now,
			BoardType:   req.BoardType,
			Tag:         req.Tag,
			Thumbnail:   s.resolveThumbnail(ctx, req.Thumbnail),
			Attachments: []domain.Attachment{},
			Comments:    []domain.Comment{},
			IsPublic:    req.IsPublic == nil || *req.IsPublic,
		}

		// 카테고리 필드는 정책형 게시판에만 존재
		if req.BoardType == domain.BoardTypeHealthPolicy {
			p.CategoryCode = req.CategoryCode
			p.CategoryName = req.CategoryName
		}

		p.Attachments = s.resolveAttachments(ctx, doc, inputs)
		// 스냅샷에는 새 글이 아직 없다
		s.publishPostsGauge(doc, 1)
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPostCreated()
	}

	return post, nil
}

func validateCreatePost(req *dto.CreatePostRequest) error {
	required := []struct{ name, value string }{
		{"title", req.Title},
		{"content", req.Content},
		{"author_name", req.AuthorName},
		{"author_id", req.AuthorID},
		{"board_type", req.BoardType},
	}
	for _, field := range required {
		if field.value == "" {
			return response.NewAppError(response.ErrCodeValidation,
				field.name+" 필드는 필수입니다.", "")
		}
	}
	return nil
}

func parseAttachmentInputs(raw string) ([]dto.AttachmentInput, error) {
	if raw == "" {
		return nil, nil
	}
	var inputs []dto.AttachmentInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"attachments 필드 형식이 올바르지 않습니다.", err.Error())
	}
	return inputs, nil
}

// resolveThumbnail fetches an external thumbnail URL into the filestore;
// on failure the remote reference is kept as-is
func (s *boardServiceImpl) resolveThumbnail(ctx context.Context, thumbnail string) string {
	if !isExternalURL(thumbnail) {
		return thumbnail
	}
	local, err := s.fetcher.Fetch(ctx, filestore.KindThumbnails, thumbnail)
	if err != nil {
		s.logger.Warn("썸네일 다운로드 실패, 원본 URL 유지",
			zap.String("url", thumbnail),
			zap.Error(err))
		return thumbnail
	}
	return local
}

// resolveAttachments assigns globally unique ids from the snapshot and
// resolves each entry's URL with the same fetch-or-fallback rule as
// thumbnails
func (s *boardServiceImpl) resolveAttachments(ctx context.Context, doc domain.BoardDocument, inputs []dto.AttachmentInput) []domain.Attachment {
	attachments := make([]domain.Attachment, 0, len(inputs))
	nextID := domain.NextAttachmentID(doc)

	for _, in := range inputs {
		a := domain.Attachment{
			ID:          nextID,
			Name:        in.Name,
			Size:        in.Size,
			URL:         in.URL,
			DownloadURL: in.DownloadURL,
			CreatedAt:   in.CreatedAt,
		}
		nextID++

		if a.CreatedAt == "" {
			a.CreatedAt = domain.Now()
		}
		if isExternalURL(a.URL) {
			local, err := s.fetcher.Fetch(ctx, filestore.KindAttachments, a.URL)
			if err != nil {
				s.logger.Warn("첨부파일 다운로드 실패, 원본 URL 유지",
					zap.String("url", a.URL),
					zap.Error(err))
			} else {
				a.URL = local
			}
		}
		if a.DownloadURL == "" {
			a.DownloadURL = a.URL
		}

		attachments = append(attachments, a)
	}
	return attachments
}

func isExternalURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// Update applies a partial update: only fields present in the request
// overwrite. Attachment entries whose backing local file no longer exists
// are pruned.
func (s *boardServiceImpl) Update(ctx context.Context, id int, req *dto.UpdatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error) {
	return s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		if req.Title != nil {
			post.Title = *req.Title
		}
		if req.BoardType != nil {
			post.BoardType = *req.BoardType
		}
		if req.Content != nil {
			post.Content = *req.Content
		}
		if req.Tag != nil {
			post.Tag = *req.Tag
		}
		if req.CompanyName != nil {
			post.CompanyName = *req.CompanyName
		}
		if req.CompanyNo != nil {
			post.CompanyNo = *req.CompanyNo
		}
		if req.CategoryCode != nil {
			post.CategoryCode = *req.CategoryCode
		}
		if req.CategoryName != nil {
			post.CategoryName = *req.CategoryName
		}
		if req.Thumbnail != nil {
			post.Thumbnail = s.resolveThumbnail(ctx, *req.Thumbnail)
		}

		if req.Attachments != nil {
			inputs, err := parseAttachmentInputs(*req.Attachments)
			if err != nil {
				return err
			}
			post.Attachments = s.mergeAttachments(ctx, doc, post, inputs)
		}
		if len(uploaded) > 0 {
			post.Attachments = append(post.Attachments, s.resolveAttachments(ctx, doc, uploaded)...)
		}

		post.Attachments = s.pruneStaleAttachments(ctx, post.Attachments)
		post.UpdatedAt = domain.Now()
		return nil
	})
}

// mergeAttachments rebuilds the attachment list from the request: entries
// carrying an id keep it, new entries get fresh global ids and the
// fetch-or-fallback treatment
func (s *boardServiceImpl) mergeAttachments(ctx context.Context, doc domain.BoardDocument, post *domain.Post, inputs []dto.AttachmentInput) []domain.Attachment {
	kept := make([]domain.Attachment, 0, len(inputs))
	fresh := make([]dto.AttachmentInput, 0)

	for _, in := range inputs {
		if in.ID == 0 {
			fresh = append(fresh, in)
			continue
		}
		a := domain.Attachment{
			ID:          in.ID,
			Name:        in.Name,
			Size:        in.Size,
			URL:         in.URL,
			DownloadURL: in.DownloadURL,
			CreatedAt:   in.CreatedAt,
		}
		// 기존 항목은 저장된 메타데이터를 우선한다
		for _, existing := range post.Attachments {
			if existing.ID == in.ID {
				a = existing
				break
			}
		}
		kept = append(kept, a)
	}

	return append(kept, s.resolveAttachments(ctx, doc, fresh)...)
}

// pruneStaleAttachments drops entries whose local backing file is gone
func (s *boardServiceImpl) pruneStaleAttachments(ctx context.Context, attachments []domain.Attachment) []domain.Attachment {
	alive := make([]domain.Attachment, 0, len(attachments))
	for _, a := range attachments {
		if name, local := localFileName(a.URL, filestore.KindAttachments); local {
			if !s.fetcher.Exists(ctx, filestore.KindAttachments, name) {
				s.logger.Info("존재하지 않는 첨부파일 정리",
					zap.Int("attachment_id", a.ID),
					zap.String("url", a.URL))
				continue
			}
		}
		alive = append(alive, a)
	}
	return alive
}

// localFileName extracts the stored file name from a local upload URL like
// /uploads/attachments/169...-uuid.pdf
func localFileName(u, kind string) (string, bool) {
	prefix := "/uploads/" + kind + "/"
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}
	return strings.TrimPrefix(u, prefix), true
}

// publishPostsGauge reports the non-deleted post count of the snapshot;
// extra covers a post the snapshot does not contain yet
func (s *boardServiceImpl) publishPostsGauge(doc domain.BoardDocument, extra int) {
	if s.metrics == nil {
		return
	}
	n := extra
	for _, p := range doc {
		if !p.IsDeleted {
			n++
		}
	}
	s.metrics.SetPostsTotal(n)
}

// Delete soft-deletes by default; permanent removes the record physically
func (s *boardServiceImpl) Delete(ctx context.Context, id int, permanent bool) error {
	if permanent {
		if err := s.boardRepo.Remove(ctx, id); err != nil {
			return err
		}
		if s.metrics != nil {
			if doc, err := s.boardRepo.FindAll(ctx); err == nil {
				s.publishPostsGauge(doc, 0)
			}
		}
		return nil
	}
	_, err := s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		post.IsDeleted = true
		post.UpdatedAt = domain.Now()
		s.publishPostsGauge(doc, 0)
		return nil
	})
	return err
}

// SetPublic toggles the is_public flag
func (s *boardServiceImpl) SetPublic(ctx context.Context, id int, public bool) (*domain.Post, error) {
	return s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		post.IsPublic = public
		post.UpdatedAt = domain.Now()
		return nil
	})
}

// SetDeleted toggles the is_deleted flag; false restores a soft-deleted post
func (s *boardServiceImpl) SetDeleted(ctx context.Context, id int, deleted bool) (*domain.Post, error) {
	return s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		post.IsDeleted = deleted
		post.UpdatedAt = domain.Now()
		s.publishPostsGauge(doc, 0)
		return nil
	})
}

// Like increments the like counter and returns the new count
func (s *boardServiceImpl) Like(ctx context.Context, id int) (int, error) {
	post, err := s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		post.LikeCount++
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordLike("inc")
	}
	return post.LikeCount, nil
}

// Unlike decrements the like counter, flooring at zero
func (s *boardServiceImpl) Unlike(ctx context.Context, id int) (int, error) {
	post, err := s.boardRepo.Update(ctx, id, func(doc domain.BoardDocument, post *domain.Post) error {
		if post.LikeCount > 0 {
			post.LikeCount--
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordLike("dec")
	}
	return post.LikeCount, nil
}

// AddComment appends a comment with a globally unique id and recomputes the
// post's comment count
func (s *boardServiceImpl) AddComment(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error) {
	if req.PostID == 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "post_id 필드는 필수입니다.", "")
	}
	if req.Content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "content 필드는 필수입니다.", "")
	}

	var created domain.Comment
	err := s.boardRepo.Mutate(ctx, func(doc domain.BoardDocument) error {
		post, ok := doc.Get(req.PostID)
		if !ok {
			return response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
		}
		created = domain.Comment{
			ID:         domain.NextCommentID(doc),
			PostID:     req.PostID,
			AuthorID:   req.AuthorID,
			AuthorName: req.AuthorName,
			Content:    req.Content,
			CreatedAt:  domain.CommentNow(),
		}
		post.Comments = append(post.Comments, created)
		post.RecountComments()
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

// findComment locates a comment by its globally unique id
func findComment(doc domain.BoardDocument, commentID int) (*domain.Post, int) {
	for _, post := range doc {
		for i := range post.Comments {
			if post.Comments[i].ID == commentID {
				return post, i
			}
		}
	}
	return nil, -1
}

// UpdateComment replaces a comment's content only
func (s *boardServiceImpl) UpdateComment(ctx context.Context, commentID int, req *dto.UpdateCommentRequest) (*domain.Comment, error) {
	if req.Content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "content 필드는 필수입니다.", "")
	}

	var updated domain.Comment
	err := s.boardRepo.Mutate(ctx, func(doc domain.BoardDocument) error {
		post, idx := findComment(doc, commentID)
		if post == nil {
			return response.NewAppError(response.ErrCodeNotFound, "댓글을 찾을 수 없습니다.", "")
		}
		post.Comments[idx].Content = req.Content
		updated = post.Comments[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment soft-deletes by default; permanent removes the entry.
// Either way the post's comment count is recomputed.
func (s *boardServiceImpl) DeleteComment(ctx context.Context, commentID int, permanent bool) error {
	return s.boardRepo.Mutate(ctx, func(doc domain.BoardDocument) error {
		post, idx := findComment(doc, commentID)
		if post == nil {
			return response.NewAppError(response.ErrCodeNotFound, "댓글을 찾을 수 없습니다.", "")
		}
		if permanent {
			post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
		} else {
			post.Comments[idx].IsDeleted = true
		}
		post.RecountComments()
		return nil
	})
}

// SetCommentDeleted toggles a comment's soft-delete flag and recomputes the
// post's comment count
func (s *boardServiceImpl) SetCommentDeleted(ctx context.Context, commentID int, deleted bool) (*domain.Comment, error) {
	var updated domain.Comment
	err := s.boardRepo.Mutate(ctx, func(doc domain.BoardDocument) error {
		post, idx := findComment(doc, commentID)
		if post == nil {
			return response.NewAppError(response.ErrCodeNotFound, "댓글을 찾을 수 없습니다.", "")
		}
		post.Comments[idx].IsDeleted = deleted
		post.RecountComments()
		updated = post.Comments[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UnreadProgramCount counts health-programs posts not yet read (step 0)
func (s *boardServiceImpl) UnreadProgramCount(ctx context.Context) (int, error) {
	doc, err := s.boardRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range doc {
		if p.BoardType == domain.BoardTypeHealthPrograms && !p.IsDeleted && p.Step == 0 {
			count++
		}
	}
	return count, nil
}
