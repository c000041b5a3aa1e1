package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
)

// BoardHandler serves the public board surface
type BoardHandler struct {
	boardService service.BoardService
	fileService  service.FileService
}

func NewBoardHandler(boardService service.BoardService, fileService service.FileService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		fileService:  fileService,
	}
}

// ListPosts godoc
// @Summary      게시글 목록 조회
// @Description  공개된 게시글 목록을 필터/정렬/페이지네이션하여 조회합니다
// @Tags         board
// @Produce      json
// @Param        board_type query string false "게시판 구분"
// @Param        tag query string false "태그"
// @Param        search query string false "검색어"
// @Param        sort_by query string false "정렬 기준" Enums(created_at, like_count, view_count, comment_count)
// @Param        order query string false "정렬 방향" Enums(asc, desc)
// @Param        page query int false "페이지 번호"
// @Param        limit query int false "페이지 크기"
// @Success      200 {object} response.ListResponse
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /board [get]
func (h *BoardHandler) ListPosts(c *gin.Context) {
	filters := parsePostFilters(c)
	// 공개 목록은 가시성 필터를 강제한다
	filters.IsPublic = nil
	filters.IsDeleted = nil

	result, err := h.boardService.List(c.Request.Context(), filters, false)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data := service.ShapePosts(result.Posts, requestBase(c))
	if result.Pagination != nil {
		response.SendPage(c, http.StatusOK, data, *result.Pagination)
		return
	}
	response.SendList(c, http.StatusOK, data, result.Total)
}

// GetPost godoc
// @Summary      게시글 상세 조회
// @Description  공개된 게시글 하나를 조회하고 조회수를 올립니다
// @Tags         board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /board/{id} [get]
func (h *BoardHandler) GetPost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	post, err := h.boardService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePost(post, requestBase(c)), "")
}

// CreatePost godoc
// @Summary      게시글 작성
// @Description  multipart 폼으로 게시글을 작성합니다 (thumbnail, attachments 파일 포함 가능)
// @Tags         board
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "필수 필드 누락"
// @Router       /board [post]
func (h *BoardHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	uploaded, err := storeUploads(c, h.fileService, &req.Thumbnail)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	post, err := h.boardService.Create(c.Request.Context(), &req, uploaded)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, service.ShapePost(post, requestBase(c)), "게시글이 등록되었습니다.")
}

// UpdatePost godoc
// @Summary      게시글 수정
// @Description  전달된 필드만 덮어쓰는 부분 수정입니다
// @Tags         board
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /board/{id} [put]
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	uploaded, err := storeUpdateUploads(c, h.fileService, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	post, err := h.boardService.Update(c.Request.Context(), id, &req, uploaded)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePost(post, requestBase(c)), "게시글이 수정되었습니다.")
}

// DeletePost godoc
// @Summary      게시글 삭제
// @Description  기본은 소프트 삭제, permanent=true면 물리 삭제합니다
// @Tags         board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Param        permanent query bool false "물리 삭제 여부"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /board/{id} [delete]
func (h *BoardHandler) DeletePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := h.boardService.Delete(c.Request.Context(), id, permanent); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil, "게시글이 삭제되었습니다.")
}

// LikePost godoc
// @Summary      게시글 좋아요
// @Tags         board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} map[string]interface{}
// @Router       /board/{id}/like [post]
func (h *BoardHandler) LikePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	count, err := h.boardService.Like(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "like_count": count})
}

// UnlikePost godoc
// @Summary      게시글 좋아요 취소
// @Description  좋아요 수는 0 아래로 내려가지 않습니다
// @Tags         board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} map[string]interface{}
// @Router       /board/{id}/like [delete]
func (h *BoardHandler) UnlikePost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	count, err := h.boardService.Unlike(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "like_count": count})
}

// CheckPrograms godoc
// @Summary      읽지 않은 건강 프로그램 수 조회
// @Tags         board
// @Produce      json
// @Success      200 {object} response.SuccessResponse
// @Router       /board/health-programs/check [get]
func (h *BoardHandler) CheckPrograms(c *gin.Context) {
	count, err := h.boardService.UnreadProgramCount(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"count": count}, "")
}

// storeUploads persists the multipart binary parts of a create request:
// the thumbnail file (replacing the form value with its stored URL) and
// the attachments files (returned as attachment inputs)
func storeUploads(c *gin.Context, fs service.FileService, thumbnail *string) ([]dto.AttachmentInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// 파일 파트가 없는 폼도 허용한다
		return nil, nil
	}

	if files := form.File["thumbnail"]; len(files) > 0 {
		stored, err := fs.Upload(c.Request.Context(), files[0], filestore.KindThumbnails)
		if err != nil {
			return nil, err
		}
		*thumbnail = stored.URL
	}

	return storeAttachmentFiles(c, fs, form.File["attachments"])
}

// storeUpdateUploads does the same for an update request, honoring field
// presence: the thumbnail pointer is only set when a file actually arrived
func storeUpdateUploads(c *gin.Context, fs service.FileService, req *dto.UpdatePostRequest) ([]dto.AttachmentInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	if files := form.File["thumbnail"]; len(files) > 0 {
		stored, err := fs.Upload(c.Request.Context(), files[0], filestore.KindThumbnails)
		if err != nil {
			return nil, err
		}
		url := stored.URL
		req.Thumbnail = &url
	}

	return storeAttachmentFiles(c, fs, form.File["attachments"])
}

func storeAttachmentFiles(c *gin.Context, fs service.FileService, files []*multipart.FileHeader) ([]dto.AttachmentInput, error) {
	if len(files) == 0 {
		return nil, nil
	}

	// 일괄 업로드로 보내 파일 수 상한을 함께 태운다
	stored, err := fs.UploadMultiple(c.Request.Context(), files, filestore.KindAttachments)
	if err != nil {
		return nil, err
	}
	inputs := make([]dto.AttachmentInput, 0, len(stored))
	for _, f := range stored {
		inputs = append(inputs, dto.AttachmentInput{
			Name:        f.OriginalName,
			Size:        f.Size,
			URL:         f.URL,
			DownloadURL: f.DownloadURL,
		})
	}
	return inputs, nil
}
