package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
)

// AdminHandler serves the privileged board surface: soft-deleted posts are
// reachable and visibility flags are toggleable
type AdminHandler struct {
	boardService service.BoardService
	fileService  service.FileService
}

func NewAdminHandler(boardService service.BoardService, fileService service.FileService) *AdminHandler {
	return &AdminHandler{
		boardService: boardService,
		fileService:  fileService,
	}
}

// ListPosts godoc
// @Summary      관리자 게시글 목록 조회
// @Description  is_deleted는 기본 false지만 토글 가능, is_public은 기본 무필터입니다
// @Tags         admin-board
// @Produce      json
// @Param        is_deleted query bool false "삭제글 조회"
// @Param        is_public query bool false "공개 여부 필터"
// @Success      200 {object} response.ListResponse
// @Router       /admin/board [get]
func (h *AdminHandler) ListPosts(c *gin.Context) {
	result, err := h.boardService.List(c.Request.Context(), parsePostFilters(c), true)
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
// @Summary      관리자 게시글 상세 조회
// @Description  가시성과 무관하게 조회하며 건강 프로그램 글은 읽음 처리합니다
// @Tags         admin-board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /admin/board/{id} [get]
func (h *AdminHandler) GetPost(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	post, err := h.boardService.GetAdmin(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePost(post, requestBase(c)), "")
}

// CreatePost godoc
// @Summary      관리자 게시글 작성
// @Tags         admin-board
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object} response.SuccessResponse
// @Router       /admin/board [post]
func (h *AdminHandler) CreatePost(c *gin.Context) {
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
// @Summary      관리자 게시글 수정
// @Tags         admin-board
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Success      200 {object} response.SuccessResponse
// @Router       /admin/board/{id} [put]
func (h *AdminHandler) UpdatePost(c *gin.Context) {
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
// @Summary      관리자 게시글 삭제
// @Tags         admin-board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Param        permanent query bool false "물리 삭제 여부"
// @Success      200 {object} response.SuccessResponse
// @Router       /admin/board/{id} [delete]
func (h *AdminHandler) DeletePost(c *gin.Context) {
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

// SetVisibility godoc
// @Summary      게시글 가시성 변경
// @Description  public/private/deleted/restore 네 가지 전환을 처리합니다
// @Tags         admin-board
// @Produce      json
// @Param        id path int true "게시글 ID"
// @Param        action path string true "전환" Enums(public, private, deleted, restore)
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /admin/board/{id}/{action} [patch]
func (h *AdminHandler) SetVisibility(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.", "")
		return
	}

	var (
		post *domain.Post
		err  error
	)
	switch c.Param("action") {
	case "public":
		post, err = h.boardService.SetPublic(c.Request.Context(), id, true)
	case "private":
		post, err = h.boardService.SetPublic(c.Request.Context(), id, false)
	case "deleted":
		post, err = h.boardService.SetDeleted(c.Request.Context(), id, true)
	case "restore":
		post, err = h.boardService.SetDeleted(c.Request.Context(), id, false)
	default:
		response.SendError(c, http.StatusBadRequest, "지원하지 않는 상태 전환입니다.", "")
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePost(post, requestBase(c)), "게시글 상태가 변경되었습니다.")
}
