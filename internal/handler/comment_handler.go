package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
)

// CommentHandler serves board comment operations. Comment ids are unique
// across the whole store, so routes address comments without a post id.
type CommentHandler struct {
	boardService service.BoardService
}

func NewCommentHandler(boardService service.BoardService) *CommentHandler {
	return &CommentHandler{boardService: boardService}
}

// CreateComment godoc
// @Summary      댓글 작성
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "댓글 작성 요청"
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "필수 필드 누락"
// @Failure      404 {object} response.ErrorResponse "게시글 없음"
// @Router       /board/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	comment, err := h.boardService.AddComment(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment, "댓글이 등록되었습니다.")
}

// UpdateComment godoc
// @Summary      댓글 수정
// @Description  content만 교체합니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId path int true "댓글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "댓글 없음"
// @Router       /board/comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := intParam(c, "commentId")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 댓글 ID입니다.", "")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	comment, err := h.boardService.UpdateComment(c.Request.Context(), commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment, "댓글이 수정되었습니다.")
}

// DeleteComment godoc
// @Summary      댓글 삭제
// @Description  기본은 소프트 삭제, permanent=true면 물리 삭제합니다
// @Tags         comments
// @Produce      json
// @Param        commentId path int true "댓글 ID"
// @Param        permanent query bool false "물리 삭제 여부"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "댓글 없음"
// @Router       /board/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := intParam(c, "commentId")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 댓글 ID입니다.", "")
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := h.boardService.DeleteComment(c.Request.Context(), commentID, permanent); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil, "댓글이 삭제되었습니다.")
}

// SetCommentDeleted godoc
// @Summary      댓글 삭제 플래그 변경
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId path int true "댓글 ID"
// @Param        request body dto.SetCommentDeletedRequest true "삭제 플래그"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "is_deleted 누락"
// @Router       /board/comments/{commentId}/deleted [patch]
func (h *CommentHandler) SetCommentDeleted(c *gin.Context) {
	commentID, ok := intParam(c, "commentId")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 댓글 ID입니다.", "")
		return
	}

	var req dto.SetCommentDeletedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsDeleted == nil {
		response.SendError(c, http.StatusBadRequest, "is_deleted 필드는 필수입니다.", "")
		return
	}

	comment, err := h.boardService.SetCommentDeleted(c.Request.Context(), commentID, *req.IsDeleted)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment, "댓글 상태가 변경되었습니다.")
}
