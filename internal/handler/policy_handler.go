package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
)

// PolicyHandler serves the health policy surface
type PolicyHandler struct {
	policyService service.PolicyService
}

func NewPolicyHandler(policyService service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// ListPolicies godoc
// @Summary      정책 목록 조회
// @Description  isVisible 필터가 없으면 노출 중인 정책만 반환합니다
// @Tags         policy
// @Produce      json
// @Param        categoryCode query string false "카테고리 코드"
// @Param        tag query string false "태그"
// @Param        search query string false "검색어"
// @Param        page query int false "페이지 번호"
// @Param        limit query int false "페이지 크기"
// @Success      200 {object} response.ListResponse
// @Router       /health/policy [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	result, err := h.policyService.List(c.Request.Context(), parsePolicyFilters(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data := service.ShapePolicies(result.Policies, requestBase(c))
	if result.Pagination != nil {
		response.SendPage(c, http.StatusOK, data, *result.Pagination)
		return
	}
	response.SendList(c, http.StatusOK, data, result.Total)
}

// GetPolicy godoc
// @Summary      정책 상세 조회
// @Description  노출 중인 정책 하나를 조회하고 조회수를 올립니다
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "정책 없음"
// @Router       /health/policy/{id} [get]
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	policy, err := h.policyService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePolicy(policy, requestBase(c)), "")
}

// CreatePolicy godoc
// @Summary      정책 등록
// @Tags         policy
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "필수 필드 누락"
// @Router       /health/policy [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	policy, err := h.policyService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, service.ShapePolicy(policy, requestBase(c)), "정책이 등록되었습니다.")
}

// UpdatePolicy godoc
// @Summary      정책 수정
// @Description  전달된 필드만 덮어쓰는 부분 수정입니다
// @Tags         policy
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "정책 없음"
// @Router       /health/policy/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	var req dto.UpdatePolicyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	policy, err := h.policyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePolicy(policy, requestBase(c)), "정책이 수정되었습니다.")
}

// DeletePolicy godoc
// @Summary      정책 삭제
// @Description  정책 삭제는 항상 물리 삭제입니다
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "정책 없음"
// @Router       /health/policy/{id} [delete]
func (h *PolicyHandler) DeletePolicy(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	if err := h.policyService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil, "정책이 삭제되었습니다.")
}

// SetPolicyVisibility godoc
// @Summary      정책 노출 여부 변경
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Param        action path string true "전환" Enums(visible, invisible)
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "정책 없음"
// @Router       /health/policy/{id}/{action} [patch]
func (h *PolicyHandler) SetPolicyVisibility(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	var (
		policy *domain.Policy
		err    error
	)
	switch c.Param("action") {
	case "visible":
		policy, err = h.policyService.SetVisible(c.Request.Context(), id, true)
	case "invisible":
		policy, err = h.policyService.SetVisible(c.Request.Context(), id, false)
	default:
		response.SendError(c, http.StatusBadRequest, "지원하지 않는 상태 전환입니다.", "")
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, service.ShapePolicy(policy, requestBase(c)), "정책 상태가 변경되었습니다.")
}

// LikePolicy godoc
// @Summary      정책 좋아요
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      200 {object} map[string]interface{}
// @Router       /health/policy/{id}/like [post]
func (h *PolicyHandler) LikePolicy(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	count, err := h.policyService.Like(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likeCount": count})
}

// UnlikePolicy godoc
// @Summary      정책 좋아요 취소
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      200 {object} map[string]interface{}
// @Router       /health/policy/{id}/like [delete]
func (h *PolicyHandler) UnlikePolicy(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	count, err := h.policyService.Unlike(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likeCount": count})
}

// CreatePolicyComment godoc
// @Summary      정책 댓글 작성
// @Tags         policy
// @Accept       json
// @Produce      json
// @Param        id path int true "정책 ID"
// @Success      201 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "정책 없음"
// @Router       /health/policy/{id}/comments [post]
func (h *PolicyHandler) CreatePolicyComment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}

	var req dto.CreatePolicyCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.", err.Error())
		return
	}

	comment, err := h.policyService.AddComment(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment, "댓글이 등록되었습니다.")
}

// UpdatePolicyComment godoc
// @Summary      정책 댓글 수정
// @Tags         policy
// @Accept       json
// @Produce      json
// @Param        id path int true "정책 ID"
// @Param        commentId path int true "댓글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "댓글 없음"
// @Router       /health/policy/{id}/comments/{commentId} [put]
func (h *PolicyHandler) UpdatePolicyComment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}
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

	comment, err := h.policyService.UpdateComment(c.Request.Context(), id, commentID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment, "댓글이 수정되었습니다.")
}

// DeletePolicyComment godoc
// @Summary      정책 댓글 삭제
// @Description  정책 댓글 삭제는 항상 물리 삭제입니다
// @Tags         policy
// @Produce      json
// @Param        id path int true "정책 ID"
// @Param        commentId path int true "댓글 ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "댓글 없음"
// @Router       /health/policy/{id}/comments/{commentId} [delete]
func (h *PolicyHandler) DeletePolicyComment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 정책 ID입니다.", "")
		return
	}
	commentID, ok := intParam(c, "commentId")
	if !ok {
		response.SendError(c, http.StatusBadRequest, "유효하지 않은 댓글 ID입니다.", "")
		return
	}

	if err := h.policyService.DeleteComment(c.Request.Context(), id, commentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil, "댓글이 삭제되었습니다.")
}
