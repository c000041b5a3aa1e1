package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/config"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// AuthHandler serves the fixed dummy identity used by the front-end
type AuthHandler struct {
	user config.DummyUser
}

func NewAuthHandler(user config.DummyUser) *AuthHandler {
	return &AuthHandler{user: user}
}

// CurrentUser godoc
// @Summary      현재 사용자 조회
// @Description  설정된 더미 사용자 정보를 반환합니다
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=config.DummyUser}
// @Router       /auth/current-user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	response.SendSuccess(c, http.StatusOK, h.user, "")
}
