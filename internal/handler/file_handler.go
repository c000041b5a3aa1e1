package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
)

// FileHandler serves upload, download and deletion of stored binaries
type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload godoc
// @Summary      단일 파일 업로드
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "업로드 파일"
// @Success      201 {object} response.SuccessResponse{data=dto.UploadedFile}
// @Failure      400 {object} response.ErrorResponse "파일 누락"
// @Router       /upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, "업로드할 파일이 없습니다.", "")
		return
	}

	uploaded, err := h.fileService.Upload(c.Request.Context(), fh, filestore.KindAttachments)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	base := requestBase(c)
	uploaded.URL = service.AbsolutizeURL(uploaded.URL, base)
	uploaded.DownloadURL = service.AbsolutizeURL(uploaded.DownloadURL, base)
	response.SendSuccess(c, http.StatusCreated, uploaded, "파일이 업로드되었습니다.")
}

// UploadMultiple godoc
// @Summary      다중 파일 업로드
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        files formData file true "업로드 파일들"
// @Success      201 {object} response.SuccessResponse{data=[]dto.UploadedFile}
// @Failure      400 {object} response.ErrorResponse "파일 누락"
// @Router       /upload-multiple [post]
func (h *FileHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, "업로드할 파일이 없습니다.", "")
		return
	}

	uploaded, err := h.fileService.UploadMultiple(c.Request.Context(), form.File["files"], filestore.KindAttachments)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	base := requestBase(c)
	for _, f := range uploaded {
		f.URL = service.AbsolutizeURL(f.URL, base)
		f.DownloadURL = service.AbsolutizeURL(f.DownloadURL, base)
	}
	response.SendSuccess(c, http.StatusCreated, uploaded, "파일이 업로드되었습니다.")
}

// Download godoc
// @Summary      파일 다운로드
// @Description  저장된 첨부파일을 원본 파일명으로 내려받습니다
// @Tags         files
// @Produce      application/octet-stream
// @Param        fileName path string true "저장 파일명"
// @Success      200 {file} binary
// @Failure      404 {object} response.ErrorResponse "파일 없음"
// @Router       /download/{fileName} [get]
func (h *FileHandler) Download(c *gin.Context) {
	fileName := c.Param("fileName")

	rc, meta, err := h.fileService.Download(c.Request.Context(), fileName)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer rc.Close()

	// RFC 5987: 한글 파일명은 filename* 로 전달한다
	encoded := url.PathEscape(meta.OriginalName)
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, encoded, encoded))
	c.Header("Content-Type", meta.MimeType)

	if _, err := io.Copy(c.Writer, rc); err != nil {
		c.Abort()
	}
}

// DeleteFile godoc
// @Summary      파일 삭제
// @Tags         files
// @Produce      json
// @Param        fileName path string true "저장 파일명"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse "파일 없음"
// @Router       /files/{fileName} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileName := c.Param("fileName")

	if err := h.fileService.Delete(c.Request.Context(), fileName); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil, "파일이 삭제되었습니다.")
}
