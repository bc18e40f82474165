package upload

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/techblog/core/internal/pkg/response"
)

const imageFolder = "images"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	api.POST("/upload/image", authMW, h.uploadImage)
}

func (h *Handler) uploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.BadRequest(c, "only image uploads are accepted")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	url, err := h.svc.Upload(c.Request.Context(), imageFolder, file.Filename, contentType, file.Size, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}
