package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/techblog/core/internal/pkg/apperr"
	"github.com/techblog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	grp := api.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Register(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Login(&dto)
	if err != nil {
		// bad credentials surface as 401, not 403
		if errors.Is(err, apperr.ErrForbidden) {
			response.Unauthorized(c)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
