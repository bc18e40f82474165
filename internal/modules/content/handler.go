package content

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/techblog/core/internal/middleware"
	"github.com/techblog/core/internal/modules/content/comment"
	"github.com/techblog/core/internal/modules/content/post"
	"github.com/techblog/core/internal/pkg/pagination"
	"github.com/techblog/core/internal/pkg/response"
)

// Handler exposes the content use-cases over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the post/comment surface. authMW guards writes,
// optionalMW personalizes reads. The GET wildcard is a slug for single-post
// reads and a numeric id for the comment sub-resource; gin requires one name
// per position, so handlers interpret it.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW, optionalMW gin.HandlerFunc) {
	posts := api.Group("/posts")
	{
		posts.GET("", optionalMW, h.listPosts)
		posts.GET("/:slug", optionalMW, h.getPostBySlug)
		posts.GET("/:slug/comments", h.listComments)
		posts.POST("", authMW, h.createPost)
		posts.PUT("/:id", authMW, h.updatePost)
		posts.DELETE("/:id", authMW, h.deletePost)
		posts.POST("/:id/like", authMW, h.toggleLike)
		posts.POST("/:id/comments", authMW, h.createComment)
	}
	api.DELETE("/comments/:id", authMW, h.deleteComment)
}

// RegisterAdminRoutes mounts the moderation surface. Callers must already be
// authenticated as admins; the role check itself is repeated in the services.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.DELETE("/posts/:id", h.deletePost)
	admin.DELETE("/comments/:id", h.deleteComment)
}

func (h *Handler) listPosts(c *gin.Context) {
	page, err := h.svc.GetPublishedPosts(pagination.FromContext(c), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Posts, page.Pagination)
}

func (h *Handler) getPostBySlug(c *gin.Context) {
	resp, err := h.svc.GetPostBySlug(c.Param("slug"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *Handler) createPost(c *gin.Context) {
	var dto post.CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.CreatePost(&dto, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) updatePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var dto post.UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.UpdatePost(id, &dto, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(id, middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) toggleLike(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	liked, err := h.svc.ToggleLike(id, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"liked": liked})
}

func (h *Handler) listComments(c *gin.Context) {
	id, ok := parseID(c, c.Param("slug"))
	if !ok {
		return
	}
	response.OK(c, h.svc.ListComments(c.Request.Context(), id))
}

func (h *Handler) createComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var dto comment.CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.CreateComment(c.Request.Context(), id, &dto, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *Handler) deleteComment(c *gin.Context) {
	if err := h.svc.DeleteComment(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func paramID(c *gin.Context) (uint, bool) {
	return parseID(c, c.Param("id"))
}

func parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id: "+raw)
		return 0, false
	}
	return uint(id), true
}
