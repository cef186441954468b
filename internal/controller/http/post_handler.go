package http

import (
	"net/http"

	"campusnet/internal/entity"
	"campusnet/internal/usecase"
	"campusnet/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a text, image, video or reel post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body usecase.CreatePostInput true "Post content"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /api/posts/create [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var in usecase.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, err := h.postUseCase.Create(c.GetString("user_id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary      List all posts
// @Description  All posts, newest first. An empty feed is an empty list, not an error.
// @Tags         posts
// @Produce      json
// @Success      200  {array}  entity.Post
// @Router       /api/posts/all [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// ListOwnPosts godoc
// @Summary      List own posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Post
// @Router       /api/posts/own [get]
func (h *PostHandler) ListOwnPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListByAuthor(c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// ListUserPosts godoc
// @Summary      List posts by user
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {array}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/user/{id} [get]
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListByAuthor(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get a single post
// @Description  One post with its comments and author projections populated
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/post/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Admin only. Returns the removed post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/delete/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	post, err := h.postUseCase.Delete(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// LikePost godoc
// @Summary      Toggle a like on a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/like/{id} [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	liked, likesCount, err := h.postUseCase.ToggleLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"liked":       liked,
		"likes_count": likesCount,
	})
}

// CommentPost godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body CommentRequest true "Comment text"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/comment/{id} [post]
func (h *PostHandler) CommentPost(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment, err := h.postUseCase.AddComment(c.GetString("user_id"), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
