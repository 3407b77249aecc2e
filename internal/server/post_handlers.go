package server

import (
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts returns all posts, newest first (public)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns a single post by id (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost creates a new post (session required). The author is always the
// session identity; an authorId in the body is ignored.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var req struct {
		Title       string `json:"title"`
		Text        string `json:"text"`
		MaxComments *int   `json:"maxComments"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		AuthorID:    sess.UserID,
		Title:       req.Title,
		Text:        req.Text,
		MaxComments: req.MaxComments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost deletes a post (owner or admin). Responds with the number of
// rows removed; a post already gone after the existence check reads as 404.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rows, err := s.postService.Delete(c.UserContext(), sess, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if rows == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	return c.JSON(rows)
}
