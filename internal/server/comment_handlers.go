package server

import (
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns the comments on a post visible to the requester
// (public; authenticated requesters see authored comments too).
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListByPost(c.UserContext(), middleware.RequesterID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetComment returns a single comment, subject to the anonymous-visibility
// rule (public).
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.Get(c.UserContext(), middleware.RequesterID(c), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// CreateComment adds a comment to a post. Anonymous requesters may comment;
// their comments carry no author.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		RequesterID: middleware.RequesterID(c),
		PostID:      postID,
		Text:        req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// UpdateComment replaces a comment's text (owner or admin).
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentService.UpdateText(c.UserContext(), sess, commentID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteComment deletes a comment (owner or admin). Responds with the number
// of rows removed.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rows, err := s.commentService.Delete(c.UserContext(), sess, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if rows == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}

	return c.JSON(rows)
}

// SetCommentInteresting marks or unmarks a comment as interesting for the
// session user. Both directions are idempotent.
func (s *Server) SetCommentInteresting(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Interesting *bool `json:"interesting"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil || req.Interesting == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Field 'interesting' must be a boolean"))
	}

	if err := s.commentService.SetInteresting(c.UserContext(), sess, commentID, *req.Interesting); err != nil {
		return respondServiceError(c, err)
	}

	// Return the refreshed comment so the client sees the new aggregates.
	requesterID := sess.UserID
	comment, err := s.commentService.Get(c.UserContext(), &requesterID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}
