package server

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForumScenario walks the canonical two-user flow end to end: a post
// with a unique title and a comment cap, filled to the limit, then removed
// by its owner.
func TestForumScenario(t *testing.T) {
	setup(t)
	alice := tokenFor(t, "Alice")
	bob := tokenFor(t, "Bob")

	// Alice creates "Hello" with room for three comments.
	var post map[string]any
	resp := doJSON(t, fiber.MethodPost, "/api/posts", fiber.Map{
		"title":       "Hello",
		"text":        "first!",
		"maxComments": 3,
	}, alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &post)
	postID := uint(post["id"].(float64))
	assert.Equal(t, float64(3), post["maxComments"])

	// Bob cannot reuse the title.
	resp = doJSON(t, fiber.MethodPost, "/api/posts", fiber.Map{
		"title": "Hello",
		"text":  "me too",
	}, bob)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	_ = readBody(t, resp)

	// Bob fills the post to its cap.
	commentsPath := fmt.Sprintf("/api/posts/%d/comments", postID)
	for i := 1; i <= 3; i++ {
		resp = doJSON(t, fiber.MethodPost, commentsPath,
			fiber.Map{"text": fmt.Sprintf("comment %d", i)}, bob)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = readBody(t, resp)
	}
	resp = doJSON(t, fiber.MethodPost, commentsPath, fiber.Map{"text": "one more"}, bob)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	_ = readBody(t, resp)

	// The listing reflects the cap being reached.
	var fetched map[string]any
	resp = doJSON(t, fiber.MethodGet, fmt.Sprintf("/api/posts/%d", postID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, float64(3), fetched["commentCount"])

	// Alice deletes her post; Bob's later attempt finds nothing.
	resp = doJSON(t, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", strings.TrimSpace(readBody(t, resp)))

	resp = doJSON(t, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, bob)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	_ = readBody(t, resp)
}
