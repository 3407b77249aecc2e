package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"agora/internal/auth"
	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The Prometheus middleware registers collectors in the process-global
// registry, so the test app is built once and shared. Tests therefore run
// sequentially and create their own fixture rows.
var (
	setupOnce sync.Once
	setupErr  error

	testApp *fiber.App
	testDB  *gorm.DB

	testUsers  map[string]*models.User
	testTokens map[string]string
)

const (
	testPassword   = "password"
	testTOTPSecret = "LXBSMDTMSP2I5XFXIYRGFVWSFI"
)

func setup(t *testing.T) {
	t.Helper()

	setupOnce.Do(func() {
		cfg := &config.Config{
			Port:              "0",
			DBPath:            ":memory:",
			SessionTTLMinutes: 60,
			Env:               "test",
		}

		testDB, setupErr = database.Connect(cfg)
		if setupErr != nil {
			return
		}

		srv := NewServerWithDeps(cfg, testDB, nil, session.NewMemoryStore())
		testApp = fiber.New()
		srv.SetupMiddleware(testApp)
		srv.SetupRoutes(testApp)

		testUsers = make(map[string]*models.User)
		for _, u := range []struct {
			email, name string
			totp        bool
		}{
			{"alice@agora.local", "Alice", false},
			{"bob@agora.local", "Bob", false},
			{"mod@agora.local", "Mod", true},
		} {
			var salt, hash string
			salt, setupErr = auth.GenerateSalt()
			if setupErr != nil {
				return
			}
			hash, setupErr = auth.HashPassword(testPassword, salt)
			if setupErr != nil {
				return
			}
			user := &models.User{
				Email:        u.email,
				Name:         u.name,
				PasswordHash: hash,
				PasswordSalt: salt,
			}
			if u.totp {
				secret := testTOTPSecret
				user.TOTPSecret = &secret
			}
			if setupErr = testDB.Create(user).Error; setupErr != nil {
				return
			}
			testUsers[u.name] = user
		}

		testTokens = make(map[string]string)
	})
	require.NoError(t, setupErr)
}

func doJSON(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}

	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doRawJSON(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}

	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// login performs a fresh password login and returns the session token.
func login(t *testing.T, email string) string {
	t.Helper()

	resp := doJSON(t, fiber.MethodPost, "/api/sessions", fiber.Map{
		"username": email,
		"password": testPassword,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

// tokenFor returns a cached session token for the named fixture user,
// logging in on first use. Tests that log out must use their own login.
func tokenFor(t *testing.T, name string) string {
	t.Helper()

	if token, ok := testTokens[name]; ok {
		return token
	}
	token := login(t, testUsers[name].Email)
	testTokens[name] = token
	return token
}

// fixturePost inserts a post directly, bypassing the API, for tests whose
// subject is something else.
func fixturePost(t *testing.T, title string, userID uint, maxComments *int) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:       title,
		Text:        "body of " + title,
		MaxComments: maxComments,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, testDB.Create(post).Error)
	return post
}

func fixtureComment(t *testing.T, postID uint, userID *uint, text string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Text:      text,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, testDB.Create(comment).Error)
	return comment
}
