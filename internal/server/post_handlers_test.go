package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"subredit/internal/models"
	"subredit/internal/repository"
	"subredit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Subredit{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// setupTestServer wires a Server over an in-memory store and mounts the
// content routes on a bare app, without the auth and rate-limit middleware
// that have their own tests.
func setupTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db := setupHandlerTestDB(t)
	subreditRepo := repository.NewSubreditRepository(db)
	postRepo := repository.NewPostRepository(db)
	s := &Server{
		db:              db,
		subreditRepo:    subreditRepo,
		postRepo:        postRepo,
		subreditService: service.NewSubreditService(subreditRepo),
		postService:     service.NewPostService(postRepo, subreditRepo),
		rankingService:  service.NewRankingService(postRepo),
	}

	app := fiber.New()
	app.Get("/api/subredits", s.RankSubredits)
	app.Post("/api/subredits", s.CreateSubredit)
	app.Get("/api/subredits/:id/posts", s.GetSubreditPosts)
	app.Post("/api/subredits/:id/posts", s.CreatePost)
	app.Post("/api/subredits/:id/posts/:postId/comments", s.CreateComment)
	app.Put("/api/subredits/:id/posts/:postId", s.UpdatePost)
	app.Post("/api/subredits/:id/posts/:postId/like", s.LikePost)

	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func createTestSubredit(t *testing.T, app *fiber.App, name string) uint {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/subredits", fiber.Map{
		"name": name, "description": "about " + name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created models.Subredit
	require.NoError(t, json.Unmarshal(raw, &created))
	return created.ID
}

func createTestPost(t *testing.T, app *fiber.App, subreditID uint, title string) uint {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/subredits/%d/posts", subreditID),
		fiber.Map{"title": title, "content": "content of " + title})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	return created.ID
}

func TestCreateSubreditHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)

	t.Run("created", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/subredits", fiber.Map{
			"name":        "gophers",
			"description": "all things Go",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Subredit
		require.NoError(t, json.Unmarshal(raw, &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "gophers", created.Name)
	})

	t.Run("constraint violations listed", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/subredits", fiber.Map{
			"name": "gogo",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &errResp))
		assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
		assert.NotEmpty(t, errResp.Violations)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/subredits",
			bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreatePostHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)
	subreditID := createTestSubredit(t, app, "gophers")

	t.Run("created returns id and title", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/subredits/%d/posts", subreditID),
			fiber.Map{"title": "go 1.26", "content": "release notes inside"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(raw, &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "go 1.26", created.Title)
	})

	t.Run("unknown subredit", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/subredits/9999/posts",
			fiber.Map{"title": "go 1.26", "content": "release notes inside"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &errResp))
		assert.Equal(t, "not found", errResp.Error)
	})

	t.Run("invalid subredit id", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/subredits/abc/posts",
			fiber.Map{"title": "go 1.26", "content": "release notes inside"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSubreditPostsHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)
	subreditID := createTestSubredit(t, app, "gophers")

	firstID := createTestPost(t, app, subreditID, "first post")
	secondID := createTestPost(t, app, subreditID, "second post")

	resp, _ := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/subredits/%d/posts/%d/like", subreditID, secondID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/subredits/%d/posts", subreditID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, secondID, posts[0].ID)
	assert.Equal(t, 1, posts[0].Likes)
	assert.Equal(t, firstID, posts[1].ID)
	assert.NotNil(t, posts[0].Comments)
}

func TestCreateCommentHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)
	subreditID := createTestSubredit(t, app, "gophers")
	postID := createTestPost(t, app, subreditID, "first post")

	t.Run("appends and returns full post", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/subredits/%d/posts/%d/comments", subreditID, postID),
			fiber.Map{"content": "nice post"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		require.NoError(t, json.Unmarshal(raw, &post))
		assert.Equal(t, []string{"nice post"}, post.Comments)
	})

	t.Run("short comment", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/subredits/%d/posts/%d/comments", subreditID, postID),
			fiber.Map{"content": "meh"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &errResp))
		assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	})

	t.Run("wrong subredit reads as missing", func(t *testing.T) {
		otherID := createTestSubredit(t, app, "rustaceans")
		resp, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/subredits/%d/posts/%d/comments", otherID, postID),
			fiber.Map{"content": "nice post"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)
	subreditID := createTestSubredit(t, app, "gophers")
	postID := createTestPost(t, app, subreditID, "first post")

	t.Run("replaces content", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPut,
			fmt.Sprintf("/api/subredits/%d/posts/%d", subreditID, postID),
			fiber.Map{"content": "rewritten entirely"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		require.NoError(t, json.Unmarshal(raw, &post))
		assert.Equal(t, "rewritten entirely", post.Content)
	})

	t.Run("missing post", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut,
			fmt.Sprintf("/api/subredits/%d/posts/9999", subreditID),
			fiber.Map{"content": "rewritten entirely"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestLikePostHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)
	subreditID := createTestSubredit(t, app, "gophers")
	postID := createTestPost(t, app, subreditID, "first post")

	for want := 1; want <= 2; want++ {
		resp, raw := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/subredits/%d/posts/%d/like", subreditID, postID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		require.NoError(t, json.Unmarshal(raw, &post))
		assert.Equal(t, want, post.Likes)
	}
}

func TestRankSubreditsHandler(t *testing.T) {
	t.Parallel()
	app, _ := setupTestServer(t)

	t.Run("empty store", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, "/api/subredits", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("ranked by mean likes", func(t *testing.T) {
		gophersID := createTestSubredit(t, app, "gophers")
		rustID := createTestSubredit(t, app, "rustaceans")
		createTestSubredit(t, app, "lurkers") // no posts, not ranked

		gopherPost := createTestPost(t, app, gophersID, "first post")
		createTestPost(t, app, rustID, "second post")

		for i := 0; i < 2; i++ {
			resp, _ := doJSON(t, app, http.MethodPost,
				fmt.Sprintf("/api/subredits/%d/posts/%d/like", gophersID, gopherPost), nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		resp, raw := doJSON(t, app, http.MethodGet, "/api/subredits", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var rankings []models.SubreditRanking
		require.NoError(t, json.Unmarshal(raw, &rankings))
		require.Len(t, rankings, 2)
		assert.Equal(t, gophersID, rankings[0].ID)
		assert.InDelta(t, 2.0, rankings[0].AverageLikes, 1e-9)
		assert.Equal(t, rustID, rankings[1].ID)
		assert.InDelta(t, 0.0, rankings[1].AverageLikes, 1e-9)
	})
}
