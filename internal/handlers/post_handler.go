package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/linkedup/backend/internal/models"
	"github.com/linkedup/backend/internal/repositories"
	"github.com/linkedup/backend/pkg/config"
	"github.com/linkedup/backend/pkg/storage"
	"go.uber.org/zap"
)

// MaxImageSize is the attachment ceiling; larger uploads are rejected before
// any byte reaches the object store.
const MaxImageSize = 5 << 20 // 5 MiB

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.ProfileRepository
	feedCache         repositories.FeedCache
	store             storage.ObjectStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	feedCache repositories.FeedCache,
	store storage.ObjectStore,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		feedCache:         feedCache,
		store:             store,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id/like", h.ToggleLike)
}

// CreatePost accepts a submission as JSON or as multipart form data. An
// attachment travels receipt-to-upload as an in-memory buffer; it is never
// spilled to a local path.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var (
		text      string
		rawUser   []byte
		profileID uint
		imageData []byte
		imageType string
	)

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		text = c.FormValue("text")
		rawUser = []byte(c.FormValue("user"))
		if v := c.FormValue("profileId"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				profileID = uint(id)
			}
		}

		if file, err := c.FormFile("image"); err == nil {
			if file.Size > MaxImageSize {
				return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 5 MiB limit")
			}
			src, err := file.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
			}
			// Re-check after the read: the part's declared size is client input
			imageData, err = io.ReadAll(io.LimitReader(src, MaxImageSize+1))
			src.Close()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
			}
			if int64(len(imageData)) > MaxImageSize {
				return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 5 MiB limit")
			}
			imageType = file.Header.Get("Content-Type")
		}
	} else {
		var req models.CreatePostRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		text = req.Text
		rawUser = req.User
		profileID = req.ProfileID
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Post text is required")
	}

	post := &models.Post{
		Text:  text,
		User:  h.resolveAuthor(c.Request().Context(), rawUser, profileID),
		Likes: []string{},
	}

	if len(imageData) > 0 {
		url, err := h.store.Upload(c.Request().Context(), imageData, imageType)
		if err != nil {
			config.Logger.Error("Image upload failed", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
		}
		post.ImageURL = url
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		config.Logger.Error("Failed to create post", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	h.feedCache.Invalidate(c.Request().Context())

	return c.JSON(http.StatusCreated, post)
}

// GetFeed returns all posts, most recent first, through the feed cache
func (h *PostHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	if posts, ok := h.feedCache.Get(ctx); ok {
		return c.JSON(http.StatusOK, posts)
	}

	posts, err := h.postRepository.GetAllPosts(ctx)
	if err != nil {
		config.Logger.Error("Failed to load feed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed")
	}

	h.feedCache.Set(ctx, posts)

	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		config.Logger.Error("Failed to load post", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}
	return c.JSON(http.StatusOK, post)
}

// ToggleLike flips the caller's membership in the post's likes set and
// returns the post state after the flip
func (h *PostHandler) ToggleLike(c echo.Context) error {
	postID := c.Param("id")

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	post, err := h.postRepository.ToggleLike(c.Request().Context(), postID, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		config.Logger.Error("Failed to toggle like", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}

	h.feedCache.Invalidate(c.Request().Context())

	return c.JSON(http.StatusOK, post)
}

// resolveAuthor picks the post's author snapshot: an explicit user payload
// wins, then a profile lookup, then the Guest default. Author metadata is
// optional, so a malformed payload degrades instead of failing the post.
func (h *PostHandler) resolveAuthor(ctx context.Context, rawUser []byte, profileID uint) models.Author {
	if author, ok := decodeAuthor(rawUser); ok {
		return author
	}
	if profileID != 0 {
		if profile, err := h.profileRepository.GetProfileByID(profileID); err == nil {
			return profile.Author()
		}
	}
	return models.DefaultAuthor()
}

// decodeAuthor parses an author payload that arrives either as a JSON object
// or as a JSON string containing one (multipart form values are strings).
func decodeAuthor(raw []byte) (models.Author, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.DefaultAuthor(), false
	}

	// Unwrap one level of string encoding if present
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		raw = []byte(inner)
	}

	var author models.Author
	if err := json.Unmarshal(raw, &author); err != nil {
		return models.DefaultAuthor(), false
	}
	if strings.TrimSpace(author.FirstName) == "" || strings.TrimSpace(author.LastName) == "" {
		return models.DefaultAuthor(), false
	}
	return author, true
}
