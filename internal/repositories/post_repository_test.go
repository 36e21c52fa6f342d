package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/linkedup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupPostRepo connects to the MongoDB named by MONGO_TEST_URI and returns a
// repository over a per-run collection that is dropped on cleanup.
func setupPostRepo(t *testing.T) *MongoPostRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("linkedup_test")
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		_ = db.Collection("posts").Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	return NewMongoPostRepository(db)
}

func TestCreatePost_AssignsIDAndTimestamps(t *testing.T) {
	repo := setupPostRepo(t)
	ctx := context.Background()

	post := &models.Post{Text: "Hello", User: models.DefaultAuthor()}
	require.NoError(t, repo.CreatePost(ctx, post))

	assert.False(t, post.ID.IsZero())
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	stored, err := repo.GetPostByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Hello", stored.Text)
	assert.NotNil(t, stored.Likes)
	assert.Len(t, stored.Likes, 0)
	assert.Empty(t, stored.ImageURL)
}

func TestGetAllPosts_NewestFirstAndStable(t *testing.T) {
	repo := setupPostRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		post := &models.Post{Text: fmt.Sprintf("post-%d", i), User: models.DefaultAuthor()}
		require.NoError(t, repo.CreatePost(ctx, post))
		time.Sleep(5 * time.Millisecond)
	}

	posts, err := repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 5)

	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt),
			"posts must be ordered newest first")
	}

	// Repeated reads with no writes return the same order
	again, err := repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, again, 5)
	for i := range posts {
		assert.Equal(t, posts[i].ID, again[i].ID)
	}
}

func TestToggleLike_FlipLaws(t *testing.T) {
	repo := setupPostRepo(t)
	ctx := context.Background()

	post := &models.Post{Text: "Hello", User: models.DefaultAuthor()}
	require.NoError(t, repo.CreatePost(ctx, post))
	postID := post.ID.Hex()

	// Odd number of flips leaves the user present
	updated, err := repo.ToggleLike(ctx, postID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, updated.Likes)

	// Even number of flips leaves the user absent
	updated, err = repo.ToggleLike(ctx, postID, "u1")
	require.NoError(t, err)
	assert.Len(t, updated.Likes, 0)

	for i := 0; i < 3; i++ {
		updated, err = repo.ToggleLike(ctx, postID, "u1")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"u1"}, updated.Likes)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	repo := setupPostRepo(t)
	ctx := context.Background()

	_, err := repo.ToggleLike(ctx, "64b0c8f9e4b0a1a2b3c4d5e6", "u1")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = repo.ToggleLike(ctx, "not-a-hex-id", "u1")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

// TestToggleLike_ConcurrentUsers checks that racing toggles from distinct
// users all land: the flip runs inside the database, so no update is lost.
func TestToggleLike_ConcurrentUsers(t *testing.T) {
	repo := setupPostRepo(t)
	ctx := context.Background()

	post := &models.Post{Text: "contended", User: models.DefaultAuthor()}
	require.NoError(t, repo.CreatePost(ctx, post))
	postID := post.ID.Hex()

	const numUsers = 20
	var wg sync.WaitGroup
	wg.Add(numUsers)
	errs := make(chan error, numUsers)

	for i := 0; i < numUsers; i++ {
		go func(n int) {
			defer wg.Done()
			if _, err := repo.ToggleLike(ctx, postID, fmt.Sprintf("user-%d", n)); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent toggle failed: %v", err)
	}

	stored, err := repo.GetPostByID(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, numUsers)

	seen := map[string]bool{}
	for _, id := range stored.Likes {
		assert.False(t, seen[id], "likes must not contain duplicates")
		seen[id] = true
	}
}
