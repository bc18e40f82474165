package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/modules/analytics"
	"github.com/techblog/core/internal/modules/content/comment"
	"github.com/techblog/core/internal/modules/content/post"
	"github.com/techblog/core/internal/pkg/apperr"
	"github.com/techblog/core/internal/pkg/pagination"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memCommentStore struct {
	mu   sync.Mutex
	docs map[string]comment.Comment
}

func (f *memCommentStore) Insert(_ context.Context, c *comment.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[c.CommentID] = *c
	return nil
}

func (f *memCommentStore) FindByID(_ context.Context, commentID string) (*comment.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[commentID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *memCommentStore) MarkDeleted(_ context.Context, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.docs[commentID]; ok {
		c.IsDeleted = true
		f.docs[commentID] = c
	}
	return nil
}

func (f *memCommentStore) ListByPost(_ context.Context, postID string) ([]comment.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []comment.Comment
	for _, c := range f.docs {
		if c.PostID == postID && !c.IsDeleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

type captureSink struct {
	mu      sync.Mutex
	records [][]byte
}

func (s *captureSink) Put(_ context.Context, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(record))
	copy(cp, record)
	s.records = append(s.records, cp)
	return nil
}

func (s *captureSink) eventTypes(t *testing.T) []string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []string
	for _, raw := range s.records {
		var rec struct {
			EventType string `json:"eventType"`
		}
		require.NoError(t, json.Unmarshal(raw, &rec))
		types = append(types, rec.EventType)
	}
	return types
}

type fixture struct {
	svc     *Service
	db      *gorm.DB
	sink    *captureSink
	emitter *analytics.Emitter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.PostModel{},
		&models.PostLikeModel{},
	))

	sink := &captureSink{}
	emitter := analytics.NewEmitter(sink, zap.NewNop())
	t.Cleanup(emitter.Close)

	posts := post.NewService(db)
	likes := post.NewLikeLedger(db, posts)
	comments := comment.NewService(&memCommentStore{docs: make(map[string]comment.Comment)}, zap.NewNop())

	return &fixture{
		svc:     NewService(posts, likes, comments, emitter),
		db:      db,
		sink:    sink,
		emitter: emitter,
	}
}

func (f *fixture) user(t *testing.T, username string, role models.Role) *models.UserModel {
	t.Helper()
	u := models.UserModel{Username: username, Email: username + "@example.com", Password: "x", Role: role}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func TestListingReflectsMutations(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)

	_, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "One", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	page, err := f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	// a second create must invalidate the cached first page
	_, err = f.svc.CreatePost(&post.CreatePostDTO{Title: "Two", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	page, err = f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
}

func TestListingExcludesDrafts(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)

	_, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Draft", Content: "x"}, author)
	require.NoError(t, err)
	published, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Live", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	page, err := f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, published.Slug, page.Posts[0].Slug)
}

func TestListingRejectsBadPagination(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPublishedPosts(pagination.Query{Page: -1, Size: 10}, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 0}, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestGetPostBySlugCountsView(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)

	created, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Hit Counter", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	first, err := f.svc.GetPostBySlug(created.Slug, nil)
	require.NoError(t, err)
	assert.Zero(t, first.ViewCount)

	second, err := f.svc.GetPostBySlug(created.Slug, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.ViewCount)
}

func TestToggleLikePersonalizesListing(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)
	fan := f.user(t, "bob", models.RoleUser)

	created, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Likeable", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	liked, err := f.svc.ToggleLike(created.ID, fan)
	require.NoError(t, err)
	assert.True(t, liked)

	page, err := f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 10}, fan)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.True(t, page.Posts[0].LikedByCurrentUser)
	assert.Equal(t, 1, page.Posts[0].LikeCount)

	// the anonymous view of the same page stays neutral
	page, err = f.svc.GetPublishedPosts(pagination.Query{Page: 1, Size: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.False(t, page.Posts[0].LikedByCurrentUser)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "bob", models.RoleUser)

	_, err := f.svc.ToggleLike(9999, fan)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentsRoundTrip(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)
	reader := f.user(t, "bob", models.RoleUser)
	ctx := context.Background()

	created, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Discussed", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)

	c, err := f.svc.CreateComment(ctx, created.ID, &comment.CreateDTO{Content: "nice post"}, reader)
	require.NoError(t, err)

	list := f.svc.ListComments(ctx, created.ID)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, "bob", list[0].AuthorUsername)

	require.NoError(t, f.svc.DeleteComment(ctx, c.ID, reader))
	assert.Empty(t, f.svc.ListComments(ctx, created.ID))
}

func TestMutationsEmitEvents(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "alice", models.RoleUser)
	ctx := context.Background()

	created, err := f.svc.CreatePost(&post.CreatePostDTO{Title: "Tracked", Content: "x", Status: "PUBLISHED"}, author)
	require.NoError(t, err)
	_, err = f.svc.GetPostBySlug(created.Slug, nil)
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(created.ID, author)
	require.NoError(t, err)
	c, err := f.svc.CreateComment(ctx, created.ID, &comment.CreateDTO{Content: "hi"}, author)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteComment(ctx, c.ID, author))
	require.NoError(t, f.svc.DeletePost(created.ID, author))

	f.emitter.Close()

	assert.Equal(t, []string{
		"post_create",
		"post_view",
		"post_like",
		"comment_create",
		"comment_delete",
		"post_delete",
	}, f.sink.eventTypes(t))
}
