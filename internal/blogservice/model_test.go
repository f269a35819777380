package blogservice

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogapi/internal/common"
)

// insertTestUser writes a user row directly so the blog model can be tested on its own.
func insertTestUser(t *testing.T, db *sql.DB, first, last, email string) Author {
	t.Helper()

	a := Author{ID: uuid.New(), FirstName: first, LastName: last, Email: email}

	query := `
		INSERT INTO users (id, first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := db.Exec(query, a.ID, a.FirstName, a.LastName, a.Email, []byte("not-a-real-hash"))
	require.NoError(t, err)

	return a
}

func TestDBModel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	db := common.TestDB("file://../../migrations", t)
	s := NewBlogService(NewDBModel(db))
	ctx := context.Background()

	cleanup := func() {
		_, err := db.Exec("DELETE FROM blogs")
		assert.NoError(t, err)
		_, err = db.Exec("DELETE FROM users")
		assert.NoError(t, err)
	}

	newBlog := func(t *testing.T, author Author, title string, tags ...string) *Blog {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: title, Body: words(10), Tags: tags, Author: author})
		require.NoError(t, err)
		return blog
	}

	t.Run("insert and read back", func(t *testing.T) {
		t.Cleanup(cleanup)
		author := insertTestUser(t, db, "Test", "User", "testuser@example.com")

		blog := newBlog(t, author, "Title", "go", "api")
		assert.False(t, blog.CreatedAt.IsZero())

		stored, err := s.m.getOwnedBlog(ctx, blog.ID, author.ID)
		require.NoError(t, err)
		assert.Equal(t, Tags{"go", "api"}, stored.Tags)
		assert.Equal(t, author, stored.Author)
		assert.Equal(t, StateDraft, stored.State)
		assert.Equal(t, ReadingTime(1), stored.ReadingTime)
	})

	t.Run("unknown author", func(t *testing.T) {
		t.Cleanup(cleanup)

		_, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Title", Body: words(10), Author: Author{ID: uuid.New()}})
		assert.ErrorIs(t, err, ErrUserForeignKey)
	})

	t.Run("published read increments count", func(t *testing.T) {
		t.Cleanup(cleanup)
		author := insertTestUser(t, db, "Test", "User", "testuser@example.com")

		blog := newBlog(t, author, "Title")
		_, err := s.GetPublishedBlog(ctx, blog.ID)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)

		_, err = s.SetBlogState(ctx, blog.ID, author.ID, StatePublished)
		require.NoError(t, err)

		for want := 1; want <= 2; want++ {
			got, err := s.GetPublishedBlog(ctx, blog.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got.ReadCount)
			assert.Equal(t, author.Email, got.Author.Email)
		}
	})

	t.Run("owner scoped mutations", func(t *testing.T) {
		t.Cleanup(cleanup)
		owner := insertTestUser(t, db, "Test", "User", "testuser@example.com")
		other := insertTestUser(t, db, "Other", "User", "other@example.com")

		blog := newBlog(t, owner, "Title")
		title := "Hijacked"

		_, err := s.UpdateBlog(ctx, blog.ID, other.ID, &UpdateBlogRequest{Title: &title})
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
		assert.ErrorIs(t, s.DeleteBlog(ctx, blog.ID, other.ID), common.ErrRecordNotFound)

		body := words(401)
		updated, err := s.UpdateBlog(ctx, blog.ID, owner.ID, &UpdateBlogRequest{Body: &body})
		require.NoError(t, err)
		assert.Equal(t, ReadingTime(3), updated.ReadingTime)
		assert.True(t, updated.UpdatedAt.After(blog.UpdatedAt) || updated.UpdatedAt.Equal(blog.UpdatedAt))

		require.NoError(t, s.DeleteBlog(ctx, blog.ID, owner.ID))
		assert.ErrorIs(t, s.DeleteBlog(ctx, blog.ID, owner.ID), common.ErrRecordNotFound)
	})

	t.Run("list filters and sorting", func(t *testing.T) {
		t.Cleanup(cleanup)
		alice := insertTestUser(t, db, "Alice", "Smith", "alice@example.com")
		bob := insertTestUser(t, db, "Bob", "Jones", "bob@example.com")

		blogs := []*Blog{
			newBlog(t, alice, "Go Basics", "go"),
			newBlog(t, bob, "Rust_Basics", "rust"),
			newBlog(t, alice, "Advanced Go", "go", "advanced"),
		}
		newBlog(t, bob, "Unpublished")

		for i, b := range blogs {
			_, err := s.SetBlogState(ctx, b.ID, b.Author.ID, StatePublished)
			require.NoError(t, err)
			_, err = db.Exec("UPDATE blogs SET created_at = NOW() - make_interval(hours => $1) WHERE id = $2", 10-i, b.ID)
			require.NoError(t, err)
		}

		page, err := s.ListBlogs(ctx, ListParams{OrderBy: "timestamp", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, []string{"Go Basics", "Rust_Basics", "Advanced Go"}, titles(page.Blogs))

		page, err = s.ListBlogs(ctx, ListParams{Author: "ALICE smi"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Advanced Go", "Go Basics"}, titles(page.Blogs))

		page, err = s.ListBlogs(ctx, ListParams{Title: "_"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Rust_Basics"}, titles(page.Blogs))

		page, err = s.ListBlogs(ctx, ListParams{Tags: []string{"advanced", "rust"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Advanced Go", "Rust_Basics"}, titles(page.Blogs))

		page, err = s.ListBlogs(ctx, ListParams{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 2, page.Pages)
		assert.Equal(t, []string{"Go Basics"}, titles(page.Blogs))

		mine, err := s.ListUserBlogs(ctx, bob.ID, ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 2, mine.Total)

		mine, err = s.ListUserBlogs(ctx, bob.ID, ListParams{State: "draft"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Unpublished"}, titles(mine.Blogs))
	})
}
