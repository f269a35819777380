package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

type Blog struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Body is stored with <script> blocks removed.
	Body        string      `json:"body"`
	Tags        Tags        `json:"tags"`
	Author      Author      `json:"author"`
	State       State       `json:"state"`
	ReadCount   int         `json:"read_count"`
	ReadingTime ReadingTime `json:"reading_time"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Author is the public summary of the user that owns a blog.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// Tags decodes from either a JSON array of strings or a single comma-separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("tags must be an array of strings or a comma-separated string")
	}

	*t = NormalizeTags(strings.Split(s, ","))
	return nil
}

// NormalizeTags trims every tag and drops empty and repeated ones, keeping first-seen order.
func NormalizeTags(tags []string) Tags {
	seen := make(map[string]struct{}, len(tags))
	out := Tags{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// BlogPage is one page of a list result.
type BlogPage struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Pages int    `json:"pages"`
	Blogs []Blog `json:"blogs"`
}

// Model is the blog store. Every owner-scoped method reports a blog owned by someone else
// exactly like a missing one.
type Model interface {
	insertBlog(ctx context.Context, b *Blog) error
	getPublishedBlog(ctx context.Context, id uuid.UUID) (*Blog, error)
	getOwnedBlog(ctx context.Context, id, authorID uuid.UUID) (*Blog, error)
	updateBlog(ctx context.Context, b *Blog) error
	deleteBlog(ctx context.Context, id, authorID uuid.UUID) error
	listBlogs(ctx context.Context, q Query) ([]Blog, int, error)
}

type DBModel struct {
	db *sql.DB
}

type BlogService struct {
	m Model
}
