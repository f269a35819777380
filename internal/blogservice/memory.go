package blogservice

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

// MemoryModel keeps blogs in the same common.Cache as userservice.MemoryModel so authors
// can be resolved. The mutex makes each read-modify-write atomic.
type MemoryModel struct {
	mu sync.Mutex
	c  *common.Cache
}

func NewMemoryModel(c *common.Cache) *MemoryModel {
	return &MemoryModel{c: c}
}

func (m *MemoryModel) insertBlog(ctx context.Context, b *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := userservice.LookupUser(m.c, b.Author.ID); !ok {
		return ErrUserForeignKey
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	m.put(b)

	return nil
}

func (m *MemoryModel) getPublishedBlog(ctx context.Context, id uuid.UUID) (*Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.get(id)
	if !ok || b.State != StatePublished {
		return nil, common.ErrRecordNotFound
	}

	b.ReadCount++
	m.put(b)

	return m.withAuthor(b), nil
}

func (m *MemoryModel) getOwnedBlog(ctx context.Context, id, authorID uuid.UUID) (*Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.get(id)
	if !ok || b.Author.ID != authorID {
		return nil, common.ErrRecordNotFound
	}

	return m.withAuthor(b), nil
}

func (m *MemoryModel) updateBlog(ctx context.Context, b *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.get(b.ID)
	if !ok || stored.Author.ID != b.Author.ID {
		return common.ErrRecordNotFound
	}

	b.ReadCount = stored.ReadCount
	b.CreatedAt = stored.CreatedAt
	b.UpdatedAt = time.Now().UTC()

	m.put(b)

	return nil
}

func (m *MemoryModel) deleteBlog(ctx context.Context, id, authorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.get(id)
	if !ok || b.Author.ID != authorID {
		return common.ErrRecordNotFound
	}

	m.c.Delete(common.CacheKeyBlog(id))

	return nil
}

func (m *MemoryModel) listBlogs(ctx context.Context, q Query) ([]Blog, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Blog
	for _, v := range m.c.Values(common.KeyPrefixBlog) {
		b := v.(Blog)
		b.Tags = append(Tags{}, b.Tags...)
		b = *m.withAuthor(&b)
		if matches(q.Filter, &b) {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return less(q.Sort, &matched[i], &matched[j])
	})

	total := len(matched)

	page := []Blog{}
	if q.Skip >= 0 && q.Skip < total {
		end := q.Skip + q.Take
		if end > total {
			end = total
		}
		page = append(page, matched[q.Skip:end]...)
	}

	return page, total, nil
}

func (m *MemoryModel) get(id uuid.UUID) (*Blog, bool) {
	v, ok := m.c.Get(common.CacheKeyBlog(id))
	if !ok {
		return nil, false
	}

	b := v.(Blog)
	b.Tags = append(Tags{}, b.Tags...)
	return &b, true
}

func (m *MemoryModel) put(b *Blog) {
	stored := *b
	stored.Tags = append(Tags{}, b.Tags...)
	stored.Author = Author{ID: b.Author.ID}
	m.c.Set(common.CacheKeyBlog(b.ID), stored)
}

func (m *MemoryModel) withAuthor(b *Blog) *Blog {
	if u, ok := userservice.LookupUser(m.c, b.Author.ID); ok {
		b.Author = Author{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	}
	return b
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matches(f Filter, b *Blog) bool {
	if f.State != "" && b.State != f.State {
		return false
	}
	if f.AuthorID != uuid.Nil && b.Author.ID != f.AuthorID {
		return false
	}
	if f.AuthorName != "" && !containsFold(b.Author.FirstName+" "+b.Author.LastName, f.AuthorName) {
		return false
	}
	if f.Title != "" && !containsFold(b.Title, f.Title) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(b.Tags, f.Tags) {
		return false
	}
	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func less(s Sort, a, b *Blog) bool {
	var cmp int
	switch s.Field {
	case SortReadCount:
		cmp = a.ReadCount - b.ReadCount
	case SortReadingTime:
		cmp = int(a.ReadingTime) - int(b.ReadingTime)
	default:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}

	if cmp == 0 {
		return a.ID.String() < b.ID.String()
	}
	if s.Ascending {
		return cmp < 0
	}
	return cmp > 0
}
