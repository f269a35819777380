package blogservice

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type SortField string

const (
	SortCreatedAt   SortField = "timestamp"
	SortReadCount   SortField = "read_count"
	SortReadingTime SortField = "reading_time"
)

// ListParams are the raw list options taken from the query string. Zero values mean
// "not supplied".
type ListParams struct {
	Page    int
	Limit   int
	Author  string
	Title   string
	Tags    []string
	OrderBy string
	Order   string
	State   string
}

// Filter selects blogs. Empty fields do not constrain the result.
type Filter struct {
	State      State
	AuthorID   uuid.UUID
	AuthorName string
	Title      string
	Tags       []string
}

type Sort struct {
	Field     SortField
	Ascending bool
}

// Query is a fully resolved list request: what to match, how to order it and which slice
// of the ordered result to return.
type Query struct {
	Filter Filter
	Sort   Sort
	Page   int
	Limit  int
	Skip   int
	Take   int
}

// ParseTags splits a comma-separated tag list.
func ParseTags(s string) []string {
	if s == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, ","))
}

// BuildPublicQuery resolves the anonymous listing. Only published blogs are ever matched,
// whatever state the caller asked for.
func BuildPublicQuery(p ListParams) Query {
	q := newQuery(p)
	q.Filter = Filter{
		State:      StatePublished,
		AuthorName: strings.TrimSpace(p.Author),
		Title:      strings.TrimSpace(p.Title),
		Tags:       NormalizeTags(p.Tags),
	}
	return q
}

// BuildOwnerQuery resolves the "my blogs" listing: every blog of ownerID, optionally
// narrowed to one state.
func BuildOwnerQuery(ownerID uuid.UUID, p ListParams) Query {
	q := newQuery(p)
	q.Filter = Filter{
		State:    State(p.State),
		AuthorID: ownerID,
		Title:    strings.TrimSpace(p.Title),
		Tags:     NormalizeTags(p.Tags),
	}
	return q
}

func newQuery(p ListParams) Query {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}

	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	// A page far past the end still has to produce a non-negative offset.
	skip := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		skip = (page - 1) * limit
	}

	return Query{
		Sort:  resolveSort(p.OrderBy, p.Order),
		Page:  page,
		Limit: limit,
		Skip:  skip,
		Take:  limit,
	}
}

// resolveSort falls back to newest first for any field outside the allow-list.
func resolveSort(orderBy, order string) Sort {
	field := SortField(orderBy)
	switch field {
	case SortCreatedAt, SortReadCount, SortReadingTime:
	default:
		return Sort{Field: SortCreatedAt}
	}

	return Sort{Field: field, Ascending: strings.EqualFold(order, "asc")}
}

func pageCount(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
