package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sushihentaime/blogapi/internal/common"
)

var (
	ErrUserForeignKey = errors.New("author does not exist")
)

func NewDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

const blogColumns = `
	b.id, b.title, b.description, b.body, b.tags, b.state, b.read_count, b.reading_time,
	b.created_at, b.updated_at, u.id, u.first_name, u.last_name, u.email`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*Blog, error) {
	var (
		blog Blog
		tags []string
	)

	err := row.Scan(
		&blog.ID, &blog.Title, &blog.Description, &blog.Body, pq.Array(&tags), &blog.State,
		&blog.ReadCount, &blog.ReadingTime, &blog.CreatedAt, &blog.UpdatedAt,
		&blog.Author.ID, &blog.Author.FirstName, &blog.Author.LastName, &blog.Author.Email,
	)
	if err != nil {
		return nil, err
	}

	blog.Tags = NormalizeTags(tags)

	return &blog, nil
}

func (m *DBModel) insertBlog(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (id, title, description, body, tags, author_id, state, read_count, reading_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	args := []any{
		b.ID,
		b.Title,
		b.Description,
		b.Body,
		pq.Array([]string(b.Tags)),
		b.Author.ID,
		string(b.State),
		b.ReadCount,
		int(b.ReadingTime),
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getPublishedBlog bumps the read count of a published blog and returns it, in one statement.
func (m *DBModel) getPublishedBlog(ctx context.Context, id uuid.UUID) (*Blog, error) {
	query := `
		WITH b AS (
			UPDATE blogs
			SET read_count = read_count + 1
			WHERE id = $1 AND state = 'published'
			RETURNING *
		)
		SELECT ` + blogColumns + `
		FROM b
		JOIN users u ON b.author_id = u.id`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *DBModel) getOwnedBlog(ctx context.Context, id, authorID uuid.UUID) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.id = $1 AND b.author_id = $2`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id, authorID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *DBModel) updateBlog(ctx context.Context, b *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, description = $2, body = $3, tags = $4, state = $5, reading_time = $6, updated_at = NOW()
		WHERE id = $7 AND author_id = $8
		RETURNING updated_at`

	args := []any{
		b.Title,
		b.Description,
		b.Body,
		pq.Array([]string(b.Tags)),
		string(b.State),
		int(b.ReadingTime),
		b.ID,
		b.Author.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) deleteBlog(ctx context.Context, id, authorID uuid.UUID) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND author_id = $2`

	res, err := m.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

var sortColumns = map[SortField]string{
	SortCreatedAt:   "b.created_at",
	SortReadCount:   "b.read_count",
	SortReadingTime: "b.reading_time",
}

// likePattern turns s into an ILIKE substring pattern with its wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// whereClause renders the filter as SQL. Column names come from constants only; every
// caller supplied value is a bind parameter.
func whereClause(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.State != "" {
		add("b.state = $%d", string(f.State))
	}
	if f.AuthorID != uuid.Nil {
		add("b.author_id = $%d", f.AuthorID)
	}
	if f.AuthorName != "" {
		add("(u.first_name || ' ' || u.last_name) ILIKE $%d", likePattern(f.AuthorName))
	}
	if f.Title != "" {
		add("b.title ILIKE $%d", likePattern(f.Title))
	}
	if len(f.Tags) > 0 {
		add("b.tags && $%d", pq.Array(f.Tags))
	}

	if len(conds) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(s Sort) string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = sortColumns[SortCreatedAt]
		s.Ascending = false
	}

	direction := "DESC"
	if s.Ascending {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, b.id ASC", column, direction)
}

// listBlogs returns one page of matching blogs and the total number of matches.
func (m *DBModel) listBlogs(ctx context.Context, q Query) ([]Blog, int, error) {
	where, args := whereClause(q.Filter)

	countQuery := `
		SELECT COUNT(*)
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		` + where

	var total int
	if err := m.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		%s
		%s
		LIMIT $%d OFFSET $%d`, blogColumns, where, orderClause(q.Sort), len(args)+1, len(args)+2)

	rows, err := m.db.QueryContext(ctx, query, append(args, q.Take, q.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}
