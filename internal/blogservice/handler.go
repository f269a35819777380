package blogservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/sushihentaime/blogapi/internal/common"
)

func NewBlogService(m Model) *BlogService {
	return &BlogService{m: m}
}

type CreateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Tags        Tags   `json:"tags"`
	Author      Author `json:"-"`
}

// UpdateBlogRequest carries a partial update. Nil fields are left untouched.
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
	Tags        *Tags   `json:"tags"`
}

// CreateBlog stores a new draft owned by req.Author.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	body := sanitizeMarkdown(req.Body)
	tags := NormalizeTags(req.Tags)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateBody(v, body)
	validateTags(v, tags)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Body:        body,
		Tags:        tags,
		Author:      req.Author,
		State:       StateDraft,
		ReadingTime: EstimateReadingTime(body),
	}

	err := s.m.insertBlog(ctx, &blog)
	if err != nil {
		return nil, err
	}

	return &blog, nil
}

// GetPublishedBlog returns a published blog and counts the read. Drafts are reported as
// common.ErrRecordNotFound.
func (s *BlogService) GetPublishedBlog(ctx context.Context, id uuid.UUID) (*Blog, error) {
	return s.m.getPublishedBlog(ctx, id)
}

// ListBlogs returns one page of published blogs.
func (s *BlogService) ListBlogs(ctx context.Context, p ListParams) (*BlogPage, error) {
	return s.list(ctx, BuildPublicQuery(p))
}

// ListUserBlogs returns one page of the blogs owned by ownerID in any state, unless
// p.State narrows it.
func (s *BlogService) ListUserBlogs(ctx context.Context, ownerID uuid.UUID, p ListParams) (*BlogPage, error) {
	if p.State != "" {
		v := common.NewValidator()
		validateState(v, State(p.State))
		if !v.Valid() {
			return nil, v.ValidationError()
		}
	}

	return s.list(ctx, BuildOwnerQuery(ownerID, p))
}

func (s *BlogService) list(ctx context.Context, q Query) (*BlogPage, error) {
	blogs, total, err := s.m.listBlogs(ctx, q)
	if err != nil {
		return nil, err
	}

	return &BlogPage{
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
		Pages: pageCount(total, q.Limit),
		Blogs: blogs,
	}, nil
}

// UpdateBlog merges req into the blog. Reading time is recomputed only when the body is part
// of the update. State is changed through SetBlogState only.
func (s *BlogService) UpdateBlog(ctx context.Context, id, ownerID uuid.UUID, req *UpdateBlogRequest) (*Blog, error) {
	return s.modifyBlog(ctx, id, ownerID, func(blog *Blog) {
		if req.Title != nil {
			blog.Title = *req.Title
		}
		if req.Description != nil {
			blog.Description = *req.Description
		}
		if req.Tags != nil {
			blog.Tags = NormalizeTags(*req.Tags)
		}
		if req.Body != nil {
			blog.Body = sanitizeMarkdown(*req.Body)
			blog.ReadingTime = EstimateReadingTime(blog.Body)
		}
	})
}

// SetBlogState moves an owned blog to state.
func (s *BlogService) SetBlogState(ctx context.Context, id, ownerID uuid.UUID, state State) (*Blog, error) {
	v := common.NewValidator()
	validateState(v, state)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.modifyBlog(ctx, id, ownerID, func(blog *Blog) {
		blog.State = state
	})
}

// modifyBlog loads an owned blog, applies change, validates the result and stores it.
func (s *BlogService) modifyBlog(ctx context.Context, id, ownerID uuid.UUID, change func(*Blog)) (*Blog, error) {
	blog, err := s.m.getOwnedBlog(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	change(blog)

	v := common.NewValidator()
	validateTitle(v, blog.Title)
	validateDescription(v, blog.Description)
	validateBody(v, blog.Body)
	validateTags(v, blog.Tags)
	validateState(v, blog.State)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog removes an owned blog permanently.
func (s *BlogService) DeleteBlog(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.m.deleteBlog(ctx, id, ownerID)
}
