package chi

import (
	"time"

	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
)

type createArticleRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Author   string   `json:"author" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags"`
	Views    int      `json:"views" validate:"min=0"`
	Rating   float64  `json:"rating" validate:"min=0"`
}

type updateArticleRequest struct {
	Title    *string   `json:"title" validate:"omitempty,min=1"`
	Content  *string   `json:"content" validate:"omitempty,min=1"`
	Author   *string   `json:"author" validate:"omitempty,min=1"`
	Category *string   `json:"category" validate:"omitempty,min=1"`
	Tags     *[]string `json:"tags"`
	Views    *int      `json:"views" validate:"omitempty,min=0"`
	Rating   *float64  `json:"rating" validate:"omitempty,min=0"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Bio      string `json:"bio"`
	IsActive string `json:"is_active" validate:"omitempty,oneof=true false"`
}

type articleResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Views     int      `json:"views"`
	Rating    float64  `json:"rating"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	IsActive  string `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func articleFromCreate(req createArticleRequest) domart.Article {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return domart.Article{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     tags,
		Views:    req.Views,
		Rating:   req.Rating,
	}
}

func patchFromUpdate(req updateArticleRequest) domart.Patch {
	return domart.Patch{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		Views:    req.Views,
		Rating:   req.Rating,
	}
}

func userFromCreate(req createUserRequest) domuser.User {
	isActive := req.IsActive
	if isActive == "" {
		isActive = "true"
	}
	return domuser.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Bio:      req.Bio,
		IsActive: isActive,
	}
}

func articleToResponse(a domart.Article) articleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Author:    a.Author,
		Category:  a.Category,
		Tags:      tags,
		Views:     a.Views,
		Rating:    a.Rating,
		CreatedAt: a.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func userToResponse(u domuser.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Bio,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	}
}
