package rest

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jtech/tasklist/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	User         userResponse `json:"user"`
}

// taskListRequest doubles as create and patch payload; nil fields in a PUT
// are left unchanged.
type taskListRequest struct {
	Name *string `json:"name"`
}

type taskListResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// taskRequest doubles as create and patch payload. In a PUT, a missing
// taskListId leaves the association unchanged and an empty string detaches.
type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	TaskListID  *string `json:"taskListId"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	TaskListID  *string   `json:"taskListId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type pageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toTaskListResponse(l *models.TaskList) taskListResponse {
	return taskListResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		TaskListID:  t.TaskListID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toPageResponse[In any, Out any](p *models.Page[In], convert func(In) Out) pageResponse[Out] {
	content := make([]Out, 0, len(p.Items))
	for _, item := range p.Items {
		content = append(content, convert(item))
	}
	return pageResponse[Out]{
		Content:       content,
		TotalElements: p.TotalElements,
		Page:          p.Page,
		Size:          p.Size,
		First:         p.First,
		Last:          p.Last,
	}
}

// pageRequest reads the page/size query parameters; invalid or absent values
// fall back to the engine defaults.
func pageRequest(c echo.Context) models.PageRequest {
	var req models.PageRequest
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		req.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		req.Size = v
	}
	return req
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
