package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeBoardUpstream struct {
	posts   []models.BoardPost
	created []models.BoardPostRequest
	deleted []string
}

func (f *fakeBoardUpstream) BoardPosts(context.Context) ([]models.BoardPost, error) {
	return f.posts, nil
}

func (f *fakeBoardUpstream) CreateBoardPost(_ context.Context, req models.BoardPostRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeBoardUpstream) DeleteBoardPost(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestBoardListNewestFirst(t *testing.T) {
	upstream := &fakeBoardUpstream{posts: []models.BoardPost{
		{ID: "1", CreatedAt: "2025-04-01 09:00"},
		{ID: "3", CreatedAt: "2025-04-12 10:30"},
		{ID: "2", CreatedAt: "2025-04-05 14:00"},
	}}
	svc := NewBoardService(upstream, nil, nil)

	posts, err := svc.List(context.Background())
	require.NoError(t, err)
	ids := []string{posts[0].ID, posts[1].ID, posts[2].ID}
	assert.Equal(t, []string{"3", "2", "1"}, ids)
}

func TestBoardListEmptyIsNotNil(t *testing.T) {
	svc := NewBoardService(&fakeBoardUpstream{}, nil, nil)
	posts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestBoardCreateUsesSessionAuthor(t *testing.T) {
	upstream := &fakeBoardUpstream{}
	svc := NewBoardService(upstream, nil, nil)

	err := svc.Create(context.Background(), models.User{ID: "t01", Name: "Ms. Kim"}, models.BoardPostRequest{
		Title:   " Field trip ",
		Content: "Buses leave at 9.",
		Author:  "someone else",
	})
	require.NoError(t, err)
	require.Len(t, upstream.created, 1)
	assert.Equal(t, "Ms. Kim", upstream.created[0].Author)
	assert.Equal(t, "Field trip", upstream.created[0].Title)

	err = svc.Create(context.Background(), models.User{ID: "t01"}, models.BoardPostRequest{Title: "  ", Content: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBoardDeleteRequiresID(t *testing.T) {
	upstream := &fakeBoardUpstream{}
	svc := NewBoardService(upstream, nil, nil)

	err := svc.Delete(context.Background(), " ")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "42"))
	assert.Equal(t, []string{"42"}, upstream.deleted)
}
