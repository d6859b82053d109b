package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type boardUpstream interface {
	BoardPosts(ctx context.Context) ([]models.BoardPost, error)
	CreateBoardPost(ctx context.Context, req models.BoardPostRequest) error
	DeleteBoardPost(ctx context.Context, id string) error
}

// BoardService manages the announcement board.
type BoardService struct {
	upstream  boardUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBoardService constructs a BoardService instance.
func NewBoardService(upstream boardUpstream, validate *validator.Validate, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BoardService{upstream: upstream, validator: validate, logger: logger}
}

// List returns posts newest first.
func (s *BoardService) List(ctx context.Context) ([]models.BoardPost, error) {
	posts, err := s.upstream.BoardPosts(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.BoardPost{}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt > posts[j].CreatedAt })
	return posts, nil
}

// Create publishes a post authored by the session user.
func (s *BoardService) Create(ctx context.Context, author models.User, req models.BoardPostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and content are required")
	}
	req.Author = author.ID
	if author.Name != "" {
		req.Author = author.Name
	}
	return s.upstream.CreateBoardPost(ctx, req)
}

// Delete removes a post.
func (s *BoardService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "post id is required")
	}
	return s.upstream.DeleteBoardPost(ctx, id)
}
