package pbisapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

// MeetingNotes lists notes matching filter.
func (c *Client) MeetingNotes(ctx context.Context, filter models.MeetingNoteFilter) (models.MeetingNoteList, error) {
	q := url.Values{}
	if filter.MeetingType != "" {
		q.Set("meeting_type", filter.MeetingType)
	}
	if filter.StudentCode != "" {
		q.Set("student_code", filter.StudentCode)
	}
	if filter.StartDate != "" {
		q.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("end_date", filter.EndDate)
	}
	var list models.MeetingNoteList
	err := c.Do(ctx, http.MethodGet, "/meeting-notes", q, nil, &list)
	return list, err
}

// AppendMeetingNote stores a note. There is no edit or delete upstream.
func (c *Client) AppendMeetingNote(ctx context.Context, note models.MeetingNote) error {
	return c.Do(ctx, http.MethodPost, "/meeting-notes", nil, note, nil)
}

// BoardPosts lists announcements.
func (c *Client) BoardPosts(ctx context.Context) ([]models.BoardPost, error) {
	var posts []models.BoardPost
	err := c.Do(ctx, http.MethodGet, "/board/", nil, nil, &posts)
	return posts, err
}

// CreateBoardPost publishes an announcement.
func (c *Client) CreateBoardPost(ctx context.Context, req models.BoardPostRequest) error {
	return c.Do(ctx, http.MethodPost, "/board/", nil, req, nil)
}

// DeleteBoardPost removes an announcement.
func (c *Client) DeleteBoardPost(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/board/"+pathEscape(id), nil, nil, nil)
}
