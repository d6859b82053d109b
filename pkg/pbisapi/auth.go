package pbisapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

type loginBody struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type loginReply struct {
	Message string `json:"message"`
	User    struct {
		ID        string `json:"id"`
		Role      string `json:"role"`
		ClassID   string `json:"class_id"`
		ClassName string `json:"class_name"`
	} `json:"user"`
}

// userRecord mirrors a row of the upstream Users sheet.
type userRecord struct {
	ID        string `json:"ID"`
	Role      string `json:"Role"`
	Name      string `json:"Name"`
	ClassID   string `json:"ClassID"`
	ClassName string `json:"ClassName"`
	Memo      string `json:"Memo"`
	LastLogin string `json:"LastLogin"`
}

func (r userRecord) toModel() models.User {
	role, _ := models.ParseRole(r.Role)
	u := models.User{
		ID:        r.ID,
		Role:      role,
		Name:      r.Name,
		ClassID:   r.ClassID,
		ClassName: r.ClassName,
		Memo:      r.Memo,
	}
	if r.LastLogin != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", models.DateLayout} {
			if ts, err := time.Parse(layout, r.LastLogin); err == nil {
				u.LastLogin = &ts
				break
			}
		}
	}
	return u
}

// Login exchanges credentials for the user identity. The role comes back lower-cased.
func (c *Client) Login(ctx context.Context, userID, password string) (models.User, error) {
	var reply loginReply
	if err := c.Do(ctx, http.MethodPost, "/auth/login", nil, loginBody{UserID: userID, Password: password}, &reply); err != nil {
		return models.User{}, err
	}
	role, _ := models.ParseRole(reply.User.Role)
	return models.User{
		ID:        reply.User.ID,
		Role:      role,
		ClassID:   reply.User.ClassID,
		ClassName: reply.User.ClassName,
	}, nil
}

// ListUsers returns every account without passwords.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var records []userRecord
	if err := c.Do(ctx, http.MethodGet, "/auth/users", nil, nil, &records); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toModel())
	}
	return users, nil
}

// CreateUser registers an account.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	req.Role = models.UserRole(strings.ToLower(string(req.Role)))
	return c.Do(ctx, http.MethodPost, "/auth/users", nil, req, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.Do(ctx, http.MethodDelete, "/auth/users/"+pathEscape(userID), nil, nil, nil)
}

// UpdateUserRole changes role and class.
func (c *Client) UpdateUserRole(ctx context.Context, req models.UpdateRoleRequest) error {
	return c.Do(ctx, http.MethodPut, "/auth/users/"+pathEscape(req.UserID)+"/role", nil, req, nil)
}

// UpdateUserPassword replaces a password.
func (c *Client) UpdateUserPassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	return c.Do(ctx, http.MethodPut, "/auth/users/"+pathEscape(req.UserID)+"/password", nil, req, nil)
}

// ListHolidays returns the configured school holidays.
func (c *Client) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := c.Do(ctx, http.MethodGet, "/auth/holidays", nil, nil, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// AddHoliday records a closure.
func (c *Client) AddHoliday(ctx context.Context, h models.Holiday) error {
	return c.Do(ctx, http.MethodPost, "/auth/holidays", nil, h, nil)
}

// DeleteHoliday removes the closure on date.
func (c *Client) DeleteHoliday(ctx context.Context, date string) error {
	return c.Do(ctx, http.MethodDelete, "/auth/holidays/"+pathEscape(date), nil, nil, nil)
}
