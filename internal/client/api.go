package client

import (
	"context"
	"net/http"
)

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*AuthResult, error) {
	var result AuthResult

	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}

	if err := c.session.Set(result.Token, result.User); err != nil {
		return nil, err
	}

	return &result, nil
}

// Logout drops the stored session. The API keeps no server-side session state.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	var resp struct {
		User User `json:"user"`
	}

	if err := c.do(ctx, http.MethodGet, "/me", nil, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	subjects := []Subject{}
	err := c.do(ctx, http.MethodGet, resourcePath("subjects", c.session.UserID()), nil, &subjects)
	return subjects, err
}

func (c *Client) CreateSubject(ctx context.Context, name string) (*Subject, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	var subject Subject
	if err := c.do(ctx, http.MethodPost, "/subjects", map[string]interface{}{
		"name":   name,
		"userId": c.session.UserID(),
	}, &subject); err != nil {
		return nil, err
	}

	return &subject, nil
}

func (c *Client) DeleteSubject(ctx context.Context, id uint) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, resourcePath("subjects", id), nil, nil)
}

func (c *Client) Scores(ctx context.Context) ([]Score, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	scores := []Score{}
	err := c.do(ctx, http.MethodGet, resourcePath("scores", c.session.UserID()), nil, &scores)
	return scores, err
}

func (c *Client) CreateScore(ctx context.Context, score NewScore) (*Score, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	var created Score
	if err := c.do(ctx, http.MethodPost, "/scores", score, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) DeleteScore(ctx context.Context, id uint) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, resourcePath("scores", id), nil, nil)
}

func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	goals := []Goal{}
	err := c.do(ctx, http.MethodGet, resourcePath("goals", c.session.UserID()), nil, &goals)
	return goals, err
}

func (c *Client) CreateGoal(ctx context.Context, goal NewGoal) (*Goal, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	var created Goal
	if err := c.do(ctx, http.MethodPost, "/goals", goal, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id uint) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, resourcePath("goals", id), nil, nil)
}

func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	var analytics Analytics
	if err := c.do(ctx, http.MethodGet, "/analytics", nil, &analytics); err != nil {
		return nil, err
	}

	return &analytics, nil
}
