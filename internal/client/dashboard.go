package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const recentGoalCount = 3

// Dashboard joins everything the overview screen shows.
type Dashboard struct {
	User           User
	Subjects       []Subject
	Scores         []Score
	Goals          []Goal
	Averages       []SubjectAverage
	OverallAverage *float64
	RecentGoals    []Goal
}

// LoadDashboard fetches subjects, scores, goals and analytics concurrently. The first
// failure cancels the remaining requests.
func (c *Client) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	dash := &Dashboard{User: c.session.User()}
	var analytics *Analytics

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dash.Subjects, err = c.Subjects(ctx)
		return err
	})
	g.Go(func() (err error) {
		dash.Scores, err = c.Scores(ctx)
		return err
	})
	g.Go(func() (err error) {
		dash.Goals, err = c.Goals(ctx)
		return err
	})
	g.Go(func() (err error) {
		analytics, err = c.Analytics(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash.Averages = analytics.Averages
	dash.OverallAverage = analytics.OverallAverage

	dash.RecentGoals = dash.Goals
	if len(dash.RecentGoals) > recentGoalCount {
		dash.RecentGoals = dash.RecentGoals[:recentGoalCount]
	}

	return dash, nil
}
