package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page view. The client IP is never stored, only its
// salted hash.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type ProjectViewStat struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

type Stats struct {
	TotalVisitors     int64             `json:"total_visitors"`
	UniqueVisitors    int64             `json:"unique_visitors"`
	VisitorsToday     int64             `json:"visitors_today"`
	VisitorsThisWeek  int64             `json:"visitors_this_week"`
	TotalProjectViews int64             `json:"total_project_views"`
	TopProjects       []ProjectViewStat `json:"top_projects"`
	RecentVisitors    []Visit           `json:"recent_visitors"`
	TotalMessages     int64             `json:"total_messages"`
	RecentMessages    []Message         `json:"recent_messages"`
}

func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, created_at)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordProjectView(ctx context.Context, slug, hashedIP string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_views (slug, hashed_ip, created_at)
		VALUES (?, ?, ?)
	`, slug, hashedIP, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record project view: %w", err)
	}
	return nil
}

// Visitors returns the most recent visits, newest first.
func (s *Store) Visitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), created_at
		FROM visitors
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// TopProjects ranks project slugs by modal opens.
func (s *Store) TopProjects(ctx context.Context, limit int) ([]ProjectViewStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, COUNT(*) AS views
		FROM project_views
		GROUP BY slug
		ORDER BY views DESC, slug ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top projects: %w", err)
	}
	defer rows.Close()

	var stats []ProjectViewStat
	for rows.Next() {
		var st ProjectViewStat
		if err := rows.Scan(&st.Slug, &st.Views); err != nil {
			return nil, fmt.Errorf("scan project views: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Stats gathers everything the admin dashboard shows.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	weekAgo := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{weekAgo}},
		{&stats.TotalProjectViews, `SELECT COUNT(*) FROM project_views`, nil},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	var err error
	if stats.TopProjects, err = s.TopProjects(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.Visitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentMessages, err = s.Messages(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
