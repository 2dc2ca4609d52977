package store

import (
	"context"

	"github.com/lib/pq"
)

// Course is a directory entry describing a study program.
type Course struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Stream      string   `json:"stream"`
	Level       string   `json:"level"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Careers     []string `json:"careers"`
}

// College is a directory entry describing an institution.
type College struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	District string   `json:"district"`
	Address  string   `json:"address"`
	Website  string   `json:"website"`
	Streams  []string `json:"streams"`
}

func (s *Store) ListCourses(ctx context.Context, stream string) ([]Course, error) {
	q := `SELECT id, name, stream, level, duration, description, careers FROM courses ORDER BY name`
	args := []interface{}{}
	if stream != "" {
		q = `SELECT id, name, stream, level, duration, description, careers FROM courses WHERE stream=$1 ORDER BY name`
		args = append(args, stream)
	}
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Stream, &c.Level, &c.Duration, &c.Description, pq.Array(&c.Careers)); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, id string) (Course, error) {
	var c Course
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, stream, level, duration, description, careers FROM courses WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Stream, &c.Level, &c.Duration, &c.Description, pq.Array(&c.Careers))
	return c, err
}

func (s *Store) ListColleges(ctx context.Context, district string) ([]College, error) {
	q := `SELECT id, name, district, address, website, streams FROM colleges ORDER BY name`
	args := []interface{}{}
	if district != "" {
		q = `SELECT id, name, district, address, website, streams FROM colleges WHERE district=$1 ORDER BY name`
		args = append(args, district)
	}
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []College
	for rows.Next() {
		var c College
		if err := rows.Scan(&c.ID, &c.Name, &c.District, &c.Address, &c.Website, pq.Array(&c.Streams)); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCollege(ctx context.Context, id string) (College, error) {
	var c College
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, district, address, website, streams FROM colleges WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.District, &c.Address, &c.Website, pq.Array(&c.Streams))
	return c, err
}
