package repository

import (
	"context"
	"strconv"
	"strings"

	"jobmarket/internal/database"
	"jobmarket/internal/domain/course"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var ErrDuplicateCourseURL = errors.New("duplicate course url")

type CourseFilter struct {
	Provider course.Provider
	Level    course.Level
}

type CourseRepository interface {
	Create(ctx context.Context, c *course.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (course.Course, error)
	ListActive(ctx context.Context, f CourseFilter) ([]course.Course, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

const courseColumns = `id, title, COALESCE(description, ''), provider, url, duration_minutes, level, tags,
	COALESCE(thumbnail_url, ''), COALESCE(instructor, ''), rating, price, COALESCE(currency, ''),
	is_free, is_active, created_at, updated_at`

func (r *PostgresCourseRepository) Create(ctx context.Context, c *course.Course) error {
	row := r.db.QueryRow(ctx, `
INSERT INTO courses (title, description, provider, url, duration_minutes, level, tags, thumbnail_url,
	instructor, rating, price, currency, is_free, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
ON CONFLICT (url) DO NOTHING
RETURNING id, is_active, created_at, updated_at`,
		c.Title, nullable(c.Description), string(c.Provider), c.URL, c.DurationMinutes, string(c.Level),
		nonNil(c.Tags), nullable(c.ThumbnailURL), nullable(c.Instructor), c.Rating, c.Price,
		nullable(c.Currency), c.IsFree,
	)
	if err := row.Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicateCourseURL
		}
		return errors.Wrap(err, "insert course")
	}
	return nil
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "get course")
	}
	return c, nil
}

func (r *PostgresCourseRepository) ListActive(ctx context.Context, f CourseFilter) ([]course.Course, error) {
	where := []string{"is_active"}
	var args []any
	if f.Provider != "" {
		args = append(args, string(f.Provider))
		where = append(where, "provider = $"+strconv.Itoa(len(args)))
	}
	if f.Level != "" {
		args = append(args, string(f.Level))
		where = append(where, "level = $"+strconv.Itoa(len(args)))
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at, id`,
		args...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan course")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return out, nil
}

func scanCourse(row database.Row) (course.Course, error) {
	var (
		c        course.Course
		provider string
		level    string
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &provider, &c.URL, &c.DurationMinutes, &level, &c.Tags,
		&c.ThumbnailURL, &c.Instructor, &c.Rating, &c.Price, &c.Currency,
		&c.IsFree, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	c.Provider = course.Provider(provider)
	c.Level = course.Level(level)
	return c, nil
}
