package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"jobmarket/internal/database"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type JobFilter struct {
	Query    string
	City     string
	District string
	Type     job.Type
	Source   job.Source
	Company  string
}

type JobRepository interface {
	Create(ctx context.Context, j *job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*job.Job, error)
	Update(ctx context.Context, j *job.Job) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, f JobFilter) ([]job.Job, error)
	ListActiveInBounds(ctx context.Context, b geo.Bounds) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, company, COALESCE(logo_url, ''), city, district, location_text,
	latitude, longitude, salary_min, salary_max, currency, type, skills,
	COALESCE(description, ''), requirements, benefits, source, COALESCE(external_url, ''),
	fingerprint, is_active, posted_at, updated_at`

// Create inserts j and fills its ID and timestamps. A stored job with the same
// fingerprint yields ErrDuplicateFingerprint.
func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx, `
INSERT INTO jobs (title, company, logo_url, city, district, location_text, latitude, longitude,
	salary_min, salary_max, currency, type, skills, description, requirements, benefits,
	source, external_url, fingerprint, is_active, posted_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, TRUE, $20, now())
ON CONFLICT (fingerprint) DO NOTHING
RETURNING id, is_active, updated_at`,
		j.Title, j.Company, nullable(j.LogoURL), j.City, j.District, j.LocationText, j.Latitude, j.Longitude,
		j.SalaryMin, j.SalaryMax, j.Currency, string(j.Type), nonNil(j.Skills), nullable(j.Description),
		nonNil(j.Requirements), nonNil(j.Benefits), string(j.Source), nullable(j.ExternalURL), j.Fingerprint,
		j.PostedAt,
	)

	if err := row.Scan(&j.ID, &j.IsActive, &j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicateFingerprint
		}
		return errors.Wrap(err, "insert job")
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, errors.Wrap(err, "get job")
	}
	return j, nil
}

// FindByFingerprint returns nil without error when no job carries fingerprint.
func (r *PostgresJobRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE fingerprint = $1`, fingerprint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find job by fingerprint")
	}
	return &j, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	row := r.db.QueryRow(ctx, `
UPDATE jobs SET title = $2, company = $3, logo_url = $4, city = $5, district = $6, location_text = $7,
	latitude = $8, longitude = $9, salary_min = $10, salary_max = $11, currency = $12, type = $13,
	skills = $14, description = $15, requirements = $16, benefits = $17, source = $18,
	external_url = $19, fingerprint = $20, is_active = $21, updated_at = now()
WHERE id = $1
RETURNING updated_at`,
		j.ID, j.Title, j.Company, nullable(j.LogoURL), j.City, j.District, j.LocationText,
		j.Latitude, j.Longitude, j.SalaryMin, j.SalaryMax, j.Currency, string(j.Type),
		nonNil(j.Skills), nullable(j.Description), nonNil(j.Requirements), nonNil(j.Benefits), string(j.Source),
		nullable(j.ExternalURL), j.Fingerprint, j.IsActive,
	)

	if err := row.Scan(&j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateFingerprint
		}
		return errors.Wrap(err, "update job")
	}
	return nil
}

func (r *PostgresJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return errors.Wrap(err, "deactivate job")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns active jobs matching f, newest first. Query, City and District
// match case-insensitive substrings.
func (r *PostgresJobRepository) ListActive(ctx context.Context, f JobFilter) ([]job.Job, error) {
	where := []string{"is_active"}
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + escapeLike(q) + "%")
		where = append(where, "(title ILIKE "+p+" OR company ILIKE "+p+" OR description ILIKE "+p+
			" OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE "+p+"))")
	}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, "city ILIKE "+arg("%"+escapeLike(c)+"%"))
	}
	if d := strings.TrimSpace(f.District); d != "" {
		where = append(where, "district ILIKE "+arg("%"+escapeLike(d)+"%"))
	}
	if c := strings.TrimSpace(f.Company); c != "" {
		where = append(where, "lower(company) = lower("+arg(c)+")")
	}
	if f.Type != "" {
		where = append(where, "type = "+arg(string(f.Type)))
	}
	if f.Source != "" {
		where = append(where, "source = "+arg(string(f.Source)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + strings.Join(where, " AND ") + ` ORDER BY posted_at DESC, id`
	return r.list(ctx, query, args...)
}

func (r *PostgresJobRepository) ListActiveInBounds(ctx context.Context, b geo.Bounds) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs
WHERE is_active AND latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4
ORDER BY posted_at DESC, id`, b.South, b.North, b.West, b.East)
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list jobs")
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list jobs")
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j       job.Job
		jobType string
		source  string
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.LogoURL, &j.City, &j.District, &j.LocationText,
		&j.Latitude, &j.Longitude, &j.SalaryMin, &j.SalaryMax, &j.Currency, &jobType, &j.Skills,
		&j.Description, &j.Requirements, &j.Benefits, &source, &j.ExternalURL,
		&j.Fingerprint, &j.IsActive, &j.PostedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Source = job.Source(source)
	return j, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
