package seeder

import (
	"context"

	"jobmarket/internal/database"
	"jobmarket/internal/domain/course"
	"jobmarket/internal/domain/skills"

	"github.com/pkg/errors"
)

type CoursesSeeder struct{}

func (CoursesSeeder) Name() string { return "courses" }

var sampleCourses = []struct {
	Title    string
	Provider course.Provider
	URL      string
	Level    course.Level
	Minutes  int
	Tags     []string
	IsFree   bool
}{
	{"Go: The Complete Developer's Guide", course.ProviderUdemy, "https://www.udemy.com/course/go-the-complete-developers-guide/", course.LevelBeginner, 540, []string{"golang", "concurrency"}, false},
	{"Docker and Kubernetes: The Complete Guide", course.ProviderUdemy, "https://www.udemy.com/course/docker-and-kubernetes-the-complete-guide/", course.LevelIntermediate, 1320, []string{"docker", "kubernetes", "ci"}, false},
	{"PostgreSQL Tutorial for Beginners", course.ProviderYouTube, "https://www.youtube.com/watch?v=SpfIwlAYaKk", course.LevelBeginner, 240, []string{"postgresql", "sql"}, true},
	{"React - The Complete Guide", course.ProviderUdemy, "https://www.udemy.com/course/react-the-complete-guide-incl-redux/", course.LevelBeginner, 2880, []string{"react", "javascript"}, false},
	{"Machine Learning Specialization", course.ProviderCoursera, "https://www.coursera.org/specializations/machine-learning-introduction", course.LevelIntermediate, 5400, []string{"python", "numpy", "scikit-learn"}, false},
	{"Figma UI/UX Design Essentials", course.ProviderLinkedIn, "https://www.linkedin.com/learning/figma-essential-training-the-basics", course.LevelBeginner, 120, []string{"figma", "design"}, false},
	{"AWS Cloud Practitioner Essentials", course.ProviderOther, "https://explore.skillbuilder.aws/learn/course/external/view/elearning/134/aws-cloud-practitioner-essentials", course.LevelBeginner, 360, []string{"aws", "cloud"}, true},
	{"Testing JavaScript with Jest", course.ProviderYouTube, "https://www.youtube.com/watch?v=FgnxcUQ5vho", course.LevelIntermediate, 90, []string{"jest", "javascript", "testing"}, true},
}

func (CoursesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "courses", "id", "title", "provider", "url", "level", "tags", "is_free"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, c := range sampleCourses {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO courses (title, provider, url, duration_minutes, level, tags, is_free)
VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (url) DO NOTHING`,
			c.Title, string(c.Provider), c.URL, c.Minutes, string(c.Level), skills.LowerAll(c.Tags), c.IsFree,
		); err != nil {
			return errors.Wrapf(err, "insert course %q", c.Title)
		}
	}

	return errors.Wrap(tx.Commit(ctx), "commit")
}
