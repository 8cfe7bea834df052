package seeder

import (
	"context"
	"errors"

	"jobmarket/internal/database"
	"jobmarket/internal/domain/job"
	"jobmarket/internal/domain/skills"
	"jobmarket/internal/repository"
	"jobmarket/internal/usecase"
)

// SampleJobsSeeder stores a handful of postings through the job usecase so
// they carry real fingerprints and extracted skills. Re-runs are no-ops.
type SampleJobsSeeder struct {
	Taxonomy *skills.Taxonomy
}

func (SampleJobsSeeder) Name() string { return "jobs" }

func sampleJobs() []usecase.JobInput {
	f := func(v float64) *float64 { return &v }
	return []usecase.JobInput{
		{
			Title:        "Backend Engineer (Go)",
			Company:      "Northwind Labs",
			City:         "Bangalore",
			District:     "Koramangala",
			LocationText: "Koramangala, Bangalore",
			SalaryMin:    f(1800000),
			SalaryMax:    f(2800000),
			Currency:     "INR",
			Type:         job.TypeFullTime,
			Description:  "Build Go services and REST APIs backed by PostgreSQL and Redis. Ship with Docker.",
			ExternalURL:  "https://careers.northwind.example/jobs/backend-go",
		},
		{
			Title:        "Frontend Developer",
			Company:      "Blue Ocean Digital",
			City:         "Pune",
			District:     "Hinjewadi",
			LocationText: "Hinjewadi, Pune",
			Type:         job.TypeFullTime,
			Description:  "React and TypeScript single page apps styled with Tailwind; tests in Jest.",
			ExternalURL:  "https://blueocean.example/careers/frontend",
		},
		{
			Title:        "DevOps Engineer",
			Company:      "CloudKraft",
			City:         "Hyderabad",
			District:     "Gachibowli",
			LocationText: "Gachibowli, Hyderabad",
			Type:         job.TypeContract,
			Description:  "Operate Kubernetes clusters on AWS with Terraform, Prometheus and Grafana.",
			ExternalURL:  "https://cloudkraft.example/jobs/devops",
		},
		{
			Title:        "Data Science Intern",
			Company:      "Insight Works",
			City:         "Mumbai",
			District:     "Andheri",
			LocationText: "Andheri, Mumbai",
			Type:         job.TypeInternship,
			Description:  "Explore data with Python, Pandas and Jupyter notebooks.",
			ExternalURL:  "https://insightworks.example/jobs/ds-intern",
		},
		{
			Title:        "Product Designer",
			Company:      "Pixel Forge",
			City:         "Delhi",
			District:     "Saket",
			LocationText: "Saket, Delhi",
			Type:         job.TypeFreelance,
			Description:  "Design flows in Figma and hand off prototypes.",
			ExternalURL:  "https://pixelforge.example/jobs/designer",
		},
	}
}

func (s SampleJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "company", "fingerprint", "skills"); err != nil {
		return err
	}

	jobs := usecase.NewJobs(repository.NewPostgresJobRepository(db), s.Taxonomy, nil)
	for _, in := range sampleJobs() {
		in.Source = job.SourceManual
		if _, err := jobs.CreateJob(ctx, in); err != nil && !errors.Is(err, usecase.ErrJobAlreadyExists) {
			return err
		}
	}
	return nil
}
