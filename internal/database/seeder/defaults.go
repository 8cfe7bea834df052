package seeder

import "jobmarket/internal/domain/skills"

func Defaults(taxonomy *skills.Taxonomy) []Seeder {
	return []Seeder{
		CoursesSeeder{},
		SampleJobsSeeder{Taxonomy: taxonomy},
	}
}
