package usecase

import (
	"context"
	"testing"
	"time"

	"jobmarket/internal/domain/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseInput(title, url string, tags ...string) CourseInput {
	return CourseInput{Title: title, URL: url, Provider: course.ProviderUdemy, Tags: tags}
}

func TestCourses_CreateCourse(t *testing.T) {
	uc := NewCourses(&fakeCourseRepo{}, nil)

	c, err := uc.CreateCourse(context.Background(), courseInput("  Docker  Deep Dive", "https://udemy.example/docker", "Docker", "docker", "CI"))
	require.NoError(t, err)
	assert.Equal(t, "Docker Deep Dive", c.Title)
	assert.Equal(t, []string{"docker", "ci"}, c.Tags)
	assert.Equal(t, course.LevelBeginner, c.Level)

	_, err = uc.CreateCourse(context.Background(), courseInput("Again", "https://udemy.example/docker"))
	assert.ErrorIs(t, err, ErrCourseAlreadyExists)

	_, err = uc.CreateCourse(context.Background(), courseInput("", "not a url"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCourses_GetCourse_NotFound(t *testing.T) {
	uc := NewCourses(&fakeCourseRepo{}, nil)
	_, err := uc.GetCourse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourses_ListCourses(t *testing.T) {
	uc := NewCourses(&fakeCourseRepo{}, nil)
	for _, in := range []CourseInput{
		courseInput("One", "https://x.example/1"),
		courseInput("Two", "https://x.example/2"),
		{Title: "Three", URL: "https://x.example/3", Provider: course.ProviderCoursera},
	} {
		_, err := uc.CreateCourse(context.Background(), in)
		require.NoError(t, err)
	}

	page, err := uc.ListCourses(context.Background(), CourseListParams{Provider: course.ProviderUdemy, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Pagination.Total)

	_, err = uc.ListCourses(context.Background(), CourseListParams{Level: "expert"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCourses_RecommendCourses(t *testing.T) {
	repo := &fakeCourseRepo{}
	uc := NewCourses(repo, NewCachedCourses(time.Minute))
	ctx := context.Background()

	for _, in := range []CourseInput{
		courseInput("React Basics", "https://x.example/react", "react", "javascript"),
		courseInput("Fullstack", "https://x.example/full", "react", "node"),
		courseInput("Figma", "https://x.example/figma", "figma"),
	} {
		_, err := uc.CreateCourse(ctx, in)
		require.NoError(t, err)
	}

	recs, err := uc.RecommendCourses(ctx, []string{"React", "JavaScript"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "React Basics", recs[0].Title)
	assert.Equal(t, 1.0, recs[0].RelevanceScore)
	assert.Equal(t, "Fullstack", recs[1].Title)
	assert.Equal(t, 0.5, recs[1].RelevanceScore)
	assert.Equal(t, 0.0, recs[2].RelevanceScore)

	recs, err = uc.RecommendCourses(ctx, []string{"react"}, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	assert.Equal(t, 1, repo.lists, "active courses are served from the cache")

	_, err = uc.RecommendCourses(ctx, nil, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCourses_RecommendCourses_LooseTagMatch(t *testing.T) {
	uc := NewCourses(&fakeCourseRepo{}, nil)
	ctx := context.Background()

	created, err := uc.CreateCourse(ctx, courseInput("Node Fundamentals", "https://x.example/node", "Node.js"))
	require.NoError(t, err)
	assert.Equal(t, []string{"node.js"}, created.Tags)

	recs, err := uc.RecommendCourses(ctx, []string{"JS"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1.0, recs[0].RelevanceScore)

	_, err = uc.RecommendCourses(ctx, []string{" ", ""}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCourses_CreateCourse_FlushesCache(t *testing.T) {
	repo := &fakeCourseRepo{}
	uc := NewCourses(repo, NewCachedCourses(time.Minute))
	ctx := context.Background()

	_, err := uc.CreateCourse(ctx, courseInput("Go", "https://x.example/go", "golang"))
	require.NoError(t, err)
	recs, err := uc.RecommendCourses(ctx, []string{"golang"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	_, err = uc.CreateCourse(ctx, courseInput("Go Advanced", "https://x.example/go2", "golang"))
	require.NoError(t, err)
	recs, err = uc.RecommendCourses(ctx, []string{"golang"}, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
