package dto

import (
	"jobmarket/internal/domain/course"
	"jobmarket/internal/usecase"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Title           string   `json:"title" validate:"required,max=300"`
	Description     string   `json:"description"`
	Provider        string   `json:"provider" validate:"required,oneof=youtube udemy coursera linkedin internal other"`
	URL             string   `json:"url" validate:"required,url"`
	DurationMinutes *int     `json:"durationMinutes" validate:"omitempty,gt=0"`
	Level           string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Tags            []string `json:"tags" validate:"required,min=1,dive,required"`
	ThumbnailURL    string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Instructor      string   `json:"instructor"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency        string   `json:"currency" validate:"omitempty,len=3"`
	IsFree          bool     `json:"isFree"`
}

func (r CreateCourseRequest) ToInput() usecase.CourseInput {
	return usecase.CourseInput{
		Title:           r.Title,
		Description:     r.Description,
		Provider:        course.Provider(r.Provider),
		URL:             r.URL,
		DurationMinutes: r.DurationMinutes,
		Level:           course.Level(r.Level),
		Tags:            r.Tags,
		ThumbnailURL:    r.ThumbnailURL,
		Instructor:      r.Instructor,
		Rating:          r.Rating,
		Price:           r.Price,
		Currency:        r.Currency,
		IsFree:          r.IsFree,
	}
}

type RecommendCoursesRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
	Limit  int      `json:"limit" validate:"gte=0,lte=100"`
}

type CourseResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Provider        string    `json:"provider"`
	URL             string    `json:"url"`
	DurationMinutes *int      `json:"durationMinutes"`
	Level           string    `json:"level,omitempty"`
	Tags            []string  `json:"tags"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	Instructor      string    `json:"instructor,omitempty"`
	Rating          *float64  `json:"rating"`
	Price           *float64  `json:"price"`
	Currency        string    `json:"currency"`
	IsFree          bool      `json:"isFree"`
	CreatedAt       string    `json:"createdAt"`
}

type CourseRecommendationResponse struct {
	CourseResponse
	RelevanceScore float64 `json:"relevanceScore"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Provider:        string(c.Provider),
		URL:             c.URL,
		DurationMinutes: c.DurationMinutes,
		Level:           string(c.Level),
		Tags:            nonNil(c.Tags),
		ThumbnailURL:    c.ThumbnailURL,
		Instructor:      c.Instructor,
		Rating:          c.Rating,
		Price:           c.Price,
		Currency:        c.Currency,
		IsFree:          c.IsFree,
		CreatedAt:       formatTime(c.CreatedAt),
	}
}

func NewCourseResponses(items []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

func NewCourseRecommendationResponses(items []usecase.CourseRecommendation) []CourseRecommendationResponse {
	out := make([]CourseRecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CourseRecommendationResponse{CourseResponse: NewCourseResponse(it.Course), RelevanceScore: it.RelevanceScore})
	}
	return out
}
