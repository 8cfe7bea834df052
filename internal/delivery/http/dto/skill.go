package dto

type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"required"`
}
