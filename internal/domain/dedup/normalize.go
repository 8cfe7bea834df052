package dedup

import "strings"

// JobData holds the free-text fields cleaned before a posting is stored.
type JobData struct {
	Title        string
	Company      string
	LocationText string
	Description  string
}

// NormalizeJobData trims every field and collapses internal whitespace runs to one space.
// Case is preserved.
func NormalizeJobData(d JobData) JobData {
	return JobData{
		Title:        CollapseWhitespace(d.Title),
		Company:      CollapseWhitespace(d.Company),
		LocationText: CollapseWhitespace(d.LocationText),
		Description:  CollapseWhitespace(d.Description),
	}
}

func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
