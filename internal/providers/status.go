package providers

import "strings"

type NovelStatus string

const (
	StatusUnknown   NovelStatus = "Unknown"
	StatusOngoing   NovelStatus = "Ongoing"
	StatusCompleted NovelStatus = "Completed"
	StatusOnHiatus  NovelStatus = "On Hiatus"
)

// ParseStatus maps free-form status text from a site onto NovelStatus.
func ParseStatus(text string) NovelStatus {
	s := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.Contains(s, "ongoing"):
		return StatusOngoing
	case strings.Contains(s, "completed"):
		return StatusCompleted
	case strings.Contains(s, "hiatus"):
		return StatusOnHiatus
	default:
		return StatusUnknown
	}
}
