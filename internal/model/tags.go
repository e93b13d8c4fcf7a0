package model

import "strings"

// ParseTags splits comma separated input into tags.
// Entries are trimmed, empty entries dropped, order and duplicates kept.
func ParseTags(input string) []string {
	return CleanTags(strings.Split(input, ","))
}

// CleanTags trims every tag and drops empty ones. Never returns nil.
func CleanTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		result = append(result, tag)
	}
	return result
}
