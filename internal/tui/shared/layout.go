package shared

import "strings"

// FitHeight pads content with blank lines, or cuts it, so it is exactly
// height lines tall. Used to keep the status bar pinned to the bottom.
func FitHeight(content string, height int) string {
	if height <= 0 {
		return content
	}
	content = strings.TrimRight(content, "\n")

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	content = strings.TrimRight(content, "\n")

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}

	if len(contentLines) >= height {
		return content
	}

	topPad := (height - len(contentLines)) / 2

	lines := make([]string, 0, height)
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, contentLines...)
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
