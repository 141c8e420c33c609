package render

import "strings"

// StringWidth returns the display width of a string in terminal cells,
// counting East Asian wide characters as two cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		if isWideRune(r) {
			width += 2
		} else {
			width++
		}
	}
	return width
}

func isWideRune(r rune) bool {
	return (r >= 0x1100 && r <= 0x115F) ||
		(r >= 0x2E80 && r <= 0x303E) ||
		(r >= 0x3041 && r <= 0x33FF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0xA000 && r <= 0xA4CF) ||
		(r >= 0xAC00 && r <= 0xD7A3) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0xFE10 && r <= 0xFE6B) ||
		(r >= 0xFF01 && r <= 0xFF60) ||
		(r >= 0xFFE0 && r <= 0xFFE6) ||
		(r >= 0x20000 && r <= 0x3FFFD)
}

// WrapText wraps text to fit within width cells, breaking on spaces.
// A blank input produces exactly one blank output line.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range words {
		wordWidth := StringWidth(word)
		switch {
		case currentWidth == 0:
			if wordWidth > width {
				lines = append(lines, breakWord(word, width)...)
				continue
			}
			current.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= width:
			current.WriteByte(' ')
			current.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			flush()
			if wordWidth > width {
				lines = append(lines, breakWord(word, width)...)
				continue
			}
			current.WriteString(word)
			currentWidth = wordWidth
		}
	}
	if currentWidth > 0 {
		flush()
	}
	return lines
}

// WrapIndent wraps text with a prefix on the first line and a
// different prefix on every continuation line. Both prefixes count
// against the width.
func WrapIndent(text string, width int, initial, subsequent string) []string {
	inner := width - StringWidth(initial)
	if w := width - StringWidth(subsequent); w < inner {
		inner = w
	}
	wrapped := WrapText(text, inner)
	lines := make([]string, len(wrapped))
	for i, ln := range wrapped {
		if i == 0 {
			lines[i] = initial + ln
		} else {
			lines[i] = subsequent + ln
		}
	}
	return lines
}

func breakWord(word string, width int) []string {
	var result []string
	var current strings.Builder
	currentWidth := 0
	for _, r := range word {
		rw := 1
		if isWideRune(r) {
			rw = 2
		}
		if currentWidth+rw > width {
			result = append(result, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += rw
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}
