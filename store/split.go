package store

import "strings"

// SplitStatements cuts a script on semicolons outside quotes and comments
// Empty statements and comment-only fragments are dropped
func SplitStatements(script string) []string {
	var out []string
	start := 0
	emit := func(end int) {
		if text := strings.TrimSpace(script[start:end]); stripLeadingComments(text) != "" {
			out = append(out, text)
		}
	}

	for i := 0; i < len(script); i++ {
		switch c := script[i]; c {
		case '\'', '"', '`':
			j := strings.IndexByte(script[i+1:], c)
			if j < 0 {
				i = len(script)
			} else {
				i += j + 1
			}
		case '[':
			j := strings.IndexByte(script[i+1:], ']')
			if j < 0 {
				i = len(script)
			} else {
				i += j + 1
			}
		case '-':
			if i+1 < len(script) && script[i+1] == '-' {
				j := strings.IndexByte(script[i:], '\n')
				if j < 0 {
					i = len(script)
				} else {
					i += j
				}
			}
		case '/':
			if i+1 < len(script) && script[i+1] == '*' {
				j := strings.Index(script[i+2:], "*/")
				if j < 0 {
					i = len(script)
				} else {
					i += j + 3
				}
			}
		case ';':
			emit(i)
			start = i + 1
		}
	}
	if start < len(script) {
		emit(len(script))
	}
	return out
}
