// Package jsonscan locates JSON values embedded in free-form text, such as a
// model reply that wraps its JSON answer in prose.
package jsonscan

// FirstObject returns the first balanced {...} object substring in s. Brace
// counting is string-aware so braces inside JSON string literals do not
// affect the balance. The second return is false when no complete object is
// present.
func FirstObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
