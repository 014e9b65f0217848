// Package templating fills outreach templates and varies their wording.
package templating

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField      = errors.New("template field not provided")
	ErrMalformedTemplate = errors.New("malformed template")
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("template field %q not provided", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Render replaces every {field} in tmpl with fields[field]. "{{" and "}}" are
// literal braces. A placeholder without a value is an error, not an empty
// string.
func Render(tmpl string, fields map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		switch c := tmpl[i]; c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := tmpl[i+1 : i+1+end]
			if strings.IndexByte(name, '{') >= 0 {
				return "", fmt.Errorf("%w: nested '{' at offset %d", ErrMalformedTemplate, i)
			}
			value, ok := fields[name]
			if !ok {
				return "", &MissingFieldError{Field: name}
			}
			b.WriteString(value)
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}
