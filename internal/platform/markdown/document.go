// Package markdown reads and writes notes made of a YAML header and a body.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

var ErrUnterminated = errors.New("frontmatter has no closing fence")

// Encode writes header as YAML between fences, followed by body.
func Encode(header any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(header); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	buf.WriteString(fence + "\n\n")
	buf.WriteString(strings.TrimLeft(body, "\n"))
	return buf.Bytes(), nil
}

// Decode fills header from the leading YAML block of raw and returns the
// body. A note without a header decodes nothing and returns raw unchanged.
func Decode(raw []byte, header any) (string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, fence+"\n") {
		return text, nil
	}
	rest := text[len(fence)+1:]
	head, body, ok := strings.Cut(rest, "\n"+fence+"\n")
	if !ok {
		if strings.HasSuffix(rest, "\n"+fence) {
			head, body = strings.TrimSuffix(rest, "\n"+fence), ""
		} else {
			return "", ErrUnterminated
		}
	}
	if err := yaml.Unmarshal([]byte(head), header); err != nil {
		return "", fmt.Errorf("decode header: %w", err)
	}
	return strings.TrimLeft(body, "\n"), nil
}
