package markdown_test

import (
	"errors"
	"strings"
	"testing"

	"focusdrive/internal/platform/markdown"
)

type note struct {
	Title string `yaml:"title"`
	Count int    `yaml:"count"`
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()
	raw, err := markdown.Encode(note{Title: "Big Sur", Count: 3}, "\n# Hello\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(string(raw), "---\ntitle: Big Sur\n") {
		t.Fatalf("unexpected header: %q", raw)
	}

	var got note
	body, err := markdown.Decode(raw, &got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Big Sur" || got.Count != 3 {
		t.Fatalf("header mismatch: %+v", got)
	}
	if body != "# Hello\n" {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestDecodeWithoutHeader(t *testing.T) {
	t.Parallel()
	var got note
	body, err := markdown.Decode([]byte("plain text\n"), &got)
	if err != nil || body != "plain text\n" || got != (note{}) {
		t.Fatalf("unexpected result: %q %+v %v", body, got, err)
	}
}

func TestDecodeUnterminated(t *testing.T) {
	t.Parallel()
	var got note
	if _, err := markdown.Decode([]byte("---\ntitle: x\n"), &got); !errors.Is(err, markdown.ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
}

func TestBlockRender(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Name: "test"}

	doc := block.Render("# Index\n", []string{"- one"})
	if doc != "# Index\n\n<!-- test:start -->\n- one\n<!-- test:end -->\n" {
		t.Fatalf("unexpected append: %q", doc)
	}

	doc += "\nkept\n"
	doc = block.Render(doc, []string{"- two", "- three"})
	if !strings.Contains(doc, "kept") || strings.Contains(doc, "- one") {
		t.Fatalf("unexpected replace: %q", doc)
	}
	if lines := block.Lines(doc); len(lines) != 2 || lines[1] != "- three" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	if empty := block.Render("", nil); empty != "<!-- test:start -->\n<!-- test:end -->\n" {
		t.Fatalf("unexpected empty render: %q", empty)
	}
	if block.Lines("nothing here") != nil {
		t.Fatal("expected nil lines for missing block")
	}
}
