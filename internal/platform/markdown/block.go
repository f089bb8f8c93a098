package markdown

import "strings"

// Block is a generated region of a note delimited by HTML comments, so
// hand-written text around it survives regeneration.
type Block struct {
	Name string
}

func (b Block) open() string  { return "<!-- " + b.Name + ":start -->" }
func (b Block) close() string { return "<!-- " + b.Name + ":end -->" }

// Render places lines inside the block in doc. A missing block is appended.
func (b Block) Render(doc string, lines []string) string {
	region := b.open() + "\n"
	if len(lines) > 0 {
		region += strings.Join(lines, "\n") + "\n"
	}
	region += b.close()

	before, after, found := strings.Cut(doc, b.open())
	if found {
		if _, tail, ok := strings.Cut(after, b.close()); ok {
			return before + region + tail
		}
	}
	doc = strings.TrimRight(doc, "\n")
	if doc == "" {
		return region + "\n"
	}
	return doc + "\n\n" + region + "\n"
}

// Lines returns what is currently inside the block, or nil when absent.
func (b Block) Lines(doc string) []string {
	_, after, ok := strings.Cut(doc, b.open())
	if !ok {
		return nil
	}
	inner, _, ok := strings.Cut(after, b.close())
	if !ok {
		return nil
	}
	inner = strings.Trim(inner, "\n")
	if inner == "" {
		return nil
	}
	return strings.Split(inner, "\n")
}
