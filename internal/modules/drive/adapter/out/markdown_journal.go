package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"focusdrive/internal/modules/drive/domain"
	driveout "focusdrive/internal/modules/drive/port/out"
	"focusdrive/internal/platform/geo"
	"focusdrive/internal/platform/markdown"
	"focusdrive/internal/platform/slug"
)

const (
	postcardSchemaVersion = 1
	indexFile             = "index.md"
)

var indexBlock = markdown.Block{Name: "focusdrive:postcards"}

type postcardHeader struct {
	SchemaVersion int       `yaml:"schema_version"`
	SessionID     string    `yaml:"session_id"`
	RouteID       string    `yaml:"route_id"`
	Destination   string    `yaml:"destination"`
	Latitude      float64   `yaml:"latitude"`
	Longitude     float64   `yaml:"longitude"`
	Vehicle       string    `yaml:"vehicle"`
	Miles         float64   `yaml:"miles"`
	Minutes       int       `yaml:"minutes"`
	Rating        int       `yaml:"rating"`
	EarnedAt      time.Time `yaml:"earned_at"`
}

func (h postcardHeader) postcard() domain.Postcard {
	return domain.Postcard{
		SessionID:       h.SessionID,
		RouteID:         h.RouteID,
		DestinationName: h.Destination,
		VehicleName:     h.Vehicle,
		Coordinate:      geo.Coordinate{Lat: h.Latitude, Lon: h.Longitude},
		Miles:           h.Miles,
		Minutes:         h.Minutes,
		Rating:          h.Rating,
		EarnedAt:        h.EarnedAt,
	}
}

// MarkdownJournal writes one note per completed drive under
// <dir>/YYYY/MM/ and keeps a generated list in <dir>/index.md.
type MarkdownJournal struct {
	dir string
}

func NewMarkdownJournal(dir string) driveout.Journal {
	return &MarkdownJournal{dir: dir}
}

func (j *MarkdownJournal) WritePostcard(ctx context.Context, p domain.Postcard) (string, error) {
	earned := p.EarnedAt.UTC()
	dir := filepath.Join(j.dir, earned.Format("2006"), earned.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", earned.Format("20060102-150405"), slug.Make(p.DestinationName))
	path := filepath.Join(dir, name)

	header := postcardHeader{
		SchemaVersion: postcardSchemaVersion,
		SessionID:     p.SessionID,
		RouteID:       p.RouteID,
		Destination:   p.DestinationName,
		Latitude:      p.Coordinate.Lat,
		Longitude:     p.Coordinate.Lon,
		Vehicle:       p.VehicleName,
		Miles:         p.Miles,
		Minutes:       p.Minutes,
		Rating:        p.Rating,
		EarnedAt:      earned,
	}
	body := fmt.Sprintf("# Postcard from %s\n\n- Vehicle: %s\n- Distance: %.1f miles\n- Time: %d minutes\n- Rating: %s\n- Coordinates: %.4f, %.4f\n",
		p.DestinationName, p.VehicleName, p.Miles, p.Minutes, stars(p.Rating), p.Coordinate.Lat, p.Coordinate.Lon)
	rendered, err := markdown.Encode(header, body)
	if err != nil {
		return "", fmt.Errorf("render postcard: %w", err)
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return "", fmt.Errorf("write postcard: %w", err)
	}
	if err := j.rebuildIndex(ctx); err != nil {
		return path, err
	}
	return path, nil
}

func (j *MarkdownJournal) List(_ context.Context, limit int) ([]driveout.JournalEntry, error) {
	var entries []driveout.JournalEntry
	err := filepath.WalkDir(j.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == j.dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") || filepath.Base(path) == indexFile {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read postcard: %w", err)
		}
		var header postcardHeader
		body, err := markdown.Decode(raw, &header)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, driveout.JournalEntry{Path: path, Postcard: header.postcard(), Body: body})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk journal: %w", err)
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Postcard.EarnedAt.After(entries[b].Postcard.EarnedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (j *MarkdownJournal) rebuildIndex(ctx context.Context) error {
	entries, err := j.List(ctx, 0)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, err := filepath.Rel(j.dir, e.Path)
		if err != nil {
			rel = e.Path
		}
		lines = append(lines, fmt.Sprintf("- %s [%s](%s) %s",
			e.Postcard.EarnedAt.Format("2006-01-02"), e.Postcard.DestinationName, filepath.ToSlash(rel), stars(e.Postcard.Rating)))
	}

	path := filepath.Join(j.dir, indexFile)
	current := "# Drive journal\n"
	if raw, err := os.ReadFile(path); err == nil {
		current = string(raw)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read journal index: %w", err)
	}
	updated := indexBlock.Render(current, lines)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write journal index: %w", err)
	}
	return nil
}

func stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
