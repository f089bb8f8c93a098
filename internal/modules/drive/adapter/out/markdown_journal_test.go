package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	driveout "focusdrive/internal/modules/drive/adapter/out"
	"focusdrive/internal/modules/drive/domain"
	"focusdrive/internal/platform/geo"
)

func TestMarkdownJournalWritesNotesAndIndex(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	journal := driveout.NewMarkdownJournal(dir)
	ctx := context.Background()

	first := domain.Postcard{
		SessionID: "s1", RouteID: "r1", DestinationName: "Lake Tahoe",
		Coordinate: geo.Coordinate{Lat: 39.0968, Lon: -120.0324}, VehicleName: "Classic Sedan",
		Miles: 190.5, Minutes: 190, Rating: 1, EarnedAt: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
	second := first
	second.SessionID = "s2"
	second.DestinationName = "Big Sur"
	second.EarnedAt = first.EarnedAt.Add(24 * time.Hour)

	path, err := journal.WritePostcard(ctx, first)
	if err != nil {
		t.Fatalf("write first: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(dir, "2026", "04")) || !strings.HasSuffix(path, "lake-tahoe.md") {
		t.Fatalf("unexpected postcard path: %s", path)
	}

	indexPath := filepath.Join(dir, "index.md")
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	notes := string(raw) + "\nMy own notes.\n"
	if err := os.WriteFile(indexPath, []byte(notes), 0o644); err != nil {
		t.Fatalf("edit index: %v", err)
	}
	if _, err := journal.WritePostcard(ctx, second); err != nil {
		t.Fatalf("write second: %v", err)
	}

	entries, err := journal.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].Postcard.DestinationName != "Big Sur" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[1].Postcard.Miles != 190.5 || entries[1].Postcard.Rating != 1 || !entries[1].Postcard.EarnedAt.Equal(first.EarnedAt) {
		t.Fatalf("postcard did not round trip: %+v", entries[1].Postcard)
	}

	raw, err = os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	index := string(raw)
	if !strings.Contains(index, "Big Sur") || !strings.Contains(index, "Lake Tahoe") || !strings.Contains(index, "My own notes.") {
		t.Fatalf("index lost content: %s", index)
	}

	limited, err := journal.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected limit to apply: %v %d", err, len(limited))
	}
}

func TestMarkdownJournalListEmpty(t *testing.T) {
	t.Parallel()
	entries, err := driveout.NewMarkdownJournal(filepath.Join(t.TempDir(), "missing")).List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
