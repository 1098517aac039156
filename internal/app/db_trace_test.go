package app

import (
	"strings"
	"testing"
)

func TestFormatQueryForTrace(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		got := formatQueryForTrace("\nSELECT id\n\tFROM acquisitions\n WHERE dropped_at IS NULL\n")
		want := "SELECT id FROM acquisitions WHERE dropped_at IS NULL"
		if got != want {
			t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, got)
		}
	})

	t.Run("caps long statements", func(t *testing.T) {
		long := "SELECT " + strings.Repeat("season_year, ", 200) + "id FROM acquisitions"
		got := formatQueryForTrace(long)
		if len(got) != maxTracedQueryLen+len("...") {
			t.Fatalf("unexpected length %d", len(got))
		}
		if !strings.HasSuffix(got, "...") {
			t.Fatalf("expected truncation marker, got %q", got[len(got)-10:])
		}
	})

	t.Run("empty stays empty", func(t *testing.T) {
		if got := formatQueryForTrace("   "); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})
}
