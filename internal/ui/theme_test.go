package ui

import "testing"

func TestNextThemeCycles(t *testing.T) {
	name := ThemeNames()[0]
	seen := map[string]bool{}
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] {
		t.Fatalf("cycle ended on %q, want %q", name, ThemeNames()[0])
	}
	if len(seen) != len(ThemeNames()) {
		t.Fatalf("visited %d themes, want %d", len(seen), len(ThemeNames()))
	}
	if got := NextTheme("Unknown"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula) = %q, want Nightfox", got)
	}
}

func TestThemesColorEveryPhase(t *testing.T) {
	statuses := []string{"checking", "connected", "disconnected", "idle", "file-selected", "uploading", "viewing-cards", "error"}
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, s := range statuses {
			if theme.StatusColors[s] == "" {
				t.Fatalf("%s: no color for %q", name, s)
			}
		}
	}
}
