package item

import (
	"context"
	"strings"
	"testing"

	"github.com/shelf-ui/shelf/pkg/dom"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

func newStore(t *testing.T) *thumbs.MemStore {
	t.Helper()
	store := thumbs.NewMemStore()
	store.Put("cover-1", []byte("png-bytes"), "image/png")
	store.Put("cover-2", []byte("jpg-bytes"), "image/jpeg")
	return store
}

func TestMountCycleWithoutFetch(t *testing.T) {
	// Scenario: mount, unmount, remount with no fetch resolving in between.
	// Nothing may be acquired until data exists.
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	parent := dom.NewElement("main")

	tile.Mount(parent)
	tile.Unmount(parent)
	tile.Mount(parent)

	if tile.derives != 0 {
		t.Errorf("derives = %d before fetch, want 0", tile.derives)
	}
	if tile.ObjectURL() != "" {
		t.Errorf("ObjectURL() = %q before fetch, want empty", tile.ObjectURL())
	}
}

func TestReloadWhileAttachedPresents(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	parent := dom.NewElement("main")
	tile.Mount(parent)

	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if tile.derives != 1 {
		t.Errorf("derives = %d, want 1", tile.derives)
	}
	if !strings.HasPrefix(tile.ObjectURL(), "data:image/png;base64,") {
		t.Errorf("ObjectURL() = %q, want data URI", tile.ObjectURL())
	}
}

func TestReloadWhileDetachedDefersPresentation(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))

	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !tile.Loaded() {
		t.Fatalf("Loaded() = false after Reload")
	}
	if tile.derives != 0 || tile.ObjectURL() != "" {
		t.Fatalf("presented while detached: derives=%d url=%q", tile.derives, tile.ObjectURL())
	}

	parent := dom.NewElement("main")
	tile.Mount(parent)
	if tile.derives != 1 {
		t.Errorf("derives = %d after mount, want 1", tile.derives)
	}
}

func TestIntermediateMountPairsDoNotRederive(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	first := dom.NewElement("main")
	second := dom.NewElement("aside")
	tile.Mount(first)
	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	// Move between parents without crossing zero: no re-acquire, no release.
	tile.Mount(second)
	tile.Unmount(first)

	if tile.derives != 1 {
		t.Errorf("derives = %d after relocation, want 1", tile.derives)
	}
	if tile.ObjectURL() == "" {
		t.Errorf("presentation released during relocation")
	}
}

func TestDetachRevokesAndReattachRederives(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	parent := dom.NewElement("main")
	tile.Mount(parent)
	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	tile.Unmount(parent)
	if tile.ObjectURL() != "" {
		t.Errorf("ObjectURL() = %q after detach, want empty", tile.ObjectURL())
	}
	if _, ok := tile.img.GetAttr("src"); ok {
		t.Errorf("img src survived detach")
	}

	// Reattach: present again from cached bytes, no refetch needed.
	tile.Mount(parent)
	if tile.derives != 2 {
		t.Errorf("derives = %d after reattach, want 2", tile.derives)
	}
	if tile.ObjectURL() == "" {
		t.Errorf("presentation missing after reattach")
	}
}

func TestSetDataUpdatesTitleInPlace(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	parent := dom.NewElement("main")
	tile.Mount(parent)
	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	tile.SetData("Doom II", "cover-1")

	if tile.Title() != "Doom II" {
		t.Errorf("Title() = %q, want Doom II", tile.Title())
	}
	if tile.ObjectURL() == "" {
		t.Errorf("title update dropped the presented thumbnail")
	}
}

func TestSetDataNewThumbKeyInvalidates(t *testing.T) {
	tile := New("app-1", "Doom", "cover-1", newStore(t))
	parent := dom.NewElement("main")
	tile.Mount(parent)
	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	tile.SetData("Doom", "cover-2")

	if tile.Loaded() {
		t.Errorf("stale bytes kept after thumb key change")
	}
	if tile.ObjectURL() != "" {
		t.Errorf("stale presentation kept after thumb key change")
	}

	if err := tile.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !strings.HasPrefix(tile.ObjectURL(), "data:image/jpeg;base64,") {
		t.Errorf("ObjectURL() = %q, want jpeg data URI", tile.ObjectURL())
	}
}

func TestReloadMissingThumb(t *testing.T) {
	tile := New("app-1", "Doom", "nope", newStore(t))
	if err := tile.Reload(context.Background()); err == nil {
		t.Errorf("Reload() with missing key returned nil error")
	}
	if tile.Loaded() {
		t.Errorf("Loaded() = true after failed reload")
	}
}

func TestRenderedShape(t *testing.T) {
	tile := New("app-1", "Doom & Friends", "cover-1", newStore(t))
	parent := dom.NewElement("main")
	tile.Mount(parent)

	got := dom.RenderString(parent)
	want := `<main><div class="tile" data-id="app-1">` +
		`<img class="tile-thumb" alt="Doom &amp; Friends">` +
		`<span class="tile-title">Doom &amp; Friends</span></div></main>`
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}
