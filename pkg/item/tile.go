// Package item provides Tile, the reference image-backed list item.
//
// Tile demonstrates the lifecycle-gated resource pattern: fetching the
// thumbnail bytes is independent of mount state and driven explicitly via
// Reload, while deriving and applying the presentation URL is gated on the
// cumulative mount count. A tile that is briefly detached and reattached
// neither refetches nor leaks a derived URL.
package item

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/shelf-ui/shelf/pkg/dom"
	"github.com/shelf-ui/shelf/pkg/gate"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

// Tile renders a title and a thumbnail image for one application record.
type Tile struct {
	id       string
	title    string
	thumbKey string
	store    thumbs.Store

	root  *dom.Node
	label *dom.Node
	img   *dom.Node

	gate        *gate.RefGate
	data        []byte
	contentType string
	objectURL   string // derived presentation URL, set only while attached

	derives int // 0→positive presentation derivations, for tests
}

// New creates a Tile for the given record fields. The thumbnail is not
// fetched until Reload is called.
func New(id, title, thumbKey string, store thumbs.Store) *Tile {
	t := &Tile{
		id:       id,
		title:    title,
		thumbKey: thumbKey,
		store:    store,
	}
	t.label = dom.NewText(title)
	t.img = dom.NewElement("img", dom.Class("tile-thumb"), dom.Attr("alt", title))

	caption := dom.NewElement("span", dom.Class("tile-title"))
	caption.AppendChild(t.label)

	t.root = dom.NewElement("div", dom.Class("tile"), dom.Attr("data-id", id))
	t.root.AppendChild(t.img)
	t.root.AppendChild(caption)

	t.gate = gate.New(t.present, t.revoke)
	return t
}

// ID returns the tile's stable identity key.
func (t *Tile) ID() string {
	return t.id
}

// Title returns the currently displayed title.
func (t *Tile) Title() string {
	return t.title
}

// Mount implements list.Mountable.
func (t *Tile) Mount(container *dom.Node) {
	container.AppendChild(t.root)
	t.gate.Inc()
}

// Unmount implements list.Mountable.
func (t *Tile) Unmount(container *dom.Node) {
	container.RemoveChild(t.root)
	t.gate.Dec()
}

// SetData updates the displayed record data in place. The tile instance and
// its fetched thumbnail survive; only when the thumbnail key itself changes
// are the cached bytes dropped (a later Reload fetches the new image).
func (t *Tile) SetData(title, thumbKey string) {
	if title != t.title {
		t.title = title
		t.label.SetText(title)
		t.img.SetAttr("alt", title)
	}
	if thumbKey != t.thumbKey {
		t.thumbKey = thumbKey
		if t.gate.Attached() {
			t.revoke()
		}
		t.data = nil
		t.contentType = ""
	}
}

// Reload fetches the thumbnail bytes from the store. Fetching happens
// regardless of mount state; if the tile is currently attached the new
// bytes are presented immediately.
func (t *Tile) Reload(ctx context.Context) error {
	data, contentType, err := t.store.Get(ctx, t.thumbKey)
	if err != nil {
		return fmt.Errorf("item: reload %q: %w", t.id, err)
	}
	t.data = data
	t.contentType = contentType
	if t.gate.Attached() {
		t.present()
	}
	return nil
}

// Loaded reports whether thumbnail bytes are available.
func (t *Tile) Loaded() bool {
	return t.data != nil
}

// ObjectURL returns the derived presentation URL, or "" while detached or
// before the thumbnail has loaded.
func (t *Tile) ObjectURL() string {
	return t.objectURL
}

// present derives the presentation URL from already-fetched bytes and
// applies it to the image node. Called on the 0→positive gate transition
// and again when Reload completes while attached. No-op until bytes exist.
func (t *Tile) present() {
	if t.data == nil {
		return
	}
	t.derives++
	t.objectURL = "data:" + t.contentType + ";base64," +
		base64.StdEncoding.EncodeToString(t.data)
	t.img.SetAttr("src", t.objectURL)
}

// revoke releases the derived URL and clears the visual state. Called on
// the positive→0 gate transition. The fetched bytes stay cached.
func (t *Tile) revoke() {
	t.objectURL = ""
	t.img.RemoveAttr("src")
}
