package paint

import (
	"fmt"
	"image"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/gogpu/paint/internal/lru"
)

// snapshot is one committed document state.
type snapshot struct {
	// id is unique for the life of the History and never reused, so cached
	// thumbnails cannot outlive the snapshot they describe.
	id  uint64
	doc *Document
}

// thumbKey identifies a cached snapshot thumbnail.
type thumbKey struct {
	id   uint64
	w, h int
}

// History is a linear undo/redo history of Document snapshots.
//
// It holds a non-empty list of committed snapshots, a cursor into that list,
// and the active document being edited. Edits go to the active document;
// Commit records it as a new snapshot after the cursor, discarding any redo
// branch. Undo and Redo move the cursor and replace the active document with
// a copy of the snapshot there. Snapshots share unchanged tiles with each
// other and with the active document.
//
// Invariants: Len() >= 1 and 0 <= Cursor() < Len() after every call.
// Precondition violations panic. History is not safe for concurrent use.
type History struct {
	snapshots []snapshot
	cursor    int
	active    *Document
	nextID    uint64
	opts      historyOptions
	thumbs    *lru.Cache[thumbKey, *image.RGBA]
}

// NewHistory starts a history whose only snapshot is the current state of
// doc. doc itself becomes the active document.
//
// Undo and Redo replace the active document, so callers must fetch it again
// through Active after those calls rather than keep doc.
func NewHistory(doc *Document, opts ...HistoryOption) *History {
	if doc == nil {
		panic("paint: NewHistory with nil document")
	}
	o := defaultHistoryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	h := &History{
		opts:   o,
		active: doc,
		thumbs: lru.New[thumbKey, *image.RGBA](o.thumbnailCache),
	}
	h.snapshots = []snapshot{h.newSnapshot(doc)}
	return h
}

func (h *History) newSnapshot(doc *Document) snapshot {
	h.nextID++
	return snapshot{id: h.nextID, doc: doc.Clone()}
}

// Active returns the document being edited, the one to render.
func (h *History) Active() *Document {
	return h.active
}

// Current returns the snapshot at the cursor. It must not be modified.
func (h *History) Current() *Document {
	return h.snapshots[h.cursor].doc
}

// Snapshot returns snapshot i. It must not be modified, and must not be used
// after the history discards it.
func (h *History) Snapshot(i int) *Document {
	h.checkIndex(i)
	return h.snapshots[i].doc
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Commit records the active document as a new snapshot right after the
// cursor and moves the cursor to it. Snapshots after the old cursor are
// discarded, so Redo reports false until the next Undo.
//
// Afterwards the configured limits apply: the oldest snapshots are erased
// beyond WithMaxSnapshots, and under WithMemoryGuard pressure.
func (h *History) Commit() {
	h.discardAfter(h.cursor)
	h.snapshots = append(h.snapshots, h.newSnapshot(h.active))
	h.cursor++

	Logger().Debug("history commit", "cursor", h.cursor, "snapshots", len(h.snapshots))
	h.enforceLimits()
}

// Undo moves the cursor back one snapshot and makes a copy of it the active
// document, dropping uncommitted edits. It returns false, changing nothing,
// when the cursor is already at the first snapshot.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.restore()
	Logger().Debug("history undo", "cursor", h.cursor, "snapshots", len(h.snapshots))
	return true
}

// Redo moves the cursor forward one snapshot and makes a copy of it the
// active document. It returns false, changing nothing, when the cursor is
// at the last snapshot.
func (h *History) Redo() bool {
	if h.cursor == len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	h.restore()
	Logger().Debug("history redo", "cursor", h.cursor, "snapshots", len(h.snapshots))
	return true
}

// ClearFrom keeps snapshots 0 through i, discards the rest and moves the
// cursor to i. It requires 0 < i < Len(). If the cursor was already at i the
// active document keeps its uncommitted edits; otherwise it is replaced by a
// copy of snapshot i.
func (h *History) ClearFrom(i int) {
	if i <= 0 || i >= len(h.snapshots) {
		panic(fmt.Sprintf("paint: ClearFrom(%d) requires 0 < i < %d", i, len(h.snapshots)))
	}
	h.discardAfter(i)
	if h.cursor != i {
		h.cursor = i
		h.restore()
	}
	Logger().Debug("history cleared", "from", i, "snapshots", len(h.snapshots))
}

// Erase removes snapshot i. It requires Len() > 1 and 0 <= i < Len().
// When i is at or before the cursor, the cursor moves back one so it keeps
// pointing at the same or the preceding snapshot; it never goes below 0.
// The active document is left as is.
func (h *History) Erase(i int) {
	if len(h.snapshots) <= 1 {
		panic("paint: Erase on a history with a single snapshot")
	}
	h.checkIndex(i)

	removed := h.snapshots[i]
	h.snapshots = slices.Delete(h.snapshots, i, i+1)
	h.forget(removed)

	if i <= h.cursor && h.cursor > 0 {
		h.cursor--
	}
	Logger().Debug("history erase", "index", i, "cursor", h.cursor, "snapshots", len(h.snapshots))
}

// Thumbnail returns snapshot i scaled to width x height. Thumbnails are cached per
// snapshot; the returned image is shared and must not be modified.
func (h *History) Thumbnail(i, width, height int) *image.RGBA {
	h.checkIndex(i)
	s := h.snapshots[i]
	return h.thumbs.GetOrCreate(thumbKey{s.id, width, height}, func() *image.RGBA {
		return s.doc.Thumbnail(width, height)
	})
}

// Compact re-shares identical tiles across every snapshot and the active
// document and returns the number of duplicate tile instances folded away.
func (h *History) Compact() int {
	docs := make([]*Document, 0, len(h.snapshots)+1)
	for _, s := range h.snapshots {
		docs = append(docs, s.doc)
	}
	docs = append(docs, h.active)

	merged := compactTiles(docs...)
	Logger().Info("history compacted", "merged", merged, "snapshots", len(h.snapshots))
	return merged
}

// HistoryStats summarises a History's memory use.
type HistoryStats struct {
	Snapshots int
	Cursor    int

	// UniqueTiles counts distinct tile instances across all snapshots and
	// the active document.
	UniqueTiles int

	// PixelBytes is the pixel memory of the unique tiles.
	PixelBytes uint64

	// Thumbnails is the number of cached thumbnails.
	Thumbnails int
}

// String returns a one-line summary with human-readable sizes.
func (s HistoryStats) String() string {
	return fmt.Sprintf("snapshots=%d cursor=%d unique_tiles=%d pixels=%s thumbnails=%d",
		s.Snapshots, s.Cursor, s.UniqueTiles, humanize.IBytes(s.PixelBytes), s.Thumbnails)
}

// Stats returns memory statistics for the whole history.
func (h *History) Stats() HistoryStats {
	seen := make(map[*sharedTile]struct{})
	var bytes uint64
	count := func(d *Document) {
		for _, t := range d.tiles {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				bytes += tileBytes(d.tileSize)
			}
		}
	}
	for _, s := range h.snapshots {
		count(s.doc)
	}
	count(h.active)

	return HistoryStats{
		Snapshots:   len(h.snapshots),
		Cursor:      h.cursor,
		UniqueTiles: len(seen),
		PixelBytes:  bytes,
		Thumbnails:  h.thumbs.Len(),
	}
}

// restore replaces the active document with a copy of the snapshot at the
// cursor, marking dirty only the tiles that differ from what was shown.
func (h *History) restore() {
	next := h.snapshots[h.cursor].doc.Clone()
	next.ClearDirty()
	next.markChanged(h.active)
	h.active.Release()
	h.active = next
}

// discardAfter drops every snapshot after index i.
func (h *History) discardAfter(i int) {
	for _, s := range h.snapshots[i+1:] {
		h.forget(s)
	}
	h.snapshots = slices.Delete(h.snapshots, i+1, len(h.snapshots))
}

// forget releases a removed snapshot and its cached thumbnails.
func (h *History) forget(s snapshot) {
	s.doc.Release()
	h.thumbs.DeleteFunc(func(k thumbKey) bool { return k.id == s.id })
}

// enforceLimits erases the oldest snapshots beyond the configured cap and
// under memory pressure.
func (h *History) enforceLimits() {
	if limit := h.opts.maxSnapshots; limit > 0 {
		for len(h.snapshots) > limit {
			h.Erase(0)
		}
	}

	if h.opts.minAvailable == 0 || len(h.snapshots) <= 1 {
		return
	}
	avail, err := h.opts.memoryProbe()
	if err != nil {
		Logger().Warn("memory probe failed", "err", err)
		return
	}
	if avail >= h.opts.minAvailable {
		return
	}

	h.Erase(0)
	merged := h.Compact()
	Logger().Warn("history pruned under memory pressure",
		"available", humanize.IBytes(avail),
		"threshold", humanize.IBytes(h.opts.minAvailable),
		"snapshots", len(h.snapshots),
		"merged", merged)
}

// checkIndex panics unless 0 <= i < Len().
func (h *History) checkIndex(i int) {
	if i < 0 || i >= len(h.snapshots) {
		panic(fmt.Sprintf("paint: history index %d out of range [0,%d)", i, len(h.snapshots)))
	}
}
