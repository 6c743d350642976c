package paint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(opts ...HistoryOption) *History {
	return NewHistory(NewDocument(64, 48, White, WithTileSize(16)), opts...)
}

func TestNewHistory(t *testing.T) {
	doc := NewDocument(8, 8, White)
	h := NewHistory(doc)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.Same(t, doc, h.Active())
	assert.NotSame(t, doc, h.Current())
	assert.True(t, h.Current().Equal(doc))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	assert.Panics(t, func() { NewHistory(nil) })
}

func TestHistory_UndoRedoAtEnds(t *testing.T) {
	h := newTestHistory()
	assert.False(t, h.Undo(), "nothing to undo")
	assert.False(t, h.Redo(), "nothing to redo")
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_CommitUndoRestores(t *testing.T) {
	h := newTestHistory()
	before := h.Active().Clone()
	defer before.Release()

	h.Active().Set(10, 10, Red)
	h.Active().FloodFill(0, 40, Blue)
	h.Commit()
	after := h.Active().Clone()
	defer after.Release()

	require.Equal(t, 2, h.Len())
	require.Equal(t, 1, h.Cursor())
	assert.True(t, h.Current().Equal(after))

	require.True(t, h.Undo())
	assert.Equal(t, 0, h.Cursor())
	assert.True(t, h.Active().Equal(before), "undo restores pre-commit pixels")

	require.True(t, h.Redo())
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.Active().Equal(after), "redo restores post-commit pixels")
	assert.False(t, h.Redo())
}

func TestHistory_CommitDiscardsRedoBranch(t *testing.T) {
	h := newTestHistory()
	for _, c := range []Pixel{Red, Green, Blue} {
		h.Active().Set(0, 0, c)
		h.Commit()
	}
	require.Equal(t, 4, h.Len())

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.Equal(t, Red, h.Active().At(0, 0))

	h.Active().Set(0, 0, Yellow)
	h.Commit()

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.False(t, h.Redo(), "redo branch was discarded")
	assert.False(t, h.CanRedo())

	require.True(t, h.Undo())
	assert.Equal(t, Red, h.Active().At(0, 0))
}

func TestHistory_UndoDropsUncommittedEdits(t *testing.T) {
	h := newTestHistory()
	h.Active().Set(1, 1, Red)
	h.Commit()

	h.Active().Set(2, 2, Green) // never committed
	require.True(t, h.Undo())
	require.True(t, h.Redo())

	assert.Equal(t, Red, h.Active().At(1, 1))
	assert.Equal(t, White, h.Active().At(2, 2))
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	h := newTestHistory()
	h.Active().Set(5, 5, Red)
	h.Commit()

	// Editing the active document must not leak into the snapshot.
	h.Active().Set(5, 5, Blue)
	assert.Equal(t, Red, h.Current().At(5, 5))
	assert.Equal(t, White, h.Snapshot(0).At(5, 5))
}

func TestHistory_SnapshotsShareUntouchedTiles(t *testing.T) {
	h := newTestHistory()
	for i := 0; i < 10; i++ {
		h.Active().Set(0, 0, RGB(uint8(i), 0, 0))
		h.Commit()
	}

	// The background tile is shared by every slot of every snapshot; each
	// commit adds one private copy of tile 0 and nothing else.
	st := h.Stats()
	assert.Equal(t, 11, st.Snapshots)
	assert.Equal(t, 11, st.UniqueTiles)
	assert.Equal(t, uint64(11*16*16*3), st.PixelBytes)
	assert.Contains(t, st.String(), "snapshots=11")
}

func TestHistory_UndoMarksChangedTiles(t *testing.T) {
	h := newTestHistory()
	h.Active().Set(20, 20, Red) // tile (1,1), index 5
	h.Commit()
	h.Active().ClearDirty()

	require.True(t, h.Undo())
	dirty := h.Active().DirtyTiles()
	require.Len(t, dirty, 1)
	assert.Equal(t, 16, dirty[0].Min.X)
	assert.Equal(t, 16, dirty[0].Min.Y)

	// Unreported edits to the replaced document stay dirty.
	h.Active().ClearDirty()
	h.Active().Set(40, 40, Green)
	require.True(t, h.Redo())
	assert.Len(t, h.Active().DirtyTiles(), 2)
}

func TestHistory_ClearFrom(t *testing.T) {
	h := newTestHistory()
	for _, c := range []Pixel{Red, Green, Blue, Yellow} {
		h.Active().Set(0, 0, c)
		h.Commit()
	}
	require.Equal(t, 5, h.Len())

	// Cursor beyond i moves back to i.
	h.ClearFrom(2)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, Green, h.Active().At(0, 0))
	assert.False(t, h.CanRedo())

	// Cursor before i moves forward to i.
	require.True(t, h.Undo())
	require.True(t, h.Undo())
	h.ClearFrom(1)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.Equal(t, Red, h.Active().At(0, 0))

	// Cursor at i keeps uncommitted edits.
	h.Active().Set(3, 3, Cyan)
	h.ClearFrom(1)
	assert.Equal(t, Cyan, h.Active().At(3, 3))

	assert.Panics(t, func() { h.ClearFrom(0) })
	assert.Panics(t, func() { h.ClearFrom(2) })
}

func TestHistory_Erase(t *testing.T) {
	h := newTestHistory()
	for _, c := range []Pixel{Red, Green, Blue} {
		h.Active().Set(0, 0, c)
		h.Commit()
	}
	// Snapshots: white, red, green, blue; cursor 3.

	h.Erase(1) // before the cursor
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, Blue, h.Current().At(0, 0), "cursor follows its snapshot")

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	h.Erase(2) // after the cursor
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, 2, h.Len())

	h.Erase(0) // at the cursor, which cannot go below zero
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, Green, h.Current().At(0, 0))

	assert.Panics(t, func() { h.Erase(0) }, "last snapshot cannot be erased")
}

func TestHistory_EraseAtCursorMovesBack(t *testing.T) {
	h := newTestHistory()
	h.Active().Set(0, 0, Red)
	h.Commit()
	h.Active().Set(0, 0, Green)
	h.Commit()

	h.Erase(2)
	assert.Equal(t, 1, h.Cursor())
	assert.Equal(t, Red, h.Current().At(0, 0))
	assert.Equal(t, Green, h.Active().At(0, 0), "active document is kept")

	assert.Panics(t, func() { h.Erase(2) })
	assert.Panics(t, func() { h.Erase(-1) })
}

func TestHistory_MaxSnapshots(t *testing.T) {
	h := newTestHistory(WithMaxSnapshots(3))
	for i := 0; i < 10; i++ {
		h.Active().Set(0, 0, RGB(uint8(i), 0, 0))
		h.Commit()
		assert.LessOrEqual(t, h.Len(), 3)
	}
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, RGB(7, 0, 0), h.Snapshot(0).At(0, 0))

	// Undo still works within the kept window.
	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.False(t, h.Undo())
}

func TestHistory_MemoryGuard(t *testing.T) {
	avail := uint64(1 << 30)
	probe := func() (uint64, error) { return avail, nil }
	h := newTestHistory(WithMemoryGuard(512<<20), withMemoryProbe(probe))

	for i := 0; i < 3; i++ {
		h.Active().Set(i, 0, Red)
		h.Commit()
	}
	assert.Equal(t, 4, h.Len(), "no pruning with enough memory")

	avail = 100 << 20
	h.Active().Set(30, 30, Red)
	h.Commit()
	assert.Equal(t, 4, h.Len(), "oldest snapshot pruned under pressure")
	assert.Equal(t, 3, h.Cursor())
	assert.Equal(t, Red, h.Snapshot(0).At(0, 0))
}

func TestHistory_MemoryProbeFailureKeepsHistory(t *testing.T) {
	probe := func() (uint64, error) { return 0, errors.New("no meminfo") }
	h := newTestHistory(WithMemoryGuard(1), withMemoryProbe(probe))
	h.Active().Set(0, 0, Red)
	h.Commit()
	assert.Equal(t, 2, h.Len())
}

func TestHistory_Thumbnail(t *testing.T) {
	h := newTestHistory(WithThumbnailCache(4))
	h.Active().Fill(Red)
	h.Commit()

	a := h.Thumbnail(1, 8, 6)
	b := h.Thumbnail(1, 8, 6)
	assert.Same(t, a, b, "thumbnail served from cache")
	assert.Equal(t, 8, a.Bounds().Dx())

	r, g, bl, _ := a.At(4, 3).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, bl)

	// Erasing the snapshot drops its cached thumbnails.
	h.Erase(1)
	assert.Zero(t, h.Stats().Thumbnails)
}

func TestHistory_Compact(t *testing.T) {
	h := newTestHistory()
	h.Active().Set(0, 0, Red)
	h.Commit()
	h.Active().Set(0, 0, White) // back to the background by hand
	h.Commit()

	require.Equal(t, 3, h.Stats().UniqueTiles)
	merged := h.Compact()
	assert.Equal(t, 1, merged)
	assert.Equal(t, 2, h.Stats().UniqueTiles)

	assert.True(t, h.Snapshot(0).Equal(h.Snapshot(2)))
	assert.Equal(t, Red, h.Snapshot(1).At(0, 0))

	// Editing after compaction still copies on write.
	h.Active().Set(0, 0, Blue)
	assert.Equal(t, White, h.Snapshot(2).At(0, 0))
}
