// Package paint is the in-memory storage engine of a raster image editor.
//
// # Overview
//
// A [Document] is a large mutable pixel canvas split into square tiles. Tiles
// are shared by reference between documents and copied only when a shared
// tile is written (copy-on-write), so duplicating a whole canvas costs one
// reference per tile. A [History] keeps a linear list of document snapshots
// for undo and redo; consecutive snapshots share every tile that an edit did
// not touch.
//
// # Quick Start
//
//	doc := paint.NewDocument(1920, 1080, paint.White)
//	h := paint.NewHistory(doc)
//
//	// Edit the active document, then commit the edit.
//	h.Active().Set(10, 20, paint.Red)
//	h.Active().FloodFill(0, 0, paint.Blue)
//	h.Commit()
//
//	h.Undo() // back to the blank canvas
//	h.Redo() // red pixel and blue fill again
//
// # Architecture
//
//   - grid: generic dense 2-D array, the storage of every tile
//   - fill: scanline flood fill over any grid-like surface
//   - paint: Pixel, Document, History, session Config
//
// # Coordinate System
//
// Documents are addressed as (x, y) with the origin at the top-left, x
// increasing right and y increasing down. Grids are addressed as (row, col).
//
// # Errors
//
// Out-of-range coordinates and invalid history indices are caller bugs and
// panic; nothing is clamped. The only error values come from loading
// configuration.
//
// # Concurrency
//
// Documents and histories assume a single editing goroutine. Callers that
// share them must serialize every mutating call.
//
// # Logging
//
// paint is silent unless [SetLogger] is called.
package paint
