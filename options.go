package paint

// DefaultTileSize is the tile edge length used when WithTileSize is not given.
const DefaultTileSize = 128

// DocumentOption configures a Document during creation.
//
// Example:
//
//	doc := paint.NewDocument(1920, 1080, paint.White, paint.WithTileSize(64))
type DocumentOption func(*documentOptions)

// documentOptions holds optional configuration for Document creation.
type documentOptions struct {
	tileSize int
}

func defaultDocumentOptions() documentOptions {
	return documentOptions{tileSize: DefaultTileSize}
}

// WithTileSize sets the edge length of the square tiles the canvas is split
// into. Smaller tiles make copy-on-write cheaper per edit at the cost of more
// tile references per snapshot. The size must be positive.
func WithTileSize(n int) DocumentOption {
	return func(o *documentOptions) {
		o.tileSize = n
	}
}

// HistoryOption configures a History during creation.
//
// Example:
//
//	h := paint.NewHistory(doc,
//	    paint.WithMaxSnapshots(50),
//	    paint.WithMemoryGuard(512<<20),
//	)
type HistoryOption func(*historyOptions)

// historyOptions holds optional configuration for History creation.
type historyOptions struct {
	maxSnapshots   int
	minAvailable   uint64
	memoryProbe    func() (uint64, error)
	thumbnailCache int
}

func defaultHistoryOptions() historyOptions {
	return historyOptions{
		maxSnapshots:   0, // unlimited
		minAvailable:   0, // guard disabled
		memoryProbe:    availableMemory,
		thumbnailCache: 64,
	}
}

// WithMaxSnapshots caps the number of snapshots kept. After a commit the
// oldest snapshots are erased until at most n remain. n <= 0 means unlimited.
func WithMaxSnapshots(n int) HistoryOption {
	return func(o *historyOptions) {
		o.maxSnapshots = n
	}
}

// WithMemoryGuard enables pruning under memory pressure. After each commit,
// if the system reports less than minAvailable bytes of available memory,
// the oldest snapshot is erased and the remaining tiles are compacted.
func WithMemoryGuard(minAvailable uint64) HistoryOption {
	return func(o *historyOptions) {
		o.minAvailable = minAvailable
	}
}

// WithThumbnailCache sets how many snapshot thumbnails are kept cached.
// n <= 0 means unlimited.
func WithThumbnailCache(n int) HistoryOption {
	return func(o *historyOptions) {
		o.thumbnailCache = n
	}
}

// withMemoryProbe replaces the system memory probe. Used by tests.
func withMemoryProbe(probe func() (uint64, error)) HistoryOption {
	return func(o *historyOptions) {
		o.memoryProbe = probe
	}
}
