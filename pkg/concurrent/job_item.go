package concurrent

import (
	"lintang/postmanx/pkg/datastructure"
)

// SPPair source/target node pair for one travel-cost matrix cell.
type SPPair struct {
	Source datastructure.GraphID
	Target datastructure.GraphID
}

// SaveTileJobItem one encoded tile ready to be written to the kv store.
type SaveTileJobItem struct {
	Key   string
	Value []byte
}

type JobI interface {
	SPPair | SaveTileJobItem
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

type JobFunc[T JobI, G any] func(job T) G
