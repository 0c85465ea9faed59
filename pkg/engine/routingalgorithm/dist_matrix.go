package routingalgorithm

import (
	"sync"

	"lintang/postmanx/pkg/concurrent"
	"lintang/postmanx/pkg/datastructure"
)

const distMatrixWorkers = 10

// CreateDistMatrix computes least-cost paths for every requested pair
// concurrently and returns them keyed by [source][target].
func (rt *RouteAlgorithm) CreateDistMatrix(pairs []concurrent.SPPair) map[datastructure.GraphID]map[datastructure.GraphID]datastructure.SPResult {
	workers := concurrent.NewWorkerPool[concurrent.SPPair, datastructure.SPResult](distMatrixWorkers, len(pairs))
	for _, p := range pairs {
		workers.AddJob(p)
	}
	workers.Close()
	workers.Start(func(p concurrent.SPPair) datastructure.SPResult {
		return rt.ShortestPathBiDijkstra(p.Source, p.Target)
	})

	matrix := make(map[datastructure.GraphID]map[datastructure.GraphID]datastructure.SPResult)
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for res := range workers.CollectResults() {
			mu.Lock()
			if matrix[res.Source] == nil {
				matrix[res.Source] = make(map[datastructure.GraphID]datastructure.SPResult)
			}
			matrix[res.Source][res.Dest] = res
			mu.Unlock()
		}
	}()

	workers.Wait()
	wg.Wait()
	return matrix
}
