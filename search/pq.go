package search

import "github.com/beka-birhanu/gridpath-api/maze"

// pqItem is one frontier entry of the weighted stepper. Stale entries left
// behind by relaxation keep their old priority and are skipped at
// extraction.
type pqItem struct {
	coord    maze.Coordinate
	key      string
	priority float64
	cost     float64
	sequence uint64 // insertion order, breaks priority ties
	index    int
}

// priorityQueue is a binary heap ordered by priority, with ties won by the
// earlier-inserted entry so yielded frame sequences stay deterministic.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority == pq[j].priority {
		return pq[i].sequence < pq[j].sequence
	}
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
