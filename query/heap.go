package query

import (
	"container/heap"
	"sync"
)

// heapNode is an open-set entry. A node may be pushed several times with
// different scores; stale entries are skipped by the search when popped.
type heapNode struct {
	nodeID string
	fScore float64
	seq    uint64
	index  int
}

// nodeHeap orders entries by fScore, then by push order.
type nodeHeap []*heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].fScore != h[j].fScore {
		return h[i].fScore < h[j].fScore
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

// Push pushes a new node to the heap
func (h *nodeHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*heapNode)
	item.index = n
	*h = append(*h, item)
}

// Pop pops a node from the heap
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}

var heapNodePool = sync.Pool{
	New: func() interface{} {
		return &heapNode{index: -1}
	},
}

func newHeapNode(nodeID string, fScore float64, seq uint64) *heapNode {
	node := heapNodePool.Get().(*heapNode)
	node.nodeID = nodeID
	node.fScore = fScore
	node.seq = seq
	node.index = -1
	return node
}

// MinHeap is a binary min-priority queue of node ids. Entries with equal
// priority pop in the order they were pushed.
type MinHeap struct {
	h   nodeHeap
	seq uint64
}

// Push adds nodeID with the given priority.
func (m *MinHeap) Push(nodeID string, priority float64) {
	heap.Push(&m.h, newHeapNode(nodeID, priority, m.seq))
	m.seq++
}

// Pop removes the entry with the lowest priority. ok is false when the heap is empty.
func (m *MinHeap) Pop() (nodeID string, priority float64, ok bool) {
	if len(m.h) == 0 {
		return "", 0, false
	}
	node := heap.Pop(&m.h).(*heapNode)
	nodeID, priority = node.nodeID, node.fScore
	heapNodePool.Put(node)
	return nodeID, priority, true
}

// Len returns the number of queued entries.
func (m *MinHeap) Len() int {
	return len(m.h)
}

// Clear empties the heap and recycles its entries.
func (m *MinHeap) Clear() {
	for _, node := range m.h {
		heapNodePool.Put(node)
	}
	m.h = m.h[:0]
}
