package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/bloom"
)

// Compile-time interface verification.
var _ prex.PageFrontier = (*Frontier)(nil)

// Frontier is an in-memory page frontier with priority queue and Bloom
// filter deduplication. Listing pages are popped before detail pages so
// discovery stays ahead of per-product work. It is safe for concurrent
// use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *pageHeap
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &pageHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a page to the frontier.
// Returns false if the URL has already been seen. URL fragments are
// stripped before deduplication.
func (f *Frontier) Push(ref prex.PageRef) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(ref.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	ref.URL = url
	heap.Push(f.queue, ref)
	return true
}

// Pop returns the next page by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (prex.PageRef, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return prex.PageRef{}, false
	}
	ref, _ := heap.Pop(f.queue).(prex.PageRef)
	return ref, true
}

// Len returns the number of pages in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// pageHeap implements heap.Interface for a PageRef priority queue.
// Higher-kind pages (listings) are popped first.
type pageHeap []prex.PageRef

func (h pageHeap) Len() int { return len(h) }

// Less returns true if i has higher priority than j (max-heap).
func (h pageHeap) Less(i, j int) bool {
	return h[i].Kind > h[j].Kind
}

func (h pageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pageHeap) Push(x any) {
	ref, _ := x.(prex.PageRef)
	*h = append(*h, ref)
}

func (h *pageHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
