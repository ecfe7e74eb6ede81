package mock

import (
	"context"

	"github.com/fwojciec/prex"
)

var _ prex.PageFrontier = (*PageFrontier)(nil)

// PageFrontier is a mock implementation of prex.PageFrontier.
type PageFrontier struct {
	PushFn func(ref prex.PageRef) bool
	PopFn  func() (prex.PageRef, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *PageFrontier) Push(ref prex.PageRef) bool {
	return f.PushFn(ref)
}

func (f *PageFrontier) Pop() (prex.PageRef, bool) {
	return f.PopFn()
}

func (f *PageFrontier) Len() int {
	if f.LenFn == nil {
		return 0
	}
	return f.LenFn()
}

func (f *PageFrontier) Seen(url string) bool {
	if f.SeenFn == nil {
		return false
	}
	return f.SeenFn(url)
}

var _ prex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of prex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
