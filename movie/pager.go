package movie

import "sync"

// Pager tracks the current page and the number of pages available for the
// active query. The current page always stays within [1, Total()].
type Pager struct {
	mu      sync.Mutex
	current int
	total   int
}

func NewPager() *Pager {
	return &Pager{current: 1, total: 1}
}

func (p *Pager) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Next advances one page and reports whether the page changed.
func (p *Pager) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current >= p.total {
		return false
	}
	p.current++
	return true
}

// Prev goes back one page and reports whether the page changed.
func (p *Pager) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current <= 1 {
		return false
	}
	p.current--
	return true
}

// Reset returns to the first page and reports whether the page changed.
func (p *Pager) Reset() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed := p.current != 1
	p.current = 1
	return changed
}

// SetTotal records the page count reported for the active query, capped at
// MaxPages, and clamps the current page. It reports whether the current page
// moved.
func (p *Pager) SetTotal(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = clampPages(n)
	if p.current > p.total {
		p.current = p.total
		return true
	}
	return false
}

func clampPages(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPages {
		return MaxPages
	}
	return n
}
