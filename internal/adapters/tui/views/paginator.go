package views

// Paginator tracks a cursor over a list and the fixed-size page holding it.
// The page is always the one the cursor is on.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator showing size rows per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetTotal updates the list length and clamps the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.total = total
	p.SetCursor(p.cursor)
}

// SetPageSize changes the number of rows per page
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to pos, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.total-1))
}

func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

// VisibleRange returns the half-open index range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.size, p.total)
}

func (p *Paginator) TotalPages() int {
	return max(1, (p.total+p.size-1)/p.size)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.size + 1
}

// NextPage puts the cursor on the first row of the next page
func (p *Paginator) NextPage() bool {
	next := p.offset() + p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage puts the cursor on the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.offset() == 0 {
		return false
	}
	p.cursor = p.offset() - p.size
	return true
}

func (p *Paginator) Home() {
	p.cursor = 0
}

func (p *Paginator) offset() int {
	return p.cursor / p.size * p.size
}
