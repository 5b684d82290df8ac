package views

import "testing"

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor %d page %d, want 4 and 2", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("VisibleRange() = %d, %d", start, end)
	}

	p.NextPage()
	if start, end := p.VisibleRange(); start != 6 || end != 7 || p.TotalPages() != 3 {
		t.Errorf("last page = %d, %d of %d", start, end, p.TotalPages())
	}
	if p.NextPage() {
		t.Errorf("NextPage() past the end")
	}

	// shrinking the list clamps the cursor
	p.SetTotal(2)
	if p.Cursor() != 1 || p.CurrentPage() != 1 {
		t.Errorf("after shrink: cursor %d page %d", p.Cursor(), p.CurrentPage())
	}
	p.SetTotal(0)
	if p.Cursor() != 0 {
		t.Errorf("empty list cursor = %d", p.Cursor())
	}

	p.SetTotal(10)
	p.SetCursor(8)
	p.SetPageSize(5)
	if start, _ := p.VisibleRange(); start != 5 {
		t.Errorf("page size change should keep the cursor visible, start = %d", start)
	}
}
