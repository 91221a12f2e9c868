package repository

// Pagination selects a bounded window of rows ordered by primary key
// ascending.  The zero value is not usable directly; call Normalize to
// apply the default window.
type Pagination struct {
	Page int // zero-based page index
	Step int // rows per page
}

// Normalize clamps negative pages and applies the default window of 10
// rows.  An absent pagination therefore never means "all rows".
func (p Pagination) Normalize() Pagination {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Step <= 0 {
		p.Step = 10
	}
	return p
}

// Offset returns the number of rows to skip for the window.
func (p Pagination) Offset() int { return p.Page * p.Step }
