package repository

import "testing"

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       Pagination
		wantPage int
		wantStep int
	}{
		{"zero value gets defaults", Pagination{}, 0, 10},
		{"negative page clamped", Pagination{Page: -3, Step: 5}, 0, 5},
		{"zero step defaulted", Pagination{Page: 2, Step: 0}, 2, 10},
		{"negative step defaulted", Pagination{Page: 1, Step: -1}, 1, 10},
		{"valid window untouched", Pagination{Page: 4, Step: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.Page != tc.wantPage || got.Step != tc.wantStep {
				t.Fatalf("Normalize() = %+v, want page %d step %d", got, tc.wantPage, tc.wantStep)
			}
		})
	}
}

// Consecutive pages at the same step must tile the table without
// overlap or gaps.
func TestPaginationOffsetsAreDisjoint(t *testing.T) {
	step := 10
	prevEnd := 0
	for page := 0; page < 5; page++ {
		p := Pagination{Page: page, Step: step}.Normalize()
		if p.Offset() != prevEnd {
			t.Fatalf("page %d offset = %d, want %d", page, p.Offset(), prevEnd)
		}
		prevEnd = p.Offset() + p.Step
	}
}
