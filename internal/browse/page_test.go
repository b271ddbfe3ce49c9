package browse

import "testing"

func TestPageState(t *testing.T) {
	p := NewPageState()

	p.SetPage(0)
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}

	p.SetPage(3)
	if ok := p.SetPageSize(30); ok || p.PageSize != 20 || p.Page != 3 {
		t.Fatalf("expected unknown size to be rejected, got %+v", p)
	}
	if ok := p.SetPageSize(50); !ok || p.PageSize != 50 || p.Page != 1 {
		t.Fatalf("expected size change to reset the page, got %+v", p)
	}

	p.SetPage(2)
	p.SetSearch(" ngi ")
	if p.Search != "ngi" || p.Page != 1 {
		t.Fatalf("expected search change to reset the page, got %+v", p)
	}
	p.SetPage(2)
	p.SetSearch("ngi")
	if p.Page != 2 {
		t.Fatalf("expected unchanged search to keep the page, got %+v", p)
	}
}

func TestPageStateNextPageSize(t *testing.T) {
	p := NewPageState()
	var got []int
	for i := 0; i < len(PageSizes); i++ {
		p.NextPageSize()
		got = append(got, p.PageSize)
	}
	want := []int{50, 100, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPageStateClamp(t *testing.T) {
	tests := []struct {
		page, totalPages, want int
	}{
		{1, 0, 1},
		{5, 3, 3},
		{2, 3, 2},
		{4, 0, 1},
	}
	for _, tt := range tests {
		p := PageState{Page: tt.page, PageSize: 20}
		p.Clamp(tt.totalPages)
		if p.Page != tt.want {
			t.Fatalf("page %d of %d: expected %d, got %d", tt.page, tt.totalPages, tt.want, p.Page)
		}
	}
}
