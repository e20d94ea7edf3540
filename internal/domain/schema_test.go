package domain_test

import (
	"errors"
	"strings"
	"testing"

	"pagebuilder/internal/domain"
)

func TestMakeID_PrefixedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := domain.MakeID(domain.PrefixComponent)
		if !strings.HasPrefix(id, "cmp-") {
			t.Fatalf("expected cmp- prefix, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestCreateEmptyPage(t *testing.T) {
	p := domain.CreateEmptyPage()
	if p.Title != "Untitled Page" {
		t.Errorf("expected default title, got %q", p.Title)
	}
	st := p.Stats()
	want := domain.Stats{Sections: 1, Rows: 1, Columns: 2, Components: 0}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
	for _, c := range p.Sections[0].Rows[0].Columns {
		if c.Span != 6 {
			t.Errorf("expected span 6, got %d", c.Span)
		}
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("empty page should validate: %v", err)
	}
}

func TestCreateColumn_ClampsSpan(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-4, 1},
		{6, 6},
		{12, 12},
		{15, 12},
	}
	for _, tt := range tests {
		if got := domain.CreateColumn(tt.in).Span; got != tt.want {
			t.Errorf("CreateColumn(%d).Span = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCreateComponent_Defaults(t *testing.T) {
	tests := []struct {
		typ   domain.ComponentType
		check func(t *testing.T, p domain.Props)
	}{
		{domain.ComponentText, func(t *testing.T, p domain.Props) {
			tp := p.(domain.TextProps)
			if tp.Text != "New text" || tp.FontSize != nil {
				t.Errorf("unexpected text props %+v", tp)
			}
		}},
		{domain.ComponentButton, func(t *testing.T, p domain.Props) {
			bp := p.(domain.ButtonProps)
			if bp.Label != "Click me" || bp.Href != "#" {
				t.Errorf("unexpected button props %+v", bp)
			}
		}},
		{domain.ComponentImage, func(t *testing.T, p domain.Props) {
			ip := p.(domain.ImageProps)
			if ip.Src != domain.PlaceholderImageURL || ip.Alt != "Placeholder image" {
				t.Errorf("unexpected image props %+v", ip)
			}
		}},
		{domain.ComponentGallery, func(t *testing.T, p domain.Props) {
			gp := p.(domain.GalleryProps)
			if len(gp.Items) != 0 || gp.Items == nil || *gp.Columns != 3 || *gp.Gap != 12 {
				t.Errorf("unexpected gallery props %+v", gp)
			}
		}},
		{domain.ComponentSpacer, func(t *testing.T, p domain.Props) {
			if sp := p.(domain.SpacerProps); sp.Height != 24 {
				t.Errorf("unexpected spacer props %+v", sp)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			c, err := domain.CreateComponent(tt.typ)
			if err != nil {
				t.Fatalf("CreateComponent: %v", err)
			}
			if c.Type != tt.typ || c.Props.ComponentType() != tt.typ {
				t.Fatalf("type mismatch: %s / %s", c.Type, c.Props.ComponentType())
			}
			tt.check(t, c.Props)
		})
	}
}

func TestCreateComponent_UnknownType(t *testing.T) {
	_, err := domain.CreateComponent("video")
	if !errors.Is(err, domain.ErrUnknownComponentType) {
		t.Fatalf("expected ErrUnknownComponentType, got %v", err)
	}
}

func TestDuplicate_MintsFreshIDs(t *testing.T) {
	p := domain.CreateEmptyPage()
	col := p.Sections[0].Rows[0].Columns[0]
	for i := 0; i < 3; i++ {
		c, _ := domain.CreateComponent(domain.ComponentText)
		col.Components = append(col.Components, c)
	}

	dup := p.Sections[0].Duplicate()
	p.Sections = append(p.Sections, dup)

	if err := p.Validate(); err != nil {
		t.Fatalf("page with duplicate section should validate: %v", err)
	}
	if got := len(dup.Rows[0].Columns[0].Components); got != 3 {
		t.Fatalf("expected 3 duplicated components, got %d", got)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	p := domain.CreateEmptyPage()
	c, _ := domain.CreateComponent(domain.ComponentGallery)
	p.Sections[0].Rows[0].Columns[0].Components = append(p.Sections[0].Rows[0].Columns[0].Components, c)

	cp := p.Clone()
	gp := cp.Sections[0].Rows[0].Columns[0].Components[0].Props.(domain.GalleryProps)
	*gp.Columns = 5
	gp.Items = append(gp.Items, domain.GalleryItem{ID: "m1", URL: "/media/a.png"})
	cp.Sections[0].Rows[0].Columns[0].Components[0].Props = gp
	cp.Sections[0].Rows[0].Columns[0].Span = 3
	cp.Title = "changed"

	orig := p.Sections[0].Rows[0].Columns[0]
	if orig.Span != 6 || p.Title != domain.DefaultTitle {
		t.Fatal("clone mutation leaked into original")
	}
	og := orig.Components[0].Props.(domain.GalleryProps)
	if *og.Columns != 3 || len(og.Items) != 0 {
		t.Fatalf("clone props leaked into original: %+v", og)
	}
}

func TestClone_DropsNilEntries(t *testing.T) {
	p := domain.CreateEmptyPage()
	col := p.Sections[0].Rows[0].Columns[0]
	col.Components = []*domain.Component{nil}
	p.Sections[0].Rows[0].Columns = append(p.Sections[0].Rows[0].Columns, nil)
	p.Sections[0].Rows = append(p.Sections[0].Rows, nil)
	p.Sections = append([]*domain.Section{nil}, p.Sections...)

	cp := p.Clone()
	if len(cp.Sections) != 1 || len(cp.Sections[0].Rows) != 1 {
		t.Fatalf("nil sections or rows copied: %d sections", len(cp.Sections))
	}
	cols := cp.Sections[0].Rows[0].Columns
	if len(cols) != 2 || len(cols[0].Components) != 0 || cols[0].Components == nil {
		t.Fatalf("columns = %+v", cols)
	}
}
