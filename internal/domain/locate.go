package domain

// Tree lookups. Every Find* scans depth-first and returns the first match;
// ids are unique so the first match is the only one. A miss returns nil
// parents and index -1.

// FindSection returns the section with id and its index in p.Sections.
func (p *Page) FindSection(id string) (*Section, int) {
	for i, s := range p.Sections {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// FindRow returns the row with id, the section holding it and its index there.
func (p *Page) FindRow(id string) (*Row, *Section, int) {
	for _, s := range p.Sections {
		if i := s.RowIndex(id); i >= 0 {
			return s.Rows[i], s, i
		}
	}
	return nil, nil, -1
}

// FindColumn returns the column with id, the row holding it and its index there.
func (p *Page) FindColumn(id string) (*Column, *Row, int) {
	for _, s := range p.Sections {
		for _, r := range s.Rows {
			if i := r.ColumnIndex(id); i >= 0 {
				return r.Columns[i], r, i
			}
		}
	}
	return nil, nil, -1
}

// FindComponent returns the component with id, the column holding it and its
// index there.
func (p *Page) FindComponent(id string) (*Component, *Column, int) {
	for _, s := range p.Sections {
		for _, r := range s.Rows {
			for _, c := range r.Columns {
				if i := c.ComponentIndex(id); i >= 0 {
					return c.Components[i], c, i
				}
			}
		}
	}
	return nil, nil, -1
}

// Contains reports whether any entity of type t has id.
func (p *Page) Contains(t EntityType, id string) bool {
	switch t {
	case EntitySection:
		s, _ := p.FindSection(id)
		return s != nil
	case EntityRow:
		r, _, _ := p.FindRow(id)
		return r != nil
	case EntityColumn:
		c, _, _ := p.FindColumn(id)
		return c != nil
	case EntityComponent:
		c, _, _ := p.FindComponent(id)
		return c != nil
	}
	return false
}

// RowIndex returns the position of row id in s, or -1.
func (s *Section) RowIndex(id string) int {
	for i, r := range s.Rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the position of column id in r, or -1.
func (r *Row) ColumnIndex(id string) int {
	for i, c := range r.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ComponentIndex returns the position of component id in c, or -1.
func (c *Column) ComponentIndex(id string) int {
	for i, cmp := range c.Components {
		if cmp.ID == id {
			return i
		}
	}
	return -1
}

// Walk calls fn for every entity below p in depth-first order.
func (p *Page) Walk(fn func(t EntityType, id string)) {
	for _, s := range p.Sections {
		fn(EntitySection, s.ID)
		for _, r := range s.Rows {
			fn(EntityRow, r.ID)
			for _, c := range r.Columns {
				fn(EntityColumn, c.ID)
				for _, cmp := range c.Components {
					fn(EntityComponent, cmp.ID)
				}
			}
		}
	}
}

// Stats counts the entities of each type in a page.
type Stats struct {
	Sections   int `json:"sections"`
	Rows       int `json:"rows"`
	Columns    int `json:"columns"`
	Components int `json:"components"`
}

// Stats returns entity counts for p.
func (p *Page) Stats() Stats {
	var st Stats
	p.Walk(func(t EntityType, _ string) {
		switch t {
		case EntitySection:
			st.Sections++
		case EntityRow:
			st.Rows++
		case EntityColumn:
			st.Columns++
		case EntityComponent:
			st.Components++
		}
	})
	return st
}
