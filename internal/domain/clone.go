package domain

// Clone returns a deep copy of p sharing no mutable state with it.
// IDs are preserved. Nil entries, which only a decoded document can hold,
// are left out of the copy.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := &Page{Title: p.Title, Sections: make([]*Section, 0, len(p.Sections))}
	for _, s := range p.Sections {
		if s != nil {
			out.Sections = append(out.Sections, s.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of s with the same ids.
func (s *Section) Clone() *Section {
	out := &Section{ID: s.ID, Rows: make([]*Row, 0, len(s.Rows))}
	for _, r := range s.Rows {
		if r != nil {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of r with the same ids.
func (r *Row) Clone() *Row {
	out := &Row{ID: r.ID, Columns: make([]*Column, 0, len(r.Columns))}
	for _, c := range r.Columns {
		if c != nil {
			out.Columns = append(out.Columns, c.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of c with the same ids.
func (c *Column) Clone() *Column {
	out := &Column{ID: c.ID, Span: c.Span, Components: make([]*Component, 0, len(c.Components))}
	for _, cmp := range c.Components {
		if cmp != nil {
			out.Components = append(out.Components, cmp.Clone())
		}
	}
	return out
}

// Clone returns a deep copy of c with the same id.
func (c *Component) Clone() *Component {
	out := &Component{ID: c.ID, Type: c.Type}
	if c.Props != nil {
		out.Props = c.Props.CloneProps()
	}
	return out
}

// The Duplicate methods copy an entity and everything below it, minting a
// fresh id for every node top-down.

// Duplicate returns a copy of s where every node carries a new id.
func (s *Section) Duplicate() *Section {
	out := &Section{ID: MakeID(PrefixSection), Rows: make([]*Row, len(s.Rows))}
	for i, r := range s.Rows {
		out.Rows[i] = r.Duplicate()
	}
	return out
}

// Duplicate returns a copy of r where every node carries a new id.
func (r *Row) Duplicate() *Row {
	out := &Row{ID: MakeID(PrefixRow), Columns: make([]*Column, len(r.Columns))}
	for i, c := range r.Columns {
		out.Columns[i] = c.Duplicate()
	}
	return out
}

// Duplicate returns a copy of c where every node carries a new id.
func (c *Column) Duplicate() *Column {
	out := &Column{ID: MakeID(PrefixColumn), Span: c.Span, Components: make([]*Component, len(c.Components))}
	for i, cmp := range c.Components {
		out.Components[i] = cmp.Duplicate()
	}
	return out
}

// Duplicate returns a copy of c with a new id.
func (c *Component) Duplicate() *Component {
	out := c.Clone()
	out.ID = MakeID(PrefixComponent)
	return out
}
