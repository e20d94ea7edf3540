package domain

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error Validate returns.
var ErrInvariant = errors.New("page invariant violated")

// Validate reports the first structural invariant p breaks: an empty page,
// section or row, a span outside the grid, a missing or repeated id, or
// props that do not match the component type.
func (p *Page) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("%w: page has no sections", ErrInvariant)
	}
	seen := make(map[string]bool)
	check := func(id string) error {
		if id == "" {
			return fmt.Errorf("%w: empty id", ErrInvariant)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvariant, id)
		}
		seen[id] = true
		return nil
	}
	for _, s := range p.Sections {
		if s == nil {
			return fmt.Errorf("%w: nil section", ErrInvariant)
		}
		if err := check(s.ID); err != nil {
			return err
		}
		if len(s.Rows) == 0 {
			return fmt.Errorf("%w: section %s has no rows", ErrInvariant, s.ID)
		}
		for _, r := range s.Rows {
			if r == nil {
				return fmt.Errorf("%w: nil row in section %s", ErrInvariant, s.ID)
			}
			if err := check(r.ID); err != nil {
				return err
			}
			if len(r.Columns) == 0 {
				return fmt.Errorf("%w: row %s has no columns", ErrInvariant, r.ID)
			}
			for _, c := range r.Columns {
				if c == nil {
					return fmt.Errorf("%w: nil column in row %s", ErrInvariant, r.ID)
				}
				if err := check(c.ID); err != nil {
					return err
				}
				if c.Span < MinSpan || c.Span > MaxSpan {
					return fmt.Errorf("%w: column %s span %d", ErrInvariant, c.ID, c.Span)
				}
				for _, cmp := range c.Components {
					if cmp == nil {
						return fmt.Errorf("%w: nil component in column %s", ErrInvariant, c.ID)
					}
					if err := check(cmp.ID); err != nil {
						return err
					}
					if cmp.Props == nil || cmp.Props.ComponentType() != cmp.Type {
						return fmt.Errorf("%w: component %s props do not match type %q", ErrInvariant, cmp.ID, cmp.Type)
					}
				}
			}
		}
	}
	return nil
}

// Normalize repairs p in place so that Validate passes: nil entries are
// dropped, empty containers are re-seeded, spans are clamped and missing or
// repeated ids are replaced. It reports whether anything changed.
func (p *Page) Normalize() bool {
	changed := false
	seen := make(map[string]bool)
	fixID := func(id *string, prefix string) {
		if *id == "" || seen[*id] {
			*id = MakeID(prefix)
			changed = true
		}
		seen[*id] = true
	}

	sections := p.Sections[:0]
	for _, s := range p.Sections {
		if s == nil {
			changed = true
			continue
		}
		sections = append(sections, s)
	}
	p.Sections = sections
	if len(p.Sections) == 0 {
		p.Sections = append(p.Sections, CreateSection())
		changed = true
	}

	for _, s := range p.Sections {
		fixID(&s.ID, PrefixSection)
		rows := s.Rows[:0]
		for _, r := range s.Rows {
			if r != nil {
				rows = append(rows, r)
			} else {
				changed = true
			}
		}
		s.Rows = rows
		if len(s.Rows) == 0 {
			s.Rows = append(s.Rows, CreateRow())
			changed = true
		}

		for _, r := range s.Rows {
			fixID(&r.ID, PrefixRow)
			cols := r.Columns[:0]
			for _, c := range r.Columns {
				if c != nil {
					cols = append(cols, c)
				} else {
					changed = true
				}
			}
			r.Columns = cols
			if len(r.Columns) == 0 {
				r.Columns = append(r.Columns, CreateColumn(MaxSpan))
				changed = true
			}

			for _, c := range r.Columns {
				fixID(&c.ID, PrefixColumn)
				if span := ClampSpan(c.Span); span != c.Span {
					c.Span = span
					changed = true
				}
				cmps := make([]*Component, 0, len(c.Components))
				for _, cmp := range c.Components {
					if cmp == nil {
						changed = true
						continue
					}
					fixID(&cmp.ID, PrefixComponent)
					if cmp.Props == nil || cmp.Props.ComponentType() != cmp.Type {
						props, err := DefaultProps(cmp.Type)
						if err != nil {
							changed = true
							continue
						}
						cmp.Props = props
						changed = true
					}
					cmps = append(cmps, cmp)
				}
				c.Components = cmps
			}
		}
	}
	return changed
}
