package domain

// DefaultTitle is the title of a page that has never been saved.
const DefaultTitle = "Untitled Page"

// CreateComponent returns a component of type t with default props and a new id.
func CreateComponent(t ComponentType) (*Component, error) {
	props, err := DefaultProps(t)
	if err != nil {
		return nil, err
	}
	return &Component{ID: MakeID(PrefixComponent), Type: t, Props: props}, nil
}

// CreateColumn returns an empty column. span is clamped into the grid.
func CreateColumn(span int) *Column {
	return &Column{ID: MakeID(PrefixColumn), Span: ClampSpan(span), Components: []*Component{}}
}

// CreateRow returns a row split into two half-width columns.
func CreateRow() *Row {
	return &Row{
		ID:      MakeID(PrefixRow),
		Columns: []*Column{CreateColumn(DefaultSpan), CreateColumn(DefaultSpan)},
	}
}

// CreateSection returns a section with one default row.
func CreateSection() *Section {
	return &Section{ID: MakeID(PrefixSection), Rows: []*Row{CreateRow()}}
}

// CreateEmptyPage returns the document used when nothing is stored yet:
// one section, one row, two columns, no components.
func CreateEmptyPage() *Page {
	return &Page{Title: DefaultTitle, Sections: []*Section{CreateSection()}}
}
