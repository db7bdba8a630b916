package state

// Picker holds the state of a filterable list: the full item set, the
// filtered view, the filter text with its cursor, and the selection cursor.
type Picker struct {
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	ViewportOffset int
}

// NewPicker constructs a Picker over items with the cursor on the first row.
func NewPicker(title string, items []Item) *Picker {
	p := &Picker{Title: title}
	p.UpdateItems(items)
	return p
}

// IndexOf returns the filtered index of the item with id, or -1.
func (p *Picker) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// Focus moves the cursor onto the item with id when it is visible.
func (p *Picker) Focus(id string) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}
	p.Cursor = idx
	return true
}

// UpdateItems replaces the item set and reapplies the filter, keeping the
// cursor on the same item where possible.
func (p *Picker) UpdateItems(items []Item) {
	var current string
	if item, ok := p.Selected(); ok {
		current = item.ID
	}
	p.Full = CloneItems(items)
	p.applyFilter()
	if current != "" {
		p.Focus(current)
	}
	if p.ViewportOffset > len(p.Items)-1 || p.ViewportOffset < 0 {
		p.ViewportOffset = 0
	}
}
