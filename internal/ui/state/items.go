package state

// Item is one selectable row of a picker.
type Item struct {
	ID      string
	PanelID string
	Label   string
	Detail  string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
