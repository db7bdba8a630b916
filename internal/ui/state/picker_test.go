package state

import (
	"reflect"
	"testing"
)

func newTestPicker(labels ...string) *Picker {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{ID: label, Label: label}
	}
	return NewPicker("Test", items)
}

func TestSetFilterSelectsBestMatch(t *testing.T) {
	p := NewPicker("tabs", []Item{
		{ID: "a", Label: "main.go", Detail: "left"},
		{ID: "b", Label: "README", Detail: "left"},
		{ID: "c", Label: "chat", Detail: "right"},
	})
	p.SetFilter("read", 4)
	if len(p.Items) != 1 || p.Items[0].ID != "b" {
		t.Fatalf("expected README only, got %#v", p.Items)
	}
	if item, ok := p.Selected(); !ok || item.ID != "b" {
		t.Fatalf("expected README selected, got %#v", item)
	}

	p.SetFilter("right", 5)
	if len(p.Items) != 1 || p.Items[0].ID != "c" {
		t.Fatalf("expected detail match on chat, got %#v", p.Items)
	}

	p.SetFilter("", 0)
	if len(p.Items) != 3 {
		t.Fatalf("expected all items after clearing filter, got %d", len(p.Items))
	}
}

func TestFilterEditing(t *testing.T) {
	p := newTestPicker("alpha")
	if !p.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if p.Filter != "ab" || p.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", p.Filter, p.FilterCursor)
	}
	p.FilterCursor = 1
	p.InsertFilterText("z")
	if p.Filter != "azb" || p.FilterCursor != 2 {
		t.Fatalf("expected insert into middle, got %q/%d", p.Filter, p.FilterCursor)
	}
	if !p.DeleteFilterRuneBackward() || p.Filter != "ab" || p.FilterCursor != 1 {
		t.Fatalf("unexpected state after delete %q/%d", p.Filter, p.FilterCursor)
	}
	p.SetFilter("abc def", len("abc def"))
	if !p.DeleteFilterWordBackward() || p.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", p.Filter)
	}
	p.SetFilter("abc", 0)
	if p.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if !p.MoveFilterCursor(2) || p.FilterCursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", p.FilterCursor)
	}
	if p.MoveFilterCursor(10); p.FilterCursor != 3 {
		t.Fatalf("expected cursor clamped to 3, got %d", p.FilterCursor)
	}
	if p.MoveFilterCursor(1) {
		t.Fatal("expected no movement past the end")
	}
}

func TestFilterItemsFallsBackToID(t *testing.T) {
	items := []Item{{ID: "tab-17", Label: "Alpha"}, {ID: "tab-9", Label: "Beta"}}
	if got := FilterItems(items, "alp"); len(got) != 1 || got[0].Label != "Alpha" {
		t.Fatalf("unexpected fuzzy result %#v", got)
	}
	if got := FilterItems(items, "17"); len(got) != 1 || got[0].ID != "tab-17" {
		t.Fatalf("expected id fallback, got %#v", got)
	}
	if got := FilterItems(items, "nomatch"); len(got) != 0 {
		t.Fatalf("expected no results, got %#v", got)
	}
	clone := CloneItems(items)
	clone[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected clone to leave the original untouched")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}
	if idx := BestMatchIndex(items, "Second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "two"); idx != 1 {
		t.Fatalf("expected id match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestMoveCursorWraps(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	if !p.MoveCursor(-1) || p.Cursor != 2 {
		t.Fatalf("expected wrap to last, got %d", p.Cursor)
	}
	if !p.MoveCursor(1) || p.Cursor != 0 {
		t.Fatalf("expected wrap to first, got %d", p.Cursor)
	}
	if !p.MoveCursorEnd() || p.MoveCursorEnd() {
		t.Fatal("expected a single movement to the end")
	}
	if !p.MoveCursorHome() || p.Cursor != 0 {
		t.Fatalf("expected home, got %d", p.Cursor)
	}
	empty := newTestPicker()
	if empty.MoveCursor(1) || empty.MoveCursorHome() || empty.MoveCursorEnd() {
		t.Fatal("expected no movement on an empty picker")
	}
}

func TestPagingAndViewport(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e", "f")
	if !p.MoveCursorPage(1, 4) || p.Cursor != 4 {
		t.Fatalf("expected cursor 4 after a page, got %d", p.Cursor)
	}
	p.EnsureCursorVisible(3)
	if p.ViewportOffset != 2 {
		t.Fatalf("expected offset 2, got %d", p.ViewportOffset)
	}
	if got := p.Visible(3); !reflect.DeepEqual(got, p.Items[2:5]) {
		t.Fatalf("unexpected visible window %#v", got)
	}
	p.MoveCursorPage(-5, 4)
	p.EnsureCursorVisible(3)
	if p.Cursor != 0 || p.ViewportOffset != 0 {
		t.Fatalf("expected top of list, got cursor %d offset %d", p.Cursor, p.ViewportOffset)
	}
}

func TestUpdateItemsKeepsSelection(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	p.Focus("c")
	p.UpdateItems([]Item{{ID: "c", Label: "c"}, {ID: "a", Label: "a"}})
	if item, _ := p.Selected(); item.ID != "c" {
		t.Fatalf("expected selection to follow c, got %#v", item)
	}
	if p.Focus("b") {
		t.Fatal("b no longer exists")
	}
}
