package dnd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Wire encodings attached to every drag. They all describe the same message.
const (
	MIMEReorder = "application/x-tabdeck-reorder+json"
	MIMESplit   = "application/x-tabdeck-split+json"
	MIMEText    = "text/plain"
)

// ErrProtocolMismatch is returned when a drop carries no usable encoding.
var ErrProtocolMismatch = errors.New("protocol mismatch")

// Kind distinguishes the two drop intents.
type Kind int

const (
	// KindReorder moves a tab within its own panel.
	KindReorder Kind = iota
	// KindSplit moves a tab into another panel or into a new one.
	KindSplit
)

func (k Kind) String() string {
	switch k {
	case KindReorder:
		return "reorder"
	case KindSplit:
		return "split"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is the decoded form of a drag payload. SourcePanelID may be empty
// when only the plain-text fallback survived; SourceIndex is -1 when unknown.
type Message struct {
	Kind          Kind
	TabID         string
	ContentType   workspace.ContentType
	SourcePanelID string
	SourceIndex   int
}

// TypeList exposes the encodings a drag advertises without their contents.
// It is all a hovered target may see.
type TypeList interface {
	Types() []string
}

// Payload exposes encoded contents once the drag is dropped.
type Payload interface {
	TypeList
	Get(mime string) (string, bool)
}

// DataTransfer carries a set of parallel encodings of one drag.
type DataTransfer struct {
	items map[string]string
}

// NewDataTransfer returns an empty transfer.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{items: make(map[string]string)}
}

// Set stores data under mime, replacing anything already there.
func (d *DataTransfer) Set(mime, data string) {
	if d.items == nil {
		d.items = make(map[string]string)
	}
	d.items[mime] = data
}

// Get returns the data stored under mime.
func (d *DataTransfer) Get(mime string) (string, bool) {
	if d == nil {
		return "", false
	}
	data, ok := d.items[mime]
	return data, ok
}

// Types returns the advertised encodings in a stable order.
func (d *DataTransfer) Types() []string {
	if d == nil {
		return nil
	}
	types := make([]string, 0, len(d.items))
	for mime := range d.items {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// Encode writes every wire encoding of m into a new transfer.
func Encode(m Message) (*DataTransfer, error) {
	if m.TabID == "" {
		return nil, fmt.Errorf("encode drag: tab id is required")
	}
	reorder, err := sjson.Set("", "index", m.SourceIndex)
	if err == nil {
		reorder, err = sjson.Set(reorder, "panelId", m.SourcePanelID)
	}
	if err != nil {
		return nil, fmt.Errorf("encode reorder payload: %w", err)
	}
	split, err := sjson.Set("", "fileId", m.TabID)
	if err == nil {
		split, err = sjson.Set(split, "contentType", string(m.ContentType))
	}
	if err == nil {
		split, err = sjson.Set(split, "sourcePanelId", m.SourcePanelID)
	}
	if err != nil {
		return nil, fmt.Errorf("encode split payload: %w", err)
	}
	dt := NewDataTransfer()
	dt.Set(MIMEReorder, reorder)
	dt.Set(MIMESplit, split)
	dt.Set(MIMEText, m.TabID)
	return dt, nil
}

// Accepts reports whether any advertised type is one this protocol decodes.
func Accepts(types TypeList) bool {
	if types == nil {
		return false
	}
	for _, mime := range types.Types() {
		switch mime {
		case MIMEReorder, MIMESplit, MIMEText:
			return true
		}
	}
	return false
}

type reorderPayload struct {
	index   int
	panelID string
}

// Decode turns a dropped payload back into a Message. The reorder encoding
// wins when its panel matches dropPanelID; otherwise the split encoding is
// used, then the plain-text tab id.
func Decode(p Payload, dropPanelID string) (Message, error) {
	if p == nil {
		return Message{}, ErrProtocolMismatch
	}
	text := plainText(p)
	reorder, hasReorder := decodeReorder(p)
	if hasReorder && dropPanelID != "" && reorder.panelID == dropPanelID {
		return Message{
			Kind:          KindReorder,
			TabID:         text,
			SourcePanelID: reorder.panelID,
			SourceIndex:   reorder.index,
		}, nil
	}
	if msg, ok := decodeSplit(p); ok {
		if hasReorder && reorder.panelID == msg.SourcePanelID {
			msg.SourceIndex = reorder.index
		}
		return msg, nil
	}
	if text != "" {
		msg := Message{Kind: KindSplit, TabID: text, SourceIndex: -1}
		if hasReorder {
			msg.SourcePanelID = reorder.panelID
			msg.SourceIndex = reorder.index
		}
		return msg, nil
	}
	return Message{}, fmt.Errorf("%w: types %v", ErrProtocolMismatch, p.Types())
}

func plainText(p Payload) string {
	raw, ok := p.Get(MIMEText)
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}

func decodeReorder(p Payload) (reorderPayload, bool) {
	raw, ok := p.Get(MIMEReorder)
	if !ok || !gjson.Valid(raw) {
		return reorderPayload{}, false
	}
	doc := gjson.Parse(raw)
	index := doc.Get("index")
	panelID := doc.Get("panelId")
	if index.Type != gjson.Number || panelID.Type != gjson.String || panelID.String() == "" {
		return reorderPayload{}, false
	}
	return reorderPayload{index: int(index.Int()), panelID: panelID.String()}, true
}

func decodeSplit(p Payload) (Message, bool) {
	raw, ok := p.Get(MIMESplit)
	if !ok || !gjson.Valid(raw) {
		return Message{}, false
	}
	doc := gjson.Parse(raw)
	fileID := doc.Get("fileId")
	if fileID.Type != gjson.String || fileID.String() == "" {
		return Message{}, false
	}
	return Message{
		Kind:          KindSplit,
		TabID:         fileID.String(),
		ContentType:   workspace.ParseContentType(doc.Get("contentType").String()),
		SourcePanelID: doc.Get("sourcePanelId").String(),
		SourceIndex:   -1,
	}, true
}
