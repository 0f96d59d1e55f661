package model

import (
	"encoding/json"
	"fmt"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DecodeOption tunes decoding.
type DecodeOption func(*decoder)

type decoder struct {
	defaultKind Kind
}

// WithDefaultKind sets the kind used for components whose kind is missing
// or unknown.
func WithDefaultKind(k Kind) DecodeOption {
	return func(d *decoder) { d.defaultKind = k }
}

func newDecoder(opts []DecodeOption) *decoder {
	d := &decoder{defaultKind: KindList}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Valid reports whether data is a JSON document with a components array.
func Valid(data []byte) bool {
	return gjson.ValidBytes(data) && gjson.GetBytes(data, "components").IsArray()
}

// Decode reads a {"components": [...]} document. Malformed input yields an
// empty slice and missing fields decode to zero values; it never fails.
func Decode(data []byte, opts ...DecodeOption) []ComponentModel {
	if !gjson.ValidBytes(data) {
		return nil
	}
	d := newDecoder(opts)
	root := gjson.ParseBytes(data)
	list := root.Get("components")
	if !list.IsArray() {
		return nil
	}
	var out []ComponentModel
	for i, c := range list.Array() {
		if !c.IsObject() {
			continue
		}
		m := d.component(c)
		m.Index = i
		out = append(out, m)
	}
	return out
}

// DecodeComponent reads a single component object.
func DecodeComponent(data string, opts ...DecodeOption) ComponentModel {
	if !gjson.Valid(data) {
		return NewComponentModel(newDecoder(opts).defaultKind, "")
	}
	return newDecoder(opts).component(gjson.Parse(data))
}

// DecodeItem reads a single item object.
func DecodeItem(data string) Item {
	if !gjson.Valid(data) {
		return Item{}
	}
	return decodeItem(gjson.Parse(data))
}

func (d *decoder) component(r gjson.Result) ComponentModel {
	m := ComponentModel{
		Identifier:           identifier(r.Get("identifier")),
		Kind:                 ParseKind(r.Get("kind").String(), d.defaultKind),
		Title:                r.Get("title").String(),
		Meta:                 decodeMeta(r.Get("meta")),
		AmountOfItemsToCache: int(r.Get("amountOfItemsToCache").Int()),
	}
	if h := r.Get("header"); h.IsObject() {
		item := decodeItem(h)
		m.Header = &item
	}
	if f := r.Get("footer"); f.IsObject() {
		item := decodeItem(f)
		m.Footer = &item
	}
	m.Layout = decodeLayout(r, m.Meta)
	for _, it := range r.Get("items").Array() {
		if it.IsObject() {
			m.Items = append(m.Items, decodeItem(it))
		}
	}
	RefreshIndexes(m.Items)
	return m
}

// decodeLayout layers the layout object over the top-level span, which in
// turn overrides options carried in meta.
func decodeLayout(r gjson.Result, meta *Meta) Layout {
	l := DefaultLayout()
	l.Span = meta.Float("span", l.Span)
	l.ItemSpacing = meta.Float("item-spacing", l.ItemSpacing)
	l.LineSpacing = meta.Float("line-spacing", l.LineSpacing)
	if n := meta.Float("items-per-row", 0); n > 0 {
		l.ItemsPerRow = int(n)
	}
	if s := r.Get("span"); s.Exists() {
		l.Span = s.Float()
	}

	lo := r.Get("layout")
	if !lo.IsObject() {
		return l
	}
	if v := lo.Get("span"); v.Exists() {
		l.Span = v.Float()
	}
	if v := lo.Get("items-per-row"); v.Exists() && v.Int() > 0 {
		l.ItemsPerRow = int(v.Int())
	}
	if v := lo.Get("item-spacing"); v.Exists() {
		l.ItemSpacing = v.Float()
	}
	if v := lo.Get("line-spacing"); v.Exists() {
		l.LineSpacing = v.Float()
	}
	if in := lo.Get("inset"); in.IsObject() {
		l.Inset = Inset{
			Top:    in.Get("top").Float(),
			Left:   in.Get("left").Float(),
			Bottom: in.Get("bottom").Float(),
			Right:  in.Get("right").Float(),
		}
	}
	l.InfiniteScrolling = lo.Get("infinite-scrolling").Bool()
	l.ShowEmptyComponent = lo.Get("show-empty-component").Bool()
	return l
}

func decodeItem(r gjson.Result) Item {
	it := Item{
		Identifier: identifier(r.Get("identifier")),
		Kind:       r.Get("kind").String(),
		Title:      r.Get("title").String(),
		Subtitle:   r.Get("subtitle").String(),
		Text:       r.Get("text").String(),
		Image:      r.Get("image").String(),
		Action:     r.Get("action").String(),
		Size: geometry.Size{
			Width:  r.Get("size.width").Float(),
			Height: r.Get("size.height").Float(),
		},
		Meta: decodeMeta(r.Get("meta")),
	}
	for _, c := range r.Get("children").Array() {
		if c.IsObject() {
			it.Children = append(it.Children, decodeItem(c))
		}
	}
	RefreshIndexes(it.Children)
	return it
}

func decodeMeta(r gjson.Result) *Meta {
	if !r.IsObject() {
		return nil
	}
	m := NewMeta()
	r.ForEach(func(k, v gjson.Result) bool {
		m.Set(k.String(), v.Value())
		return true
	})
	return m
}

// identifier accepts both string and numeric identifiers.
func identifier(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	}
	return ""
}

type componentJSON struct {
	Identifier           string  `json:"identifier,omitempty"`
	Kind                 Kind    `json:"kind"`
	Title                string  `json:"title,omitempty"`
	Span                 float64 `json:"span,omitempty"`
	Header               *Item   `json:"header,omitempty"`
	Footer               *Item   `json:"footer,omitempty"`
	Layout               Layout  `json:"layout"`
	Items                []Item  `json:"items"`
	Meta                 *Meta   `json:"meta,omitempty"`
	AmountOfItemsToCache int     `json:"amountOfItemsToCache,omitempty"`
}

type documentJSON struct {
	Components []componentJSON `json:"components"`
}

func toJSON(m ComponentModel) componentJSON {
	items := m.Items
	if m.AmountOfItemsToCache > 0 && m.AmountOfItemsToCache < len(items) {
		items = items[:m.AmountOfItemsToCache]
	}
	if items == nil {
		items = []Item{}
	}
	return componentJSON{
		Identifier:           m.Identifier,
		Kind:                 m.Kind,
		Title:                m.Title,
		Span:                 m.Layout.Span,
		Header:               m.Header,
		Footer:               m.Footer,
		Layout:               m.Layout,
		Items:                items,
		Meta:                 m.Meta,
		AmountOfItemsToCache: m.AmountOfItemsToCache,
	}
}

// Encode writes components in the same shape Decode reads.
func Encode(models []ComponentModel) ([]byte, error) {
	doc := documentJSON{Components: make([]componentJSON, 0, len(models))}
	for _, m := range models {
		doc.Components = append(doc.Components, toJSON(m))
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode components: %w", err)
	}
	return data, nil
}

// EncodeComponent writes one component object.
func EncodeComponent(m ComponentModel) ([]byte, error) {
	data, err := json.Marshal(toJSON(m))
	if err != nil {
		return nil, fmt.Errorf("encode component: %w", err)
	}
	return data, nil
}

// AppendItem appends item to the items of the component at index in an
// existing document, leaving every other byte of the document untouched.
func AppendItem(doc []byte, component int, item Item) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("append item: document is not valid JSON")
	}
	count := int(gjson.GetBytes(doc, "components.#").Int())
	if component < 0 || component >= count {
		return nil, fmt.Errorf("append item: component %d out of range (have %d)", component, count)
	}
	out, err := sjson.SetBytes(doc, fmt.Sprintf("components.%d.items.-1", component), item)
	if err != nil {
		return nil, fmt.Errorf("append item: %w", err)
	}
	return out, nil
}
