package apply

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// LView holds the state of one instance of a compiled scope: the native node
// of every slot and the selected case of every ICU. The TView it renders is
// shared and never written to.
type LView struct {
	tView    *interfaces.TView
	host     *html.Node
	slots    []any
	renderer Renderer
	locale   language.Tag
	log      logrus.FieldLogger
}

// Option configures an LView.
type Option func(*LView)

// WithRenderer sets the renderer performing node mutations.
func WithRenderer(r Renderer) Option {
	return func(v *LView) {
		v.renderer = r
	}
}

// WithLocale sets the locale used to select plural cases.
func WithLocale(tag language.Tag) Option {
	return func(v *LView) {
		v.locale = tag
	}
}

// WithLogger sets the logger receiving runtime diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(v *LView) {
		v.log = l
	}
}

// NewLView creates an instance of tView rendering into host. The TView must be
// fully compiled: its size is fixed when the instance is created.
func NewLView(tView *interfaces.TView, host *html.Node, opts ...Option) *LView {
	v := &LView{
		tView:    tView,
		host:     host,
		slots:    make([]any, len(tView.Data)),
		renderer: DOMRenderer{},
		locale:   language.AmericanEnglish,
		log:      util.Log,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Host returns the node the instance renders into.
func (v *LView) Host() *html.Node {
	return v.host
}

// Node returns the native node stored at index, or nil.
func (v *LView) Node(index int) *html.Node {
	if index < 0 || index >= len(v.slots) {
		return nil
	}
	n, _ := v.slots[index].(*html.Node)
	return n
}

func (v *LView) parentNode(index int) *html.Node {
	if n := v.Node(index); n != nil {
		return n
	}
	return v.host
}

// currentCase returns the selected case of tIcu, or -1. fresh is set when the
// case was selected but its bindings were not applied yet.
func (v *LView) currentCase(tIcu *interfaces.TIcu) (index int, fresh bool) {
	c, ok := v.slots[tIcu.CurrentCaseLViewIndex].(int)
	if !ok {
		return -1, false
	}
	if c < 0 {
		return ^c, true
	}
	return c, false
}

// AttachPlaceholder registers node as the native node of the element or
// sub-template placeholder at index. It is inserted in front of the i18n node
// following it in the translation, and the i18n nodes translated inside it
// are moved into it.
func (v *LView) AttachPlaceholder(index int, node *html.Node) error {
	tNode := v.tView.TNode(index)
	if tNode == nil || tNode.Type != interfaces.TNodeTypePlaceholder {
		return fmt.Errorf("slot %d is not an i18n placeholder", index)
	}
	v.slots[index] = node

	parent := v.host
	if tNode.Parent != nil {
		parent = v.Node(tNode.Parent.Index)
	}
	if parent != nil {
		var ref *html.Node
		if tNode.InsertBeforeIndex != interfaces.NoInsertBefore {
			ref = v.Node(tNode.InsertBeforeIndex)
		}
		v.renderer.InsertBefore(parent, node, ref)
	}
	for _, child := range tNode.I18nChildren {
		if n := v.Node(child); n != nil {
			v.renderer.AppendChild(node, n)
		}
	}
	return nil
}

// Block is an instance of one compiled i18n block.
type Block struct {
	lView    *LView
	tI18n    *interfaces.TI18n
	bindings Bindings
}

// Start creates the nodes of tI18n and returns the block driving its updates.
func (v *LView) Start(tI18n *interfaces.TI18n) *Block {
	v.applyCreateOpCodes(tI18n.Create)
	return &Block{lView: v, tI18n: tI18n}
}

// Update binds values, in binding order, and applies the instructions of every
// binding that changed since the previous call.
func (b *Block) Update(values ...any) {
	mask := b.bindings.Bind(values...)
	if mask == 0 {
		return
	}
	b.lView.ApplyUpdateOpCodes(b.tI18n.Update, b.bindings.Values(), mask)
}

// Bindings remembers the last value of each binding of a block.
type Bindings struct {
	values []string
	bound  bool
}

// Bind stores values and returns the mask of the bindings that changed. The
// first call marks every binding as changed.
func (b *Bindings) Bind(values ...any) uint32 {
	var mask uint32
	for i, value := range values {
		s := stringify(value)
		if !b.bound || i >= len(b.values) || b.values[i] != s {
			mask |= i18n.ToMaskBit(i)
		}
		if i < len(b.values) {
			b.values[i] = s
		} else {
			b.values = append(b.values, s)
		}
	}
	if !b.bound {
		// -1: every group runs once, including those without bindings.
		mask = ^uint32(0)
	}
	b.bound = true
	return mask
}

// Values returns the last bound values.
func (b *Bindings) Values() []string {
	return b.values
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
