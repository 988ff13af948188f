package interfaces

// HeaderOffset is the size of the reserved header at the start of every view.
// Template slots (and therefore i18n placeholder indices) start right after it.
const HeaderOffset = 22

// TView is the static, per-scope node table shared by every instance of a template.
//
// Data is indexed by absolute slot index. A slot holds one of:
//   - *TNode for nodes created by the template or by an i18n block
//   - *TIcu for a nested ICU anchor without a TNode
//   - *TI18n for an i18n block instruction
//   - I18nUpdateOpCodes for an i18n attributes instruction
//   - nil for slots that only carry instance state (binding values, ICU case)
type TView struct {
	Data []any

	// BindingStartIndex is the first slot after the declared template slots.
	BindingStartIndex int
}

// NewTView creates a TView with decls template slots and vars binding slots.
// Negative counts are treated as zero.
func NewTView(decls, vars int) *TView {
	decls, vars = max(decls, 0), max(vars, 0)
	start := HeaderOffset + decls
	return &TView{
		Data:              make([]any, start+vars),
		BindingStartIndex: start,
	}
}

// AllocExpando reserves count slots at the end of the view and returns the first one.
func (t *TView) AllocExpando(count int) int {
	index := len(t.Data)
	for i := 0; i < count; i++ {
		t.Data = append(t.Data, nil)
	}
	return index
}

// Checkpoint is the state of a TView at one point of a compilation.
type Checkpoint struct {
	slots []any
	nodes map[*TNode]TNode
}

// Checkpoint records the slots of t and the template TNodes a compilation may
// update in place.
func (t *TView) Checkpoint() *Checkpoint {
	c := &Checkpoint{
		slots: append([]any(nil), t.Data...),
		nodes: make(map[*TNode]TNode),
	}
	for _, v := range t.Data[HeaderOffset:t.BindingStartIndex] {
		if tNode, ok := v.(*TNode); ok {
			c.nodes[tNode] = *tNode
		}
	}
	return c
}

// Restore puts t back in the state recorded by c, dropping every slot
// allocated since.
func (t *TView) Restore(c *Checkpoint) {
	t.Data = t.Data[:len(c.slots)]
	copy(t.Data, c.slots)
	for tNode, saved := range c.nodes {
		*tNode = saved
	}
}

// CreateTNodeAtIndex stores a new TNode at index.
func (t *TView) CreateTNodeAtIndex(index int, nodeType TNodeType, value string, parent *TNode) *TNode {
	tNode := &TNode{
		Index:             index,
		Type:              nodeType,
		Value:             value,
		Parent:            parent,
		InsertBeforeIndex: NoInsertBefore,
	}
	t.Data[index] = tNode
	return tNode
}

// TNode returns the TNode stored at index, or nil.
func (t *TView) TNode(index int) *TNode {
	if index < 0 || index >= len(t.Data) {
		return nil
	}
	tNode, _ := t.Data[index].(*TNode)
	return tNode
}

// SetTIcu attaches icu to the slot at index. Root ICUs hang off their anchor
// TNode, nested ones occupy the slot directly.
func (t *TView) SetTIcu(index int, icu *TIcu) {
	if tNode, ok := t.Data[index].(*TNode); ok {
		tNode.Icu = icu
		return
	}
	t.Data[index] = icu
}

// TIcu returns the ICU registered at index, or nil.
func (t *TView) TIcu(index int) *TIcu {
	if index < 0 || index >= len(t.Data) {
		return nil
	}
	switch v := t.Data[index].(type) {
	case *TNode:
		return v.Icu
	case *TIcu:
		return v
	}
	return nil
}

// TIcus returns every ICU registered in the view keyed by anchor index.
func (t *TView) TIcus() map[int]*TIcu {
	icus := make(map[int]*TIcu)
	for i := range t.Data {
		if icu := t.TIcu(i); icu != nil {
			icus[i] = icu
		}
	}
	return icus
}
