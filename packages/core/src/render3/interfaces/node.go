package interfaces

// TNodeType is a bit set describing what kind of node a TNode stands for.
type TNodeType int

const (
	TNodeTypeText        TNodeType = 0b1
	TNodeTypeElement     TNodeType = 0b10
	TNodeTypeIcu         TNodeType = 0b100000
	TNodeTypePlaceholder TNodeType = 0b1000000
)

func (t TNodeType) String() string {
	switch t {
	case TNodeTypeText:
		return "Text"
	case TNodeTypeElement:
		return "Element"
	case TNodeTypeIcu:
		return "Icu"
	case TNodeTypePlaceholder:
		return "Placeholder"
	}
	return "Unknown"
}

// NoInsertBefore marks a TNode whose native node is appended rather than inserted.
const NoInsertBefore = -1

// TNode is static metadata for one node slot. It is written during the first
// create pass and only read afterwards.
type TNode struct {
	Index int
	Type  TNodeType

	// Value is the text of a text node, the tag of an element or the debug
	// label of an ICU anchor.
	Value string

	Parent *TNode

	// Icu is set on ICU anchors created at the top level of a message.
	Icu *TIcu

	// InsertBeforeIndex is the i18n node this node must be inserted in front
	// of when it is attached to its parent, or NoInsertBefore.
	InsertBeforeIndex int

	// I18nChildren lists i18n nodes that belong inside this placeholder and
	// must be appended once the placeholder's native element exists.
	I18nChildren []int
}

// IsI18nText reports whether the node was created by the i18n block itself
// (text or ICU anchor) rather than being a template placeholder.
func (n *TNode) IsI18nText() bool {
	return n.Type&TNodeTypePlaceholder == 0
}
