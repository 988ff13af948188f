package i18n

import (
	"ngc-i18n/packages/core/src/render3/interfaces"
)

// addTNodeAndUpdateInsertBeforeIndex records newTNode as the latest sibling and
// points earlier placeholders at it, so that once their element is created it
// is inserted in front of the i18n node that follows it in the translation.
//
// Text nodes are created eagerly and so they don't need their InsertBeforeIndex
// updated.
func addTNodeAndUpdateInsertBeforeIndex(previousTNodes *[]*interfaces.TNode, newTNode *interfaces.TNode) {
	*previousTNodes = append(*previousTNodes, newTNode)
	nodes := *previousTNodes
	for i := len(nodes) - 2; i >= 0; i-- {
		existing := nodes[i]
		if existing.IsI18nText() {
			continue
		}
		if isNewTNodeCreatedBefore(existing, newTNode) && existing.InsertBeforeIndex == interfaces.NoInsertBefore {
			existing.InsertBeforeIndex = newTNode.Index
		}
	}
}

func isNewTNodeCreatedBefore(existing, newTNode *interfaces.TNode) bool {
	return newTNode.IsI18nText() || existing.Index > newTNode.Index
}

// setTNodeInsertBeforeIndex registers index as an i18n child of a placeholder.
func setTNodeInsertBeforeIndex(tNode *interfaces.TNode, index int) {
	tNode.I18nChildren = append(tNode.I18nChildren, index)
}

// createTNodePlaceholder creates the TNode standing for an element or
// sub-template referenced by the translation.
func createTNodePlaceholder(
	tView *interfaces.TView,
	previousTNodes *[]*interfaces.TNode,
	index int,
	parent *interfaces.TNode,
) *interfaces.TNode {
	tNode := tView.CreateTNodeAtIndex(index, interfaces.TNodeTypePlaceholder, "", parent)
	addTNodeAndUpdateInsertBeforeIndex(previousTNodes, tNode)
	return tNode
}
