package apply

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// applyCreateOpCodes creates the text nodes and ICU anchors of a block. Nodes
// that are not appended eagerly wait for their placeholder element.
func (v *LView) applyCreateOpCodes(create interfaces.I18nCreateOpCodes) {
	for _, op := range create {
		rNode := v.Node(op.Index)
		if rNode == nil {
			if op.Comment {
				rNode = v.renderer.CreateComment(op.Text)
			} else {
				rNode = v.renderer.CreateText(op.Text)
			}
			v.slots[op.Index] = rNode
		}
		if op.AppendEagerly && v.host != nil {
			v.renderer.AppendChild(v.host, rNode)
		}
	}
}

// applyMutableOpCodes creates the nodes of one ICU case. Nodes appended to the
// ICU parent are inserted in front of the anchor; the others go to the element
// created for them earlier in the stream.
func (v *LView) applyMutableOpCodes(create interfaces.IcuCreateOpCodes, anchor *html.Node) {
	rootIdx, haveRoot := 0, false
	var rootRNode *html.Node
	for _, op := range create {
		switch op.Kind {
		case interfaces.IcuCreateText:
			v.slots[op.Index] = v.renderer.CreateText(op.Value)
		case interfaces.IcuCreateElement:
			v.slots[op.Index] = v.renderer.CreateElement(op.Value)
		case interfaces.IcuCreateAnchor:
			v.slots[op.Index] = v.renderer.CreateComment(op.Value)
			// A new anchor carries no case content yet.
			if nested := v.tView.TIcu(op.Index); nested != nil {
				v.slots[nested.CurrentCaseLViewIndex] = nil
			}
		case interfaces.IcuSetAttribute:
			if el := v.Node(op.Index); el != nil {
				v.renderer.SetAttribute(el, op.Name, op.Value)
			}
		case interfaces.IcuAppendChild:
			child := v.Node(op.Index)
			if child == nil {
				continue
			}
			if !haveRoot {
				rootIdx, rootRNode, haveRoot = op.Parent, anchor.Parent, true
			}
			if op.Parent == rootIdx {
				if rootRNode != nil {
					v.renderer.InsertBefore(rootRNode, child, anchor)
				}
				continue
			}
			if parent := v.Node(op.Parent); parent != nil {
				v.renderer.AppendChild(parent, child)
			}
		}
	}
}

// ApplyUpdateOpCodes runs every group of opCodes whose mask intersects
// changeMask. bindings holds the values referenced by the groups.
func (v *LView) ApplyUpdateOpCodes(opCodes interfaces.I18nUpdateOpCodes, bindings []string, changeMask uint32) {
	for _, op := range opCodes {
		if op.Mask&changeMask == 0 {
			v.applyPendingIcu(op, bindings)
			continue
		}
		value := compose(op.Parts, bindings)
		switch op.Kind {
		case interfaces.UpdateText:
			if n := v.Node(op.Index); n != nil {
				v.renderer.SetText(n, value)
			}
		case interfaces.UpdateAttr:
			if el := v.Node(op.Index); el != nil {
				if op.Sanitizer != nil {
					value = op.Sanitizer(value)
				}
				v.renderer.SetAttribute(el, op.AttrName, value)
			}
		case interfaces.UpdateIcuSwitch:
			if tIcu := v.tView.TIcu(op.Index); tIcu != nil {
				v.applyIcuSwitchCase(tIcu, value)
			}
		case interfaces.UpdateIcuUpdate:
			if tIcu := v.tView.TIcu(op.Index); tIcu != nil {
				v.applyIcuUpdateCase(tIcu, bindings, changeMask)
			}
		}
	}
}

// applyPendingIcu handles the ICU groups that must run although none of
// their bindings changed: an anchor created during this pass still needs its
// case, and a case created during this pass still needs its bindings.
func (v *LView) applyPendingIcu(op interfaces.UpdateOp, bindings []string) {
	switch op.Kind {
	case interfaces.UpdateIcuSwitch:
		tIcu := v.tView.TIcu(op.Index)
		if tIcu == nil || v.Node(tIcu.AnchorIdx) == nil {
			return
		}
		if active, _ := v.currentCase(tIcu); active < 0 {
			v.applyIcuSwitchCase(tIcu, compose(op.Parts, bindings))
		}
	case interfaces.UpdateIcuUpdate:
		tIcu := v.tView.TIcu(op.Index)
		if tIcu == nil {
			return
		}
		if _, fresh := v.currentCase(tIcu); fresh {
			v.applyIcuUpdateCase(tIcu, bindings, 0)
		}
	}
}

// applyIcuSwitchCase selects the case matching value, replacing the content
// of the previous case when it differs.
func (v *LView) applyIcuSwitchCase(tIcu *interfaces.TIcu, value string) {
	anchor := v.Node(tIcu.AnchorIdx)
	if anchor == nil {
		return
	}
	caseIndex := getCaseIndex(tIcu, value, v)
	if active, _ := v.currentCase(tIcu); active == caseIndex {
		return
	}
	v.applyIcuSwitchCaseRemove(tIcu)
	if caseIndex < 0 {
		return
	}
	if util.DevMode {
		v.log.WithFields(logrus.Fields{"anchor": tIcu.AnchorIdx, "case": tIcu.Cases[caseIndex]}).Debug("switching ICU case")
	}
	// Stored complemented until the bindings of the case have been applied.
	v.slots[tIcu.CurrentCaseLViewIndex] = ^caseIndex
	v.applyMutableOpCodes(tIcu.Create[caseIndex], anchor)
}

// applyIcuUpdateCase applies the bindings of the active case. A case created
// since the last update gets all of them.
func (v *LView) applyIcuUpdateCase(tIcu *interfaces.TIcu, bindings []string, changeMask uint32) {
	active, fresh := v.currentCase(tIcu)
	if active < 0 {
		return
	}
	if fresh {
		v.slots[tIcu.CurrentCaseLViewIndex] = active
		changeMask = ^uint32(0)
	}
	v.ApplyUpdateOpCodes(tIcu.Update[active], bindings, changeMask)
}

// applyIcuSwitchCaseRemove removes the content of the active case, including
// the content of nested ICUs.
func (v *LView) applyIcuSwitchCaseRemove(tIcu *interfaces.TIcu) {
	active, _ := v.currentCase(tIcu)
	if active < 0 {
		return
	}
	for _, op := range tIcu.Remove[active] {
		if op.Kind == interfaces.RemoveNestedIcu {
			if nested := v.tView.TIcu(op.Index); nested != nil {
				v.applyIcuSwitchCaseRemove(nested)
			}
		}
		if n := v.Node(op.Index); n != nil {
			v.renderer.RemoveChild(n)
			v.slots[op.Index] = nil
		}
	}
	v.slots[tIcu.CurrentCaseLViewIndex] = nil
}

// getCaseIndex returns the case matching value: an exact label first, then the
// plural category of value, then "other". It returns -1 when none matches.
func getCaseIndex(tIcu *interfaces.TIcu, value string, v *LView) int {
	index := indexOf(tIcu.Cases, value)
	if index >= 0 {
		return index
	}
	switch tIcu.Type {
	case interfaces.IcuTypePlural:
		resolvedCase := GetPluralCase(value, v.locale)
		index = indexOf(tIcu.Cases, resolvedCase)
		if index < 0 && resolvedCase != "other" {
			index = indexOf(tIcu.Cases, "other")
		}
	case interfaces.IcuTypeSelect:
		index = indexOf(tIcu.Cases, "other")
	}
	return index
}

func indexOf(cases []string, value string) int {
	for i, c := range cases {
		if c == value {
			return i
		}
	}
	return -1
}

func compose(parts []interfaces.UpdatePart, bindings []string) string {
	var b strings.Builder
	for _, part := range parts {
		if !part.IsBinding {
			b.WriteString(part.Literal)
			continue
		}
		if part.Binding < len(bindings) {
			b.WriteString(bindings[part.Binding])
		}
	}
	return b.String()
}
