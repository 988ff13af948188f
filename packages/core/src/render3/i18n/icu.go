package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// icuCaseOpCodes are the streams of the ICU case being walked.
type icuCaseOpCodes struct {
	create interfaces.IcuCreateOpCodes
	remove interfaces.I18nRemoveOpCodes
	update interfaces.I18nUpdateOpCodes
}

// icuStart compiles an ICU expression anchored at anchorIdx and registers the
// resulting TIcu on the anchor slot.
//
// The switch instruction goes to the shared update stream so every update
// pass can check whether the selected case changed. When any case has bound
// content an ICU update instruction follows it.
func (p *firstCreatePass) icuStart(icuExpression *interfaces.IcuExpression, parentIdx, anchorIdx int) error {
	tIcu := &interfaces.TIcu{
		Type:                  icuExpression.Type,
		AnchorIdx:             anchorIdx,
		CurrentCaseLViewIndex: p.tView.AllocExpando(1),
	}
	p.addUpdateIcuSwitch(icuExpression, anchorIdx)
	p.tView.SetTIcu(anchorIdx, tIcu)

	var bindingMask uint32
	for i, valueArr := range icuExpression.Values {
		// Each value is a list of text and nested ICU expressions. Nested
		// expressions are replaced by comment placeholders in the case markup.
		var nestedIcus []*interfaces.IcuExpression
		var caseHTML strings.Builder
		for _, value := range valueArr {
			if value.IsIcu() {
				caseHTML.WriteString("<!--" + Marker + strconv.Itoa(len(nestedIcus)) + Marker + "-->")
				nestedIcus = append(nestedIcus, value.Icu)
				continue
			}
			caseHTML.WriteString(value.Text)
		}
		mask, err := p.parseIcuCase(tIcu, parentIdx, icuExpression.Cases[i], caseHTML.String(), nestedIcus)
		if err != nil {
			return err
		}
		bindingMask |= mask
	}
	if bindingMask != 0 {
		p.addUpdateIcuUpdate(bindingMask, anchorIdx)
	}
	return nil
}

// parseIcuCase parses the markup of one case and generates its create, remove
// and update streams.
func (p *firstCreatePass) parseIcuCase(
	tIcu *interfaces.TIcu,
	parentIdx int,
	caseName string,
	unsafeCaseHTML string,
	nestedIcus []*interfaces.IcuExpression,
) (uint32, error) {
	inertRootNode, err := p.config.FragmentParser.ParseFragment(unsafeCaseHTML)
	if err != nil {
		return 0, fmt.Errorf("ICU case %q: %w", caseName, err)
	}
	opCodes := &icuCaseOpCodes{}
	var mask uint32
	if inertRootNode != nil {
		mask, err = p.walkIcuTree(opCodes, inertRootNode, parentIdx, nestedIcus, 0)
		if err != nil {
			return 0, err
		}
	}
	tIcu.Cases = append(tIcu.Cases, caseName)
	tIcu.Create = append(tIcu.Create, opCodes.create)
	tIcu.Remove = append(tIcu.Remove, opCodes.remove)
	tIcu.Update = append(tIcu.Update, opCodes.update)
	return mask, nil
}

// walkIcuTree emits the instructions for every child of parentNode. Only nodes
// at depth 0 get a remove instruction: deeper nodes go away with them.
func (p *firstCreatePass) walkIcuTree(
	opCodes *icuCaseOpCodes,
	parentNode *html.Node,
	parentIdx int,
	nestedIcus []*interfaces.IcuExpression,
	depth int,
) (uint32, error) {
	var bindingMask uint32
	for currentNode := parentNode.FirstChild; currentNode != nil; currentNode = currentNode.NextSibling {
		newIndex := p.tView.AllocExpando(1)
		switch currentNode.Type {
		case html.ElementNode:
			tagName := strings.ToLower(currentNode.Data)
			if !p.config.AllowedElements.Has(tagName) {
				p.warn(logrus.Fields{"element": tagName}, "ignoring unsafe element in ICU case (see https://g.co/ng/security#xss)")
				continue
			}
			addCreateNodeAndAppend(opCodes, interfaces.IcuCreateElement, tagName, parentIdx, newIndex)
			p.tView.CreateTNodeAtIndex(newIndex, interfaces.TNodeTypeElement, tagName, nil)
			for _, attr := range currentNode.Attr {
				bindingMask |= p.addAttribute(opCodes, tagName, newIndex, attr)
			}
			// Parse the children of this node (if any)
			mask, err := p.walkIcuTree(opCodes, currentNode, newIndex, nestedIcus, depth+1)
			if err != nil {
				return 0, err
			}
			bindingMask |= mask
			addRemoveNode(opCodes, newIndex, depth)

		case html.TextNode:
			value := currentNode.Data
			hasBinding := HasBinding(value)
			text := value
			if hasBinding {
				text = ""
			}
			addCreateNodeAndAppend(opCodes, interfaces.IcuCreateText, text, parentIdx, newIndex)
			p.tView.CreateTNodeAtIndex(newIndex, interfaces.TNodeTypeText, text, nil)
			addRemoveNode(opCodes, newIndex, depth)
			if hasBinding {
				bindingMask |= GenerateBindingUpdateOpCodes(&opCodes.update, value, newIndex, "", 0, nil, "")
			}

		case html.CommentNode:
			// Check if the comment node is a placeholder for a nested ICU
			match := nestedIcuRegexp.FindStringSubmatch(currentNode.Data)
			if match == nil {
				continue
			}
			nestedIcuIndex, err := strconv.Atoi(match[1])
			if err != nil || nestedIcuIndex >= len(nestedIcus) {
				p.warn(logrus.Fields{"comment": currentNode.Data}, "ignoring comment that does not reference a nested ICU")
				continue
			}
			label := ""
			if util.DevMode {
				label = fmt.Sprintf("nested ICU %d", nestedIcuIndex)
			}
			// Create the comment node that will anchor the ICU expression
			addCreateNodeAndAppend(opCodes, interfaces.IcuCreateAnchor, label, parentIdx, newIndex)
			p.tView.CreateTNodeAtIndex(newIndex, interfaces.TNodeTypeIcu, label, nil)
			if err := p.icuStart(nestedIcus[nestedIcuIndex], parentIdx, newIndex); err != nil {
				return 0, err
			}
			addRemoveNestedIcu(opCodes, newIndex, depth)
		}
	}
	return bindingMask, nil
}

// addAttribute emits a static attribute, or an update instruction when the
// value is bound. Bound values are only accepted for allow-listed attributes.
func (p *firstCreatePass) addAttribute(opCodes *icuCaseOpCodes, tagName string, index int, attr html.Attribute) uint32 {
	name := attr.Key
	if attr.Namespace != "" {
		name = attr.Namespace + ":" + attr.Key
	}
	// we assume the input string is safe, unless it's using a binding
	if !HasBinding(attr.Val) {
		opCodes.create = append(opCodes.create, interfaces.IcuCreateOp{
			Kind:  interfaces.IcuSetAttribute,
			Index: index,
			Name:  name,
			Value: attr.Val,
		})
		return 0
	}
	lowerAttrName := strings.ToLower(name)
	if !p.config.AllowedAttributes.Has(lowerAttrName) {
		p.warn(logrus.Fields{"attribute": lowerAttrName, "element": tagName},
			"ignoring unsafe attribute value (see https://g.co/ng/security#xss)")
		return 0
	}
	fn, fnName := p.config.Sanitizer.ForAttribute(lowerAttrName)
	return GenerateBindingUpdateOpCodes(&opCodes.update, attr.Val, index, name, 0, fn, fnName)
}

func (p *firstCreatePass) warn(fields logrus.Fields, msg string) {
	if !util.DevMode {
		return
	}
	p.log.WithFields(fields).Warn(msg)
}

func (p *firstCreatePass) addUpdateIcuSwitch(icuExpression *interfaces.IcuExpression, index int) {
	p.update = append(p.update, interfaces.UpdateOp{
		Mask:  ToMaskBit(icuExpression.MainBinding),
		Parts: []interfaces.UpdatePart{interfaces.BindingPart(icuExpression.MainBinding)},
		Kind:  interfaces.UpdateIcuSwitch,
		Index: index,
	})
}

func (p *firstCreatePass) addUpdateIcuUpdate(bindingMask uint32, index int) {
	p.update = append(p.update, interfaces.UpdateOp{
		Mask:  bindingMask,
		Kind:  interfaces.UpdateIcuUpdate,
		Index: index,
	})
}

func addCreateNodeAndAppend(opCodes *icuCaseOpCodes, kind interfaces.IcuCreateOpKind, value string, appendToParentIdx, createAtIdx int) {
	opCodes.create = append(opCodes.create,
		interfaces.IcuCreateOp{Kind: kind, Index: createAtIdx, Value: value},
		interfaces.IcuCreateOp{Kind: interfaces.IcuAppendChild, Index: createAtIdx, Parent: appendToParentIdx},
	)
}

func addRemoveNode(opCodes *icuCaseOpCodes, index, depth int) {
	if depth == 0 {
		opCodes.remove = append(opCodes.remove, interfaces.RemoveOp{Kind: interfaces.RemoveNode, Index: index})
	}
}

func addRemoveNestedIcu(opCodes *icuCaseOpCodes, index, depth int) {
	if depth == 0 {
		opCodes.remove = append(opCodes.remove, interfaces.RemoveOp{Kind: interfaces.RemoveNestedIcu, Index: index})
	}
}
