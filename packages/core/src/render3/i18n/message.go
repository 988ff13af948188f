package i18n

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// Compiler compiles translated messages into the instruction streams of one
// template scope. Results are stored in the TView so a message is compiled
// once no matter how many times the scope is instantiated.
//
// A Compiler is not safe for concurrent use: node indices are allocated from
// the single counter of its TView.
type Compiler struct {
	tView  *interfaces.TView
	config *config.I18nConfig
}

// NewCompiler creates a Compiler writing into tView.
func NewCompiler(tView *interfaces.TView, opts ...config.I18nConfigOption) *Compiler {
	return &Compiler{tView: tView, config: config.NewI18nConfig(opts...)}
}

// TView returns the node table the compiler writes into.
func (c *Compiler) TView() *interfaces.TView {
	return c.tView
}

// firstCreatePass is the state shared by the message, ICU and case walkers
// while compiling one message.
type firstCreatePass struct {
	tView  *interfaces.TView
	config *config.I18nConfig
	log    logrus.FieldLogger

	create interfaces.I18nCreateOpCodes
	update interfaces.I18nUpdateOpCodes
}

// tNodeFrame tracks the placeholder currently open in a message and the nodes
// created directly inside it.
type tNodeFrame struct {
	parent   *interfaces.TNode
	existing []*interfaces.TNode
}

// I18nStart compiles message for the scope selected by subTemplateIndex and
// stores the result at index.
//
// parentTNodeIndex is the slot of the element hosting the i18n block, or -1
// when the block sits at the root of the template. Nested ICU case content is
// attached to it at runtime.
func (c *Compiler) I18nStart(parentTNodeIndex, index int, message string, subTemplateIndex int) (*interfaces.TI18n, error) {
	if index < interfaces.HeaderOffset || index >= len(c.tView.Data) {
		return nil, fmt.Errorf("i18n index %d is outside of the view", index)
	}
	if tI18n, ok := c.tView.Data[index].(*interfaces.TI18n); ok {
		return tI18n, nil
	}

	log := c.config.Logger.WithFields(logrus.Fields{"index": index, "subTemplate": subTemplateIndex})
	p := &firstCreatePass{tView: c.tView, config: c.config, log: log}

	scoped, err := GetTranslationForTemplate(message, subTemplateIndex)
	if err != nil {
		return nil, err
	}
	// A failed compilation leaves the view as it found it.
	checkpoint := c.tView.Checkpoint()
	if err := p.compileMessage(parentTNodeIndex, index, replaceNgsp(scoped)); err != nil {
		c.tView.Restore(checkpoint)
		var msgErr *MessageError
		if errors.As(err, &msgErr) {
			return nil, err
		}
		return nil, &MessageError{Message: message, Err: err}
	}

	tI18n := &interfaces.TI18n{Create: p.create, Update: p.update}
	c.tView.Data[index] = tI18n
	if util.DevMode {
		log.WithFields(logrus.Fields{
			"create": len(p.create),
			"update": len(p.update),
		}).Debug("compiled i18n block")
	}
	return tI18n, nil
}

func (p *firstCreatePass) compileMessage(parentTNodeIndex, index int, message string) error {
	stack := []*tNodeFrame{{}}
	msgParts := splitCaptures(phRegexp, message)
	for i, value := range msgParts {
		frame := stack[len(stack)-1]
		if i&1 == 1 {
			// Odd indexes are placeholders (elements and sub-templates),
			// something like "/#1" (originally coming from "�/#1:2�").
			isClosing := value[0] == '/'
			ref := strings.TrimPrefix(value, "/")
			n, err := strconv.Atoi(ref[1:])
			if err != nil || n >= p.tView.BindingStartIndex-interfaces.HeaderOffset {
				return fmt.Errorf("%w: %q references a slot outside of the template", ErrInvalidPlaceholder, value)
			}
			phIndex := interfaces.HeaderOffset + n
			if phIndex == index {
				return fmt.Errorf("%w: %q references the i18n block itself", ErrInvalidPlaceholder, value)
			}
			if isClosing {
				if len(stack) == 1 || frame.parent.Index != phIndex {
					return fmt.Errorf("%w: unexpected closing %q", ErrInvalidPlaceholder, value)
				}
				stack = stack[:len(stack)-1]
				continue
			}
			if existing := p.tView.Data[phIndex]; existing != nil {
				if tNode, ok := existing.(*interfaces.TNode); !ok || tNode.Type != interfaces.TNodeTypePlaceholder {
					return fmt.Errorf("%w: %q references slot %d, which is already in use", ErrInvalidPlaceholder, value, phIndex)
				}
			}
			tNode := createTNodePlaceholder(p.tView, &frame.existing, phIndex, frame.parent)
			stack = append(stack, &tNodeFrame{parent: tNode})
			continue
		}

		// Even indexes are text (including bindings & ICU expressions)
		parts, err := icuParser{log: p.log}.splitTextAndIcu(value)
		if err != nil {
			return err
		}
		for j, part := range parts {
			if j&1 == 0 {
				if part.Text != "" {
					p.processTextNode(frame, part.Text)
				}
				continue
			}
			label := ""
			if util.DevMode {
				label = fmt.Sprintf("ICU %d:%d", index, part.Icu.MainBinding)
			}
			icuContainer := p.createTNodeAndAddOpCode(frame, label, true)
			if err := p.icuStart(part.Icu, parentTNodeIndex, icuContainer.Index); err != nil {
				return err
			}
		}
	}
	if len(stack) > 1 {
		return fmt.Errorf("%w: placeholder for slot %d is never closed", ErrInvalidPlaceholder, stack[len(stack)-1].parent.Index)
	}
	return nil
}

// createTNodeAndAddOpCode allocates a slot for a text or ICU anchor node and
// adds the instruction creating it. Nodes inside a placeholder are not
// appended eagerly: the placeholder element attaches them once it exists.
func (p *firstCreatePass) createTNodeAndAddOpCode(frame *tNodeFrame, text string, isICU bool) *interfaces.TNode {
	i18nNodeIdx := p.tView.AllocExpando(1)
	p.create = append(p.create, interfaces.I18nCreateOp{
		Index:         i18nNodeIdx,
		Text:          text,
		Comment:       isICU,
		AppendEagerly: frame.parent == nil,
	})

	nodeType, value := interfaces.TNodeTypeText, text
	if isICU {
		nodeType = interfaces.TNodeTypeIcu
	}
	tNode := p.tView.CreateTNodeAtIndex(i18nNodeIdx, nodeType, value, nil)
	addTNodeAndUpdateInsertBeforeIndex(&frame.existing, tNode)
	if frame.parent != nil {
		setTNodeInsertBeforeIndex(frame.parent, tNode.Index)
	}
	return tNode
}

func (p *firstCreatePass) processTextNode(frame *tNodeFrame, text string) {
	if !HasBinding(text) {
		p.createTNodeAndAddOpCode(frame, text, false)
		return
	}
	tNode := p.createTNodeAndAddOpCode(frame, "", false)
	if util.DevMode {
		// Shows where the bindings are when inspecting the node table.
		tNode.Value = "{{?}}"
	}
	GenerateBindingUpdateOpCodes(&p.update, text, tNode.Index, "", 0, nil, "")
}

// I18nAttributes compiles the translated attributes of the element at
// elementIndex and stores the update instructions at index. values holds
// attribute name and message pairs.
func (c *Compiler) I18nAttributes(index, elementIndex int, values []string) (interfaces.I18nUpdateOpCodes, error) {
	if index < interfaces.HeaderOffset || index >= len(c.tView.Data) {
		return nil, fmt.Errorf("i18n attributes index %d is outside of the view", index)
	}
	if updateOpCodes, ok := c.tView.Data[index].(interfaces.I18nUpdateOpCodes); ok {
		return updateOpCodes, nil
	}
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("i18n attributes need name/message pairs, got %d values", len(values))
	}

	var updateOpCodes interfaces.I18nUpdateOpCodes
	for i := 0; i < len(values); i += 2 {
		attrName, message := values[i], values[i+1]
		if message == "" {
			continue
		}
		// ICUs in element attributes are not supported.
		if icuRegexp.MatchString(message) {
			return nil, &MessageError{Message: message, Err: ErrIcuInAttribute}
		}
		// This may not be the first i18n attribute on this element so the
		// bindings already consumed shift the ordinals of this one.
		fn, fnName := c.config.Sanitizer.ForAttribute(strings.ToLower(attrName))
		GenerateBindingUpdateOpCodes(&updateOpCodes, message, elementIndex, attrName, updateOpCodes.CountBindings(), fn, fnName)
	}
	c.tView.Data[index] = updateOpCodes
	return updateOpCodes, nil
}
