package interfaces

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the stream as the pseudo-code the runtime would execute.
func (c I18nCreateOpCodes) String() string {
	lines := make([]string, 0, len(c))
	for _, op := range c {
		fn := "createText"
		if op.Comment {
			fn = "createComment"
		}
		lines = append(lines, fmt.Sprintf("lView[%d] = document.%s(%s);", op.Index, fn, strconv.Quote(op.Text)))
		if op.AppendEagerly {
			lines = append(lines, fmt.Sprintf("parent.appendChild(lView[%d]);", op.Index))
		}
	}
	return strings.Join(lines, "\n")
}

func (c IcuCreateOpCodes) String() string {
	lines := make([]string, 0, len(c))
	for _, op := range c {
		switch op.Kind {
		case IcuCreateText:
			lines = append(lines, fmt.Sprintf("lView[%d] = document.createTextNode(%s)", op.Index, strconv.Quote(op.Value)))
		case IcuCreateElement:
			lines = append(lines, fmt.Sprintf("lView[%d] = document.createElement(%s)", op.Index, strconv.Quote(op.Value)))
		case IcuCreateAnchor:
			lines = append(lines, fmt.Sprintf("lView[%d] = document.createComment(%s)", op.Index, strconv.Quote(op.Value)))
		case IcuAppendChild:
			lines = append(lines, fmt.Sprintf("(lView[%d] as Element).appendChild(lView[%d])", op.Parent, op.Index))
		case IcuSetAttribute:
			lines = append(lines, fmt.Sprintf("(lView[%d] as Element).setAttribute(%s, %s)", op.Index, strconv.Quote(op.Name), strconv.Quote(op.Value)))
		}
	}
	return strings.Join(lines, "\n")
}

func (c I18nRemoveOpCodes) String() string {
	lines := make([]string, 0, len(c))
	for _, op := range c {
		if op.Kind == RemoveNestedIcu {
			lines = append(lines, fmt.Sprintf("removeNestedICU(%d)", op.Index))
		}
		lines = append(lines, fmt.Sprintf("remove(lView[%d])", op.Index))
	}
	return strings.Join(lines, "\n")
}

func (c I18nUpdateOpCodes) String() string {
	lines := make([]string, 0, len(c))
	for _, op := range c {
		var value strings.Builder
		for _, part := range op.Parts {
			if part.IsBinding {
				fmt.Fprintf(&value, "${lView[i%d]}", -1-part.Binding)
			} else {
				value.WriteString(part.Literal)
			}
		}
		var statement string
		switch op.Kind {
		case UpdateText:
			statement = fmt.Sprintf("(lView[%d] as Text).textContent = `%s`", op.Index, value.String())
		case UpdateAttr:
			v := "`" + value.String() + "`"
			if op.SanitizerName != "" {
				v = op.SanitizerName + "(" + v + ")"
			}
			statement = fmt.Sprintf("(lView[%d] as Element).setAttribute('%s', %s)", op.Index, op.AttrName, v)
		case UpdateIcuSwitch:
			statement = fmt.Sprintf("icuSwitchCase(%d, `%s`)", op.Index, value.String())
		case UpdateIcuUpdate:
			statement = fmt.Sprintf("icuUpdateCase(%d)", op.Index)
		}
		lines = append(lines, fmt.Sprintf("if (mask & 0b%b) { %s }", op.Mask, statement))
	}
	return strings.Join(lines, "\n")
}

func (t *TIcu) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ICU %s anchor=%d currentCase=lView[%d]\n", t.Type, t.AnchorIdx, t.CurrentCaseLViewIndex)
	for i, c := range t.Cases {
		fmt.Fprintf(&b, "case %q:\n", c)
		writeIndented(&b, "create", t.Create[i].String())
		writeIndented(&b, "remove", t.Remove[i].String())
		writeIndented(&b, "update", t.Update[i].String())
	}
	return b.String()
}

func writeIndented(b *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(b, "  %s:\n", title)
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
}
