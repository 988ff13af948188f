package i18n_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

// The i18n block sits in slot 22 of a view with two template slots, so the
// first slot allocated by the compiler is 24.
const blockIndex = interfaces.HeaderOffset

func compile(t *testing.T, message string, opts ...config.I18nConfigOption) (*interfaces.TView, *interfaces.TI18n) {
	t.Helper()
	tView := interfaces.NewTView(2, 0)
	tI18n, err := i18n.NewCompiler(tView, opts...).I18nStart(-1, blockIndex, message, i18n.RootTemplate)
	if err != nil {
		t.Fatalf("I18nStart(%q) error: %v", message, err)
	}
	return tView, tI18n
}

func devLabel(label string) string {
	if util.DevMode {
		return label
	}
	return ""
}

func textCase(index, parent int, value string) interfaces.IcuCreateOpCodes {
	return interfaces.IcuCreateOpCodes{
		{Kind: interfaces.IcuCreateText, Index: index, Value: value},
		{Kind: interfaces.IcuAppendChild, Index: index, Parent: parent},
	}
}

func removeNodes(indices ...int) interfaces.I18nRemoveOpCodes {
	var ops interfaces.I18nRemoveOpCodes
	for _, i := range indices {
		ops = append(ops, interfaces.RemoveOp{Kind: interfaces.RemoveNode, Index: i})
	}
	return ops
}

func TestIcuPlural(t *testing.T) {
	tView, tI18n := compile(t, "{"+m+"0"+m+", plural, =0 {no items} =1 {one item} other {"+m+"0"+m+" items}}")

	wantCreate := interfaces.I18nCreateOpCodes{
		{Index: 24, Text: devLabel("ICU 22:0"), Comment: true, AppendEagerly: true},
	}
	if diff := cmp.Diff(wantCreate, tI18n.Create); diff != "" {
		t.Errorf("create mismatch (-want +got):\n%s", diff)
	}

	wantUpdate := interfaces.I18nUpdateOpCodes{
		{Mask: 1, Parts: []interfaces.UpdatePart{interfaces.BindingPart(0)}, Kind: interfaces.UpdateIcuSwitch, Index: 24},
		{Mask: 1, Kind: interfaces.UpdateIcuUpdate, Index: 24},
	}
	if diff := cmp.Diff(wantUpdate, tI18n.Update); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}

	wantIcu := &interfaces.TIcu{
		Type:                  interfaces.IcuTypePlural,
		AnchorIdx:             24,
		CurrentCaseLViewIndex: 25,
		Cases:                 []string{"0", "1", "other"},
		Create: []interfaces.IcuCreateOpCodes{
			textCase(26, -1, "no items"),
			textCase(27, -1, "one item"),
			textCase(28, -1, ""),
		},
		Remove: []interfaces.I18nRemoveOpCodes{removeNodes(26), removeNodes(27), removeNodes(28)},
		Update: []interfaces.I18nUpdateOpCodes{
			nil,
			nil,
			{{
				Mask:  1,
				Parts: []interfaces.UpdatePart{interfaces.BindingPart(0), interfaces.LiteralPart(" items")},
				Kind:  interfaces.UpdateText,
				Index: 28,
			}},
		},
	}
	if diff := cmp.Diff(wantIcu, tView.TIcu(24)); diff != "" {
		t.Errorf("TIcu mismatch (-want +got):\n%s", diff)
	}

	if tNode := tView.TNode(24); tNode == nil || tNode.Type != interfaces.TNodeTypeIcu {
		t.Errorf("TNode(24) = %+v, want an ICU anchor", tNode)
	}
}

func TestIcuNested(t *testing.T) {
	tView, tI18n := compile(t, "{"+m+"0"+m+", select, yes {nested: {"+m+"1"+m+", select, a {A} other {B}}} other {plain}}")

	outer := tView.TIcu(24)
	if outer == nil {
		t.Fatal("no ICU registered at the anchor")
	}
	if diff := cmp.Diff([]string{"yes", "other"}, outer.Cases); diff != "" {
		t.Errorf("cases mismatch (-want +got):\n%s", diff)
	}

	wantYes := interfaces.IcuCreateOpCodes{
		{Kind: interfaces.IcuCreateText, Index: 26, Value: "nested: "},
		{Kind: interfaces.IcuAppendChild, Index: 26, Parent: -1},
		{Kind: interfaces.IcuCreateAnchor, Index: 27, Value: devLabel("nested ICU 0")},
		{Kind: interfaces.IcuAppendChild, Index: 27, Parent: -1},
	}
	if diff := cmp.Diff(wantYes, outer.Create[0]); diff != "" {
		t.Errorf("yes case mismatch (-want +got):\n%s", diff)
	}
	wantRemove := interfaces.I18nRemoveOpCodes{
		{Kind: interfaces.RemoveNode, Index: 26},
		{Kind: interfaces.RemoveNestedIcu, Index: 27},
	}
	if diff := cmp.Diff(wantRemove, outer.Remove[0]); diff != "" {
		t.Errorf("yes remove mismatch (-want +got):\n%s", diff)
	}

	nested := tView.TIcu(27)
	if nested == nil {
		t.Fatal("no nested ICU registered at the nested anchor")
	}
	if nested.AnchorIdx != 27 || nested.CurrentCaseLViewIndex != 28 {
		t.Errorf("nested = anchor %d case slot %d, want 27 and 28", nested.AnchorIdx, nested.CurrentCaseLViewIndex)
	}
	if diff := cmp.Diff([]interfaces.IcuCreateOpCodes{textCase(29, -1, "A"), textCase(30, -1, "B")}, nested.Create); diff != "" {
		t.Errorf("nested create mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(interfaces.IcuCreateOpCodes(textCase(31, -1, "plain")), outer.Create[1]); diff != "" {
		t.Errorf("other case mismatch (-want +got):\n%s", diff)
	}

	// Both switches share the block stream; no case has bound content.
	wantUpdate := interfaces.I18nUpdateOpCodes{
		{Mask: 1, Parts: []interfaces.UpdatePart{interfaces.BindingPart(0)}, Kind: interfaces.UpdateIcuSwitch, Index: 24},
		{Mask: 2, Parts: []interfaces.UpdatePart{interfaces.BindingPart(1)}, Kind: interfaces.UpdateIcuSwitch, Index: 27},
	}
	if diff := cmp.Diff(wantUpdate, tI18n.Update); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}
}

func TestIcuRemovesDirectChildrenOnly(t *testing.T) {
	tView, _ := compile(t, "{"+m+"0"+m+", select, other {<b>x <i>y</i></b> z}}")

	icu := tView.TIcu(24)
	want := interfaces.IcuCreateOpCodes{
		{Kind: interfaces.IcuCreateElement, Index: 26, Value: "b"},
		{Kind: interfaces.IcuAppendChild, Index: 26, Parent: -1},
		{Kind: interfaces.IcuCreateText, Index: 27, Value: "x "},
		{Kind: interfaces.IcuAppendChild, Index: 27, Parent: 26},
		{Kind: interfaces.IcuCreateElement, Index: 28, Value: "i"},
		{Kind: interfaces.IcuAppendChild, Index: 28, Parent: 26},
		{Kind: interfaces.IcuCreateText, Index: 29, Value: "y"},
		{Kind: interfaces.IcuAppendChild, Index: 29, Parent: 28},
		{Kind: interfaces.IcuCreateText, Index: 30, Value: " z"},
		{Kind: interfaces.IcuAppendChild, Index: 30, Parent: -1},
	}
	if diff := cmp.Diff(want, icu.Create[0]); diff != "" {
		t.Errorf("create mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(removeNodes(26, 30), icu.Remove[0]); diff != "" {
		t.Errorf("remove mismatch (-want +got):\n%s", diff)
	}
}

func TestIcuAttributes(t *testing.T) {
	tView, tI18n := compile(t, "{"+m+"0"+m+`, select, other {<a href="`+m+"1"+m+`" title="t">link</a>}}`)

	icu := tView.TIcu(24)
	want := interfaces.IcuCreateOpCodes{
		{Kind: interfaces.IcuCreateElement, Index: 26, Value: "a"},
		{Kind: interfaces.IcuAppendChild, Index: 26, Parent: -1},
		{Kind: interfaces.IcuSetAttribute, Index: 26, Name: "title", Value: "t"},
		{Kind: interfaces.IcuCreateText, Index: 27, Value: "link"},
		{Kind: interfaces.IcuAppendChild, Index: 27, Parent: 26},
	}
	if diff := cmp.Diff(want, icu.Create[0]); diff != "" {
		t.Errorf("create mismatch (-want +got):\n%s", diff)
	}

	if len(icu.Update[0]) != 1 {
		t.Fatalf("got %d case updates, want 1", len(icu.Update[0]))
	}
	op := icu.Update[0][0]
	if op.Kind != interfaces.UpdateAttr || op.AttrName != "href" || op.Index != 26 || op.Mask != 2 {
		t.Errorf("update = %+v, want href of 26 on binding 1", op)
	}
	if op.SanitizerName != "ɵɵsanitizeUrl" || op.Sanitizer == nil {
		t.Errorf("href update is not sanitized: %q", op.SanitizerName)
	}
	if got := op.Sanitizer("javascript:alert(1)"); got != "unsafe:javascript:alert(1)" {
		t.Errorf("Sanitizer() = %q", got)
	}

	// The attribute binding makes the case dynamic.
	last := tI18n.Update[len(tI18n.Update)-1]
	if last.Kind != interfaces.UpdateIcuUpdate || last.Mask != 2 {
		t.Errorf("last update = %+v, want an ICU update on mask 0b10", last)
	}
}

func TestIcuDropsUnsafeMarkup(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tView, tI18n := compile(t,
		"{"+m+"0"+m+`, select, other {<script>alert(1)</script><div onclick="`+m+"1"+m+`">ok</div>}}`,
		config.WithLogger(logger))

	icu := tView.TIcu(24)
	want := interfaces.IcuCreateOpCodes{
		{Kind: interfaces.IcuCreateElement, Index: 27, Value: "div"},
		{Kind: interfaces.IcuAppendChild, Index: 27, Parent: -1},
		{Kind: interfaces.IcuCreateText, Index: 28, Value: "ok"},
		{Kind: interfaces.IcuAppendChild, Index: 28, Parent: 27},
	}
	if diff := cmp.Diff(want, icu.Create[0]); diff != "" {
		t.Errorf("create mismatch (-want +got):\n%s", diff)
	}
	if len(icu.Update[0]) != 0 {
		t.Errorf("unsafe attribute binding was kept: %v", icu.Update[0])
	}
	if len(tI18n.Update) != 1 {
		t.Errorf("got %d block updates, want only the switch", len(tI18n.Update))
	}

	if !util.DevMode {
		return
	}
	var warnings []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, fmt.Sprint(e.Message, " ", e.Data["element"], " ", e.Data["attribute"]))
		}
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %q, want 2", warnings)
	}
	if !strings.Contains(warnings[0], "script") || !strings.Contains(warnings[1], "onclick") {
		t.Errorf("warnings = %q", warnings)
	}
}

func TestIcuDebugString(t *testing.T) {
	tView, tI18n := compile(t, "{"+m+"0"+m+", select, other {"+m+"0"+m+"!}}")

	wantUpdate := "if (mask & 0b1) { icuSwitchCase(24, `${lView[i-1]}`) }\n" +
		"if (mask & 0b1) { icuUpdateCase(24) }"
	if got := tI18n.Update.String(); got != wantUpdate {
		t.Errorf("update String() =\n%s\nwant\n%s", got, wantUpdate)
	}

	icu := tView.TIcu(24)
	wantCreate := "lView[26] = document.createTextNode(\"\")\n(lView[-1] as Element).appendChild(lView[26])"
	if got := icu.Create[0].String(); got != wantCreate {
		t.Errorf("create String() =\n%s\nwant\n%s", got, wantCreate)
	}
	if got := icu.Remove[0].String(); got != "remove(lView[26])" {
		t.Errorf("remove String() = %q", got)
	}
}
