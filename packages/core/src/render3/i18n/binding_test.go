package i18n_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
)

const m = i18n.Marker

func TestEncodeBindingUpdate(t *testing.T) {
	op, mask := i18n.EncodeBindingUpdate("Hello "+m+"0"+m+" and "+m+"1:2"+m+"!", 30, "", 0, nil, "")

	want := interfaces.UpdateOp{
		Mask: 0b11,
		Parts: []interfaces.UpdatePart{
			interfaces.LiteralPart("Hello "),
			interfaces.BindingPart(0),
			interfaces.LiteralPart(" and "),
			interfaces.BindingPart(1),
			interfaces.LiteralPart("!"),
		},
		Kind:  interfaces.UpdateText,
		Index: 30,
	}
	if diff := cmp.Diff(want, op); diff != "" {
		t.Errorf("EncodeBindingUpdate() mismatch (-want +got):\n%s", diff)
	}
	if mask != 0b11 {
		t.Errorf("mask = %b, want 11", mask)
	}

	flat := interfaces.I18nUpdateOpCodes{op}.Encode()
	wantFlat := []any{3, 6, "Hello ", -1, " and ", -2, "!", 30 << 2}
	if diff := cmp.Diff(wantFlat, flat); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeBindingUpdateAttribute(t *testing.T) {
	sanitize := func(s string) string { return "safe:" + s }
	op, mask := i18n.EncodeBindingUpdate(m+"0"+m, 40, "href", 2, sanitize, "ɵɵsanitizeUrl")

	if mask != 1<<2 {
		t.Errorf("mask = %b, want %b", mask, 1<<2)
	}
	if op.Kind != interfaces.UpdateAttr || op.AttrName != "href" || op.SanitizerName != "ɵɵsanitizeUrl" {
		t.Errorf("op = %+v, want an href attribute update", op)
	}
	if op.Sanitizer == nil || op.Sanitizer("x") != "safe:x" {
		t.Errorf("sanitizer was not kept")
	}
	if diff := cmp.Diff([]interfaces.UpdatePart{interfaces.BindingPart(2)}, op.Parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
	if got := op.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
	if got, want := op.Ref(), 40<<2|1; got != want {
		t.Errorf("Ref() = %d, want %d", got, want)
	}
}

func TestEncodeBindingUpdateRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"plain text",
		m + "0" + m,
		"a" + m + "0" + m + "b",
		m + "3" + m + m + "4" + m,
		"x " + m + "12" + m + " y " + m + "0" + m + " z",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			op, _ := i18n.EncodeBindingUpdate(text, 1, "", 0, nil, "")
			var rebuilt strings.Builder
			for _, part := range op.Parts {
				if part.IsBinding {
					rebuilt.WriteString(m + strconv.Itoa(part.Binding) + m)
				} else {
					rebuilt.WriteString(part.Literal)
				}
			}
			if rebuilt.String() != text {
				t.Errorf("rebuilt %q, want %q", rebuilt.String(), text)
			}
		})
	}
}

func TestEncodeBindingUpdateMask(t *testing.T) {
	for i := 0; i <= 31; i++ {
		_, mask := i18n.EncodeBindingUpdate(m+strconv.Itoa(i)+m, 1, "", 0, nil, "")
		if mask != 1<<uint(i) {
			t.Errorf("binding %d: mask = %b, want %b", i, mask, uint32(1)<<uint(i))
		}
	}

	_, at31 := i18n.EncodeBindingUpdate(m+"31"+m, 1, "", 0, nil, "")
	_, at5000 := i18n.EncodeBindingUpdate(m+"5000"+m, 1, "", 0, nil, "")
	if at31 != at5000 || at5000 != 1<<31 {
		t.Errorf("mask(31) = %b, mask(5000) = %b, want both %b", at31, at5000, uint32(1)<<31)
	}
}

func TestEncodeBindingUpdateBindingStart(t *testing.T) {
	op, mask := i18n.EncodeBindingUpdate(m+"0"+m+m+"1"+m, 1, "title", 3, nil, "")
	if mask != 0b11000 {
		t.Errorf("mask = %b, want 11000", mask)
	}
	if diff := cmp.Diff([]interfaces.UpdatePart{interfaces.BindingPart(3), interfaces.BindingPart(4)}, op.Parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestHasBinding(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"text", false},
		{m + "0" + m, true},
		{"a " + m + "1:2" + m, true},
		{m + "#1" + m, false},
	}
	for _, tt := range tests {
		if got := i18n.HasBinding(tt.input); got != tt.want {
			t.Errorf("HasBinding(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
