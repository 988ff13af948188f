package interfaces

// IcuType distinguishes select from plural expressions. The values are part of
// the runtime ABI.
type IcuType int

const (
	IcuTypeSelect IcuType = 0
	IcuTypePlural IcuType = 1
)

func (t IcuType) String() string {
	if t == IcuTypeSelect {
		return "select"
	}
	return "plural"
}

// Segment is one entry of a parsed segment list. Exactly one of Text or Icu is
// meaningful: in a list returned by the parser, even positions are text and
// odd positions are ICU expressions.
type Segment struct {
	Text string
	Icu  *IcuExpression
}

// IsIcu reports whether the segment holds an ICU expression.
func (s Segment) IsIcu() bool {
	return s.Icu != nil
}

// IcuExpression is the parsed form of one `{binding, plural|select, ...}` block.
// Cases and Values are aligned by index.
type IcuExpression struct {
	Type        IcuType
	MainBinding int
	Cases       []string
	Values      [][]Segment
}

// Flat encoding of top-level create opcodes: `index << 2 | flags`, followed by the text.
const (
	I18nCreateOpCodeShift         = 2
	I18nCreateOpCodeAppendEagerly = 0b01
	I18nCreateOpCodeComment       = 0b10
)

// I18nCreateOp creates a text node or an ICU anchor comment at the top level
// of a message.
type I18nCreateOp struct {
	Index   int
	Text    string
	Comment bool

	// AppendEagerly is set when the node has no enclosing placeholder and can
	// be appended to the i18n host as soon as it is created.
	AppendEagerly bool
}

// I18nCreateOpCodes is the CREATE stream of a message scope.
type I18nCreateOpCodes []I18nCreateOp

// Encode returns the flat runtime representation of the stream.
func (c I18nCreateOpCodes) Encode() []any {
	out := make([]any, 0, 2*len(c))
	for _, op := range c {
		code := op.Index << I18nCreateOpCodeShift
		if op.AppendEagerly {
			code |= I18nCreateOpCodeAppendEagerly
		}
		if op.Comment {
			code |= I18nCreateOpCodeComment
		}
		out = append(out, code, op.Text)
	}
	return out
}

// Flat encoding of ICU case create opcodes.
const (
	IcuCreateOpCodeShiftRef        = 1
	IcuCreateOpCodeShiftParent     = 17
	IcuCreateOpCodeMaskInstruction = 0b1
	IcuCreateOpCodeMaskRef         = ((1 << 16) - 1) << IcuCreateOpCodeShiftRef
	IcuCreateOpCodeAppendChild     = 0b0
	IcuCreateOpCodeAttr            = 0b1
)

// I18nMarker tags an element or ICU anchor creation in the flat ICU create stream.
type I18nMarker struct {
	Marker string
}

var (
	ElementMarker = &I18nMarker{Marker: "element"}
	IcuMarker     = &I18nMarker{Marker: "ICU"}
)

// IcuCreateOpCode packs an append/attribute instruction with its ref and parent.
func IcuCreateOpCode(opCode, parentIdx, refIdx int) int {
	return opCode | refIdx<<IcuCreateOpCodeShiftRef | parentIdx<<IcuCreateOpCodeShiftParent
}

// IcuCreateOpKind is the closed set of instructions an ICU case can emit.
type IcuCreateOpKind uint8

const (
	IcuCreateText IcuCreateOpKind = iota
	IcuCreateElement
	IcuCreateAnchor
	IcuSetAttribute
	IcuAppendChild
)

func (k IcuCreateOpKind) String() string {
	switch k {
	case IcuCreateText:
		return "CreateText"
	case IcuCreateElement:
		return "CreateElement"
	case IcuCreateAnchor:
		return "CreateIcuAnchor"
	case IcuSetAttribute:
		return "SetAttribute"
	case IcuAppendChild:
		return "AppendChild"
	}
	return "Unknown"
}

// IcuCreateOp is one instruction of an ICU case CREATE stream.
type IcuCreateOp struct {
	Kind IcuCreateOpKind

	// Index is the created node, the attribute owner or the appended child.
	Index int

	// Parent is the node an IcuAppendChild attaches to.
	Parent int

	// Name is the attribute name of an IcuSetAttribute.
	Name string

	// Value is the text content, tag name, anchor label or attribute value.
	Value string
}

// IcuCreateOpCodes is the CREATE stream of one ICU case.
type IcuCreateOpCodes []IcuCreateOp

// Encode returns the flat runtime representation of the stream.
func (c IcuCreateOpCodes) Encode() []any {
	out := make([]any, 0, 3*len(c))
	for _, op := range c {
		switch op.Kind {
		case IcuCreateText:
			out = append(out, op.Value, op.Index)
		case IcuCreateElement:
			out = append(out, ElementMarker, op.Value, op.Index)
		case IcuCreateAnchor:
			out = append(out, IcuMarker, op.Value, op.Index)
		case IcuAppendChild:
			out = append(out, IcuCreateOpCode(IcuCreateOpCodeAppendChild, op.Parent, op.Index))
		case IcuSetAttribute:
			out = append(out, op.Index<<IcuCreateOpCodeShiftRef|IcuCreateOpCodeAttr, op.Name, op.Value)
		}
	}
	return out
}

// Flat encoding of update destinations: `index << 2 | kind`.
const (
	I18nUpdateOpCodeShiftRef   = 2
	I18nUpdateOpCodeMaskOpcode = 0b11
)

// UpdateOpKind says what an update group writes to. The values are part of the ABI.
type UpdateOpKind uint8

const (
	UpdateText      UpdateOpKind = 0b00
	UpdateAttr      UpdateOpKind = 0b01
	UpdateIcuSwitch UpdateOpKind = 0b10
	UpdateIcuUpdate UpdateOpKind = 0b11
)

func (k UpdateOpKind) String() string {
	switch k {
	case UpdateText:
		return "Text"
	case UpdateAttr:
		return "Attr"
	case UpdateIcuSwitch:
		return "IcuSwitch"
	case UpdateIcuUpdate:
		return "IcuUpdate"
	}
	return "Unknown"
}

// SanitizerFn sanitizes a bound attribute value before it is written.
type SanitizerFn func(value string) string

// UpdatePart is a literal string or a reference to a binding slot.
type UpdatePart struct {
	Literal   string
	Binding   int
	IsBinding bool
}

// LiteralPart returns a part pushing s.
func LiteralPart(s string) UpdatePart {
	return UpdatePart{Literal: s}
}

// BindingPart returns a part pushing the value of binding index.
func BindingPart(index int) UpdatePart {
	return UpdatePart{Binding: index, IsBinding: true}
}

// Encode returns the literal, or `-(1 + binding)` for a binding reference.
func (p UpdatePart) Encode() any {
	if p.IsBinding {
		return -1 - p.Binding
	}
	return p.Literal
}

// UpdateOp is one instruction group of an UPDATE stream: the parts are
// concatenated and the result is committed to the destination when any bit of
// Mask is dirty.
type UpdateOp struct {
	Mask  uint32
	Parts []UpdatePart
	Kind  UpdateOpKind
	Index int

	// AttrName, Sanitizer and SanitizerName are only used by UpdateAttr.
	AttrName      string
	Sanitizer     SanitizerFn
	SanitizerName string
}

// Ref returns the packed destination reference.
func (op UpdateOp) Ref() int {
	return op.Index<<I18nUpdateOpCodeShiftRef | int(op.Kind)
}

// Size is the number of flat slots following the `[mask, size]` header.
func (op UpdateOp) Size() int {
	n := len(op.Parts) + 1
	if op.Kind == UpdateAttr {
		n += 2
	}
	return n
}

// I18nUpdateOpCodes is an UPDATE stream.
type I18nUpdateOpCodes []UpdateOp

// Encode returns the flat runtime representation of the stream. The mask is
// emitted as a signed 32-bit value, which is how the runtime reads it.
func (c I18nUpdateOpCodes) Encode() []any {
	out := make([]any, 0, 4*len(c))
	for _, op := range c {
		out = append(out, int(int32(op.Mask)), op.Size())
		for _, part := range op.Parts {
			out = append(out, part.Encode())
		}
		out = append(out, op.Ref())
		if op.Kind == UpdateAttr {
			if op.Sanitizer == nil {
				out = append(out, op.AttrName, nil)
			} else {
				out = append(out, op.AttrName, op.Sanitizer)
			}
		}
	}
	return out
}

// CountBindings returns the number of binding references in the stream.
func (c I18nUpdateOpCodes) CountBindings() int {
	count := 0
	for _, op := range c {
		for _, part := range op.Parts {
			if part.IsBinding {
				count++
			}
		}
	}
	return count
}

// RemoveOpKind is the closed set of removal instructions.
type RemoveOpKind uint8

const (
	RemoveNode RemoveOpKind = iota
	RemoveNestedIcu
)

// RemoveOp removes one depth-0 node of an ICU case. RemoveNestedIcu removes the
// nested ICU's active case and then its anchor.
type RemoveOp struct {
	Kind  RemoveOpKind
	Index int
}

// I18nRemoveOpCodes is the REMOVE stream of one ICU case.
type I18nRemoveOpCodes []RemoveOp

// Encode returns the flat runtime representation: a nested ICU is `~index`
// followed by the anchor index.
func (c I18nRemoveOpCodes) Encode() []any {
	out := make([]any, 0, len(c))
	for _, op := range c {
		if op.Kind == RemoveNestedIcu {
			out = append(out, ^op.Index)
		}
		out = append(out, op.Index)
	}
	return out
}

// TIcu is the compiled form of one ICU expression, registered on its anchor slot.
// The selected case lives in the instance slot CurrentCaseLViewIndex, never here.
type TIcu struct {
	Type                  IcuType
	AnchorIdx             int
	CurrentCaseLViewIndex int
	Cases                 []string
	Create                []IcuCreateOpCodes
	Remove                []I18nRemoveOpCodes
	Update                []I18nUpdateOpCodes
}

// TI18n is the compiled form of a message for one scope.
type TI18n struct {
	Create I18nCreateOpCodes
	Update I18nUpdateOpCodes
}
