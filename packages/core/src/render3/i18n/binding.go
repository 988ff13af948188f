package i18n

import (
	"math"
	"strconv"

	"ngc-i18n/packages/core/src/render3/interfaces"
)

// HasBinding reports whether str contains an interpolation marker.
func HasBinding(str string) bool {
	return bindingRegexp.MatchString(str)
}

// EncodeBindingUpdate builds the update group that recomputes str from its
// bindings and commits the result to destinationNode, either as text content
// or, when attrName is set, as that attribute. Binding ordinals in str are
// relative to bindingStart. The returned mask has one bit per binding.
func EncodeBindingUpdate(
	str string,
	destinationNode int,
	attrName string,
	bindingStart int,
	sanitizeFn interfaces.SanitizerFn,
	sanitizerName string,
) (interfaces.UpdateOp, uint32) {
	op := interfaces.UpdateOp{Kind: interfaces.UpdateText, Index: destinationNode}
	if attrName != "" {
		op.Kind = interfaces.UpdateAttr
		op.AttrName = attrName
		op.Sanitizer = sanitizeFn
		op.SanitizerName = sanitizerName
	}

	textParts := splitCaptures(bindingRegexp, str)
	var mask uint32
	for j, textValue := range textParts {
		if j&1 == 1 {
			// Odd indexes are bindings. The pattern guarantees digits; an
			// ordinal too large for int saturates into the shared mask bit.
			bindingIndex := math.MaxInt32
			if n, err := strconv.Atoi(textValue); err == nil {
				bindingIndex = bindingStart + n
			}
			op.Parts = append(op.Parts, interfaces.BindingPart(bindingIndex))
			mask |= ToMaskBit(bindingIndex)
		} else if textValue != "" {
			op.Parts = append(op.Parts, interfaces.LiteralPart(textValue))
		}
	}
	op.Mask = mask
	return op, mask
}

// GenerateBindingUpdateOpCodes appends the update group for str to updateOpCodes
// and returns its mask.
func GenerateBindingUpdateOpCodes(
	updateOpCodes *interfaces.I18nUpdateOpCodes,
	str string,
	destinationNode int,
	attrName string,
	bindingStart int,
	sanitizeFn interfaces.SanitizerFn,
	sanitizerName string,
) uint32 {
	op, mask := EncodeBindingUpdate(str, destinationNode, attrName, bindingStart, sanitizeFn, sanitizerName)
	*updateOpCodes = append(*updateOpCodes, op)
	return mask
}

// ToMaskBit converts a binding index to its mask bit.
//
// Each index represents a single bit on the bit-mask. Because bit-mask only has 32 bits, we make
// the 32nd bit share all masks for all bindings higher than 32. Since it is extremely rare to
// have more than 32 bindings this will be hit very rarely. The downside of hitting this corner
// case is that we will execute binding code more often than necessary.
func ToMaskBit(bindingIndex int) uint32 {
	if bindingIndex > 31 {
		bindingIndex = 31
	}
	return 1 << uint(bindingIndex)
}
