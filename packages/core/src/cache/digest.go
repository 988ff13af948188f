package cache

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Fingerprint computes the 64 bit fingerprint of str, based on:
// https://github.com/google/closure-compiler/blob/master/src/com/google/javascript/jscomp/GoogleJsMessageIdGenerator.java
func Fingerprint(str string) uint64 {
	data := []byte(str)

	hi := hash32(data, 0)
	lo := hash32(data, 102072)

	if hi == 0 && (lo == 0 || lo == 1) {
		hi ^= 0x130f9bef
		lo ^= 0x6b5f56d8
	}
	return uint64(hi)<<32 | uint64(lo)
}

// ComputeMsgID computes the decimal id of msg, the way $localize identifies
// messages. A non-empty meaning is folded into the id.
func ComputeMsgID(msg, meaning string) string {
	msgFingerprint := Fingerprint(msg)
	if meaning != "" {
		// Rotate the 64-bit message fingerprint one bit to the left and then add the meaning fingerprint
		msgFingerprint = msgFingerprint<<1 | msgFingerprint>>63&1
		msgFingerprint += Fingerprint(meaning)
	}
	// 63 bits, so the id never reads as negative
	return strconv.FormatUint(msgFingerprint&0x7fffffffffffffff, 10)
}

// Key identifies one compiled scope: the same message compiled for another
// sub-template, view shape or parent element is a different artifact.
func Key(message string, subTemplateIndex, decls, parentIndex int) string {
	return ComputeMsgID(message, fmt.Sprintf("scope:%d;decls:%d;parent:%d", subTemplateIndex, decls, parentIndex))
}

func hash32(data []byte, c uint32) uint32 {
	a, b := uint32(0x9e3779b9), uint32(0x9e3779b9)
	length := len(data)
	index := 0

	for ; index+12 <= length; index += 12 {
		a += binary.LittleEndian.Uint32(data[index:])
		b += binary.LittleEndian.Uint32(data[index+4:])
		c += binary.LittleEndian.Uint32(data[index+8:])
		a, b, c = mix(a, b, c)
	}

	// the first byte of c is reserved for the length
	c += uint32(length)

	// Remaining bytes fill a, then b, then the upper bytes of c.
	for i, shift := 0, 0; index < length; i, index = i+1, index+1 {
		v := uint32(data[index])
		switch {
		case i < 4:
			a += v << (8 * shift)
		case i < 8:
			b += v << (8 * shift)
		default:
			c += v << (8 * (shift + 1))
		}
		shift = (shift + 1) % 4
	}

	_, _, c = mix(a, b, c)
	return c
}

func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15
	return a, b, c
}
