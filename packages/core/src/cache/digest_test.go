package cache_test

import (
	"testing"

	"ngc-i18n/packages/core/src/cache"
)

func TestComputeMsgID(t *testing.T) {
	tests := []struct {
		msg     string
		meaning string
	}{
		{"hello", ""},
		{"hello", "greeting"},
		{"", ""},
		{"a much longer message that spans more than twelve bytes", ""},
	}
	for _, tt := range tests {
		first := cache.ComputeMsgID(tt.msg, tt.meaning)
		if first == "" || first[0] == '-' {
			t.Errorf("ComputeMsgID(%q, %q) = %q, want a positive decimal id", tt.msg, tt.meaning, first)
		}
		if again := cache.ComputeMsgID(tt.msg, tt.meaning); again != first {
			t.Errorf("ComputeMsgID(%q, %q) is not stable: %q then %q", tt.msg, tt.meaning, first, again)
		}
	}

	if cache.ComputeMsgID("hello", "") == cache.ComputeMsgID("hello", "greeting") {
		t.Error("meaning does not change the id")
	}
	if cache.ComputeMsgID("hello", "") == cache.ComputeMsgID("hellp", "") {
		t.Error("different messages share an id")
	}
}

func TestKey(t *testing.T) {
	const msg = "Hello"
	root := cache.Key(msg, -1, 16, -1)
	if root != cache.Key(msg, -1, 16, -1) {
		t.Error("Key is not stable")
	}
	if root == cache.Key(msg, 1, 16, -1) {
		t.Error("sub-template does not change the key")
	}
	if root == cache.Key(msg, -1, 8, -1) {
		t.Error("declaration count does not change the key")
	}
	if root == cache.Key(msg, -1, 16, 23) {
		t.Error("parent index does not change the key")
	}
}
