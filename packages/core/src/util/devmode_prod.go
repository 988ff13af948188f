//go:build ngprod

package util

const DevMode = false
