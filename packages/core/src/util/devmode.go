//go:build !ngprod

package util

// DevMode enables diagnostics and debug labels. Build with the ngprod tag to
// compile them out.
const DevMode = true
