package sanitization

import (
	"regexp"
	"strings"

	"ngc-i18n/packages/core/src/util"
)

// A pattern that recognizes a commonly useful subset of URLs that are safe.
//
// This regular expression matches a subset of URLs that will not cause script
// execution if used in URL context within a HTML document. Specifically, this
// regular expression matches if (comment from here on and regex copied from
// Soy's EscapingConventions):
// (1) Either an allowed protocol (http, https, mailto or ftp).
// (2) or no protocol.  A protocol must be followed by a colon. The below
//
//	allows that by allowing colons only after one of the characters [/?#].
//	A colon after a hash (#) must be in the fragment.
//	Otherwise, a colon after a (?) must be in a query.
//	Otherwise, a colon after a single solidus (/) must be in a path.
//	Otherwise, a colon after a double solidus (//) must be in the authority
//	(before port).
//
// The pattern disallows &, used in HTML entity declarations before
// one of the characters in [/?#]. This disallows HTML entities used in the
// protocol name, which should never happen, e.g. "h&#116;tp" for "http".
// It also disallows HTML entities in the first path part of a relative path,
// e.g. "foo&lt;bar/baz".  Our existing escaping functions should not produce
// that. More importantly, it disallows masking of a colon,
// e.g. "javascript&#58;...".
var safeURLPattern = regexp.MustCompile(`(?i)^(?:(?:https?|mailto|ftp|tel|file|sms):|[^&:/?#]*(?:[/?#]|$))`)

// A pattern that matches safe data URLs. Only matches image, video and audio types.
var dataURLPattern = regexp.MustCompile(`(?i)^data:(?:image/(?:bmp|gif|jpeg|jpg|png|tiff|webp)|video/(?:mpeg|mp4|ogg|webm)|audio/(?:mp3|oga|ogg|opus));base64,[a-z0-9+/]+=*$`)

// SanitizeURL returns url unchanged when it is safe, otherwise it prefixes it
// with "unsafe:" so the browser will not follow it.
func SanitizeURL(url string) string {
	if safeURLPattern.MatchString(url) || dataURLPattern.MatchString(url) {
		return url
	}
	if util.DevMode {
		util.Log.WithField("url", url).Warn("sanitizing unsafe URL value (see https://g.co/ng/security#xss)")
	}
	return "unsafe:" + url
}

// SanitizeSrcset sanitizes every candidate URL of a srcset value.
func SanitizeSrcset(srcset string) string {
	candidates := strings.Split(srcset, ",")
	for i, c := range candidates {
		candidates[i] = SanitizeURL(strings.TrimSpace(c))
	}
	return strings.Join(candidates, ", ")
}

// Sanitizer selects the sanitizer applied to a bound attribute.
type Sanitizer interface {
	// ForAttribute returns the sanitizer for the lower-cased attribute name,
	// or nil when the value is written as is.
	ForAttribute(lowerName string) (fn func(string) string, name string)
}

// DefaultSanitizer applies SanitizeURL to URI attributes and SanitizeSrcset to
// srcset attributes.
type DefaultSanitizer struct{}

func (DefaultSanitizer) ForAttribute(lowerName string) (func(string) string, string) {
	switch SecurityContextForAttr(lowerName) {
	case SecurityContextURL:
		return SanitizeURL, "ɵɵsanitizeUrl"
	case SecurityContextSrcset:
		return SanitizeSrcset, "ɵɵsanitizeSrcset"
	}
	return nil, ""
}
