package sanitization

import (
	"strings"
	"sync"
)

// SecurityContext says which sanitizer a bound value needs.
type SecurityContext int

const (
	SecurityContextNONE SecurityContext = iota
	SecurityContextHTML
	SecurityContextSTYLE
	SecurityContextSCRIPT
	SecurityContextURL
	SecurityContextRESOURCE_URL
	SecurityContextSrcset
)

var (
	securitySchema     map[string]SecurityContext
	securitySchemaOnce sync.Once
)

// SecuritySchema returns the attribute security schema used for translated
// markup. Keys are lower-cased attribute names.
func SecuritySchema() map[string]SecurityContext {
	securitySchemaOnce.Do(func() {
		securitySchema = make(map[string]SecurityContext)
		registerContext(SecurityContextURL, UriAttrs)
		registerContext(SecurityContextSrcset, SrcsetAttrs)
	})
	return securitySchema
}

func registerContext(ctx SecurityContext, attrs TagSet) {
	for name := range attrs {
		securitySchema[strings.ToLower(name)] = ctx
	}
}

// SecurityContextForAttr returns the security context of a bound attribute.
func SecurityContextForAttr(attrName string) SecurityContext {
	return SecuritySchema()[strings.ToLower(attrName)]
}
