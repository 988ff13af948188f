package sanitization

import (
	"strings"
)

// TagSet is a case-insensitive set of element or attribute names.
// All keys are stored lower-cased.
type TagSet map[string]bool

// Has reports whether name is in the set.
func (s TagSet) Has(name string) bool {
	return s[strings.ToLower(name)]
}

func tagSet(names string) TagSet {
	set := make(TagSet)
	for _, name := range strings.Split(names, ",") {
		set[strings.ToLower(name)] = true
	}
	return set
}

func merge(sets ...TagSet) TagSet {
	out := make(TagSet)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

// Good source of info about elements and attributes
// https://html.spec.whatwg.org/#semantics
// https://simon.html5.org/html-elements

// Safe Void Elements - HTML5
// https://html.spec.whatwg.org/#void-elements
var VoidElements = tagSet("area,br,col,hr,img,wbr")

// Elements that you can, intentionally, leave open (and which close themselves)
// https://html.spec.whatwg.org/#optional-tags
var (
	OptionalEndTagBlockElements  = tagSet("colgroup,dd,dt,li,p,tbody,td,tfoot,th,thead,tr")
	OptionalEndTagInlineElements = tagSet("rp,rt")
	OptionalEndTagElements       = merge(OptionalEndTagInlineElements, OptionalEndTagBlockElements)
)

// Safe Block Elements - HTML5
var BlockElements = merge(OptionalEndTagBlockElements, tagSet(
	"address,article,"+
		"aside,blockquote,caption,center,del,details,dialog,dir,div,dl,figure,figcaption,footer,h1,h2,h3,h4,h5,"+
		"h6,header,hgroup,hr,ins,main,map,menu,nav,ol,pre,section,summary,table,ul"))

// Inline Elements - HTML5
var InlineElements = merge(OptionalEndTagInlineElements, tagSet(
	"a,abbr,acronym,audio,b,"+
		"bdi,bdo,big,br,cite,code,del,dfn,em,font,i,img,ins,kbd,label,map,mark,picture,q,ruby,rp,rt,s,"+
		"samp,small,source,span,strike,strong,sub,sup,time,track,tt,u,var,video"))

// ValidElements is the set of elements a translation may construct.
var ValidElements = merge(VoidElements, BlockElements, InlineElements, OptionalEndTagElements)

// Attributes that have href and hence need to be sanitized
var UriAttrs = tagSet("background,cite,href,itemtype,longdesc,poster,src,xlink:href")

// Attributes that have special href set hence need to be sanitized
var SrcsetAttrs = tagSet("srcset")

var HTMLAttrs = tagSet(
	"abbr,accesskey,align,alt,autoplay,axis,bgcolor,border,cellpadding,cellspacing,class,clear,color,cols,colspan," +
		"compact,controls,coords,datetime,default,dir,download,face,headers,height,hidden,hreflang,hspace," +
		"ismap,itemscope,itemprop,kind,label,lang,language,loop,media,muted,nohref,nowrap,open,preload,rel,rev,role,rows,rowspan,rules," +
		"scope,scrolling,shape,size,sizes,span,srclang,start,summary,tabindex,target,title,translate,type,usemap," +
		"valign,value,vspace,width")

// Accessibility attributes as per WAI-ARIA 1.1 (W3C Working Draft 14 December 2018)
var AriaAttrs = tagSet(
	"aria-activedescendant,aria-atomic,aria-autocomplete,aria-busy,aria-checked,aria-colcount,aria-colindex," +
		"aria-colspan,aria-controls,aria-current,aria-describedby,aria-details,aria-disabled,aria-dropeffect," +
		"aria-errormessage,aria-expanded,aria-flowto,aria-grabbed,aria-haspopup,aria-hidden,aria-invalid," +
		"aria-keyshortcuts,aria-label,aria-labelledby,aria-level,aria-live,aria-modal,aria-multiline," +
		"aria-multiselectable,aria-orientation,aria-owns,aria-placeholder,aria-posinset,aria-pressed,aria-readonly," +
		"aria-relevant,aria-required,aria-roledescription,aria-rowcount,aria-rowindex,aria-rowspan,aria-selected," +
		"aria-setsize,aria-sort,aria-valuemax,aria-valuemin,aria-valuenow,aria-valuetext")

// ValidAttrs is the set of attributes a translation may bind.
//
// NB: This currently consciously doesn't support SVG. SVG sanitization has had several security
// issues in the past, so it seems safer to leave it out if possible. If support for binding SVG via
// innerHTML is required, SVG attributes should be added here.
var ValidAttrs = merge(UriAttrs, SrcsetAttrs, HTMLAttrs, AriaAttrs)
