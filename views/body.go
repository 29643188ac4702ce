package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/glassblog/content"
)

// Classes applied to each fragment kind.
const (
	classH1         = "text-4xl font-bold mt-8 mb-8 text-white text-shadow"
	classH2         = "text-3xl font-bold mt-12 mb-6 text-white text-shadow"
	classH3         = "text-2xl font-bold mt-10 mb-6 text-white text-shadow"
	classBlockquote = "border-l-4 border-white/30 pl-6 my-6 italic text-white/90 bg-white/5 p-4 rounded-r-lg backdrop-blur-sm"
	classListItem   = "ml-6 mb-3 text-white/90 pl-2"
	classPre        = "bg-black/40 p-6 rounded-xl overflow-x-auto my-6 border border-white/10 backdrop-blur-sm"
	classPreCode    = "text-green-300"
	classInlineCode = "bg-black/30 px-3 py-1 rounded-lg text-green-300 border border-white/10"
	classParagraph  = "mb-6 text-white/90 leading-relaxed text-lg"
)

// Markdown renders a raw post body.
func Markdown(text string) templ.Component {
	return Body(content.Render(text))
}
