package views

import (
	"context"

	"github.com/a-h/templ"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s · Poule Board</title>`, title)
		h.rawf(`<script src="%s"></script>`, htmxSrc)
		h.raw(`<style>` + stylesheet + `</style></head><body>`)

		h.raw(`<nav class="top"><a href="/">Poule Board</a>`)
		if user := GetUser(ctx); user != nil {
			h.rawf(`<span class="who">%s</span>`, user.Username)
			h.raw(`<form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>`)
		} else {
			h.raw(`<a href="/login">Log in</a>`)
		}
		h.raw(`</nav><main>`)
		h.render(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

// InlineError replaces the content of a view whose data failed to load.
func InlineError(msg string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.rawf(`<div class="error" role="alert">%s</div>`, msg)
	})
}

// Flash is a short confirmation or failure line above a view.
func Flash(msg string, ok bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if msg == "" {
			return
		}
		class := "flash error"
		if ok {
			class = "flash ok"
		}
		h.rawf(`<div class="%s" role="status">%s</div>`, class, msg)
	})
}

func emptyMessage(h *html, msg string) {
	h.rawf(`<p class="empty">%s</p>`, msg)
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;color:#1d2433}
nav.top{display:flex;gap:1rem;align-items:center;padding:.75rem 1rem;background:#0f4c81}
nav.top a,nav.top .who{color:#fff;text-decoration:none}
main{padding:1rem;max-width:1100px;margin:auto}
table{border-collapse:collapse;width:100%;margin-bottom:1rem}
th,td{padding:.4rem .6rem;border-bottom:1px solid #dde3ea;text-align:left}
.card{border:1px solid #dde3ea;border-radius:6px;padding:.6rem;margin-bottom:.6rem}
.winner{font-weight:700}
.tabs a{margin-right:1rem}
.tabs a.active{font-weight:700}
.error{color:#a12622}
.flash.ok{color:#1f6f3f}
.empty{color:#66707d}
form.inline{display:inline}
input.score{width:3.5rem}
`
