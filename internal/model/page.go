package model

import "html/template"

// PageData is passed to layout.html.
type PageData struct {
	Title string
	Root  template.HTML
}
