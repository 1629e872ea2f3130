package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps content in the application document. The sidebar is only
// rendered for authenticated pages.
func Layout(title string, sidebar, content templ.Component, showSidebar bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`+templ.EscapeString(title)+`</title><script src="https://unpkg.com/htmx.org@1.9.12"></script></head>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body><div class="`+bodyWrapperClass(showSidebar)+`">`); err != nil {
			return err
		}
		if showSidebar && sidebar != nil {
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main class="`+mainClass(showSidebar)+`">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}

func bodyWrapperClass(showSidebar bool) string {
	if showSidebar {
		return "shell shell--with-sidebar"
	}
	return "shell"
}

func mainClass(showSidebar bool) string {
	if showSidebar {
		return "content content--inset"
	}
	return "content content--centered"
}
