package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>content</section>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Calendar <week>", sidebar, content, true).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Calendar &lt;week&gt;</title>") {
		t.Fatalf("expected escaped document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "sidebar") || !strings.Contains(out, "content") {
		t.Fatalf("expected sidebar and content sections in output: %s", out)
	}
}

func TestLayoutOmitsSidebarWhenHidden(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Sign in", sidebar, nil, false).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "sidebar</aside>") {
		t.Fatalf("expected sidebar to be omitted: %s", buf.String())
	}
}

func TestBodyWrapperClassReflectsSidebarState(t *testing.T) {
	if bodyWrapperClass(true) == bodyWrapperClass(false) {
		t.Fatal("expected different body wrapper class depending on sidebar state")
	}
	if mainClass(true) == mainClass(false) {
		t.Fatal("expected different main class depending on sidebar state")
	}
}
