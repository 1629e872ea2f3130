package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"nutriplan/internal/views/layout"
)

// Login renders the full sign-in document.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in · Nutriplan", nil, LoginPartial(message, email), false)
}

// LoginPartial renders only the sign-in form for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="auth-panel" class="auth"><h1>Sign in</h1>`)
		writeMessage(&b, message)
		fmt.Fprintf(&b, `<form method="post" action="/login" hx-post="/login" hx-target="#auth-panel" hx-swap="outerHTML">`+
			`<label>Email <input type="email" name="email" value="%s" required autocomplete="email"></label>`+
			`<label>Password <input type="password" name="password" required autocomplete="current-password"></label>`+
			`<button type="submit">Sign in</button></form>`+
			`<p>New here? <a href="/signup">Create an account</a></p></section>`,
			templ.EscapeString(email),
		)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Signup renders the full registration document.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Create account · Nutriplan", nil, SignupPartial(message, name, email), false)
}

func SignupPartial(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="auth-panel" class="auth"><h1>Create your account</h1>`)
		writeMessage(&b, message)
		fmt.Fprintf(&b, `<form method="post" action="/signup" hx-post="/signup" hx-target="#auth-panel" hx-swap="outerHTML">`+
			`<label>Name <input type="text" name="name" value="%s" autocomplete="name"></label>`+
			`<label>Email <input type="email" name="email" value="%s" required autocomplete="email"></label>`+
			`<label>Password <input type="password" name="password" minlength="8" required autocomplete="new-password"></label>`+
			`<label>Confirm password <input type="password" name="confirm_password" minlength="8" required autocomplete="new-password"></label>`+
			`<button type="submit">Create account</button></form>`+
			`<p>Already registered? <a href="/login">Sign in</a></p></section>`,
			templ.EscapeString(name),
			templ.EscapeString(email),
		)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeMessage(b *strings.Builder, message string) {
	if message == "" {
		return
	}
	fmt.Fprintf(b, `<p class="auth__message" role="alert">%s</p>`, templ.EscapeString(message))
}
