package usecase

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"
)

var verificationEmailTmpl = template.Must(template.New("verify").Parse(`
<h1>Welcome to DevPort, {{.Name}}!</h1>
<p>Please click the link below to verify your email address:</p>
<a href="{{.URL}}">Verify Email</a>
<p>If you didn't request this, please ignore this email.</p>
`))

var resetEmailTmpl = template.Must(template.New("reset").Parse(`
<h1>Password Reset</h1>
<p>You requested a password reset. Click the link below to reset your password:</p>
<a href="{{.URL}}">Reset Password</a>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, please ignore this email.</p>
`))

const (
	verificationSubject = "Verify Your Email"
	resetSubject        = "Password Reset Request"
)

// frontendLink builds ${base}/${path}?token=${token}.
func frontendLink(base, path, token string) string {
	return strings.TrimRight(base, "/") + "/" + path + "?token=" + url.QueryEscape(token)
}

func renderEmail(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
