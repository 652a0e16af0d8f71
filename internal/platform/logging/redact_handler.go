package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Redacted is what a masked value is logged as.
const Redacted = "[REDACTED]"

// PersonalFields are attribute keys whose values are submitted personal data.
// A signup's email and street never reach a log line verbatim, whatever the
// call site.
var PersonalFields = []string{"email", "street"}

// CredentialHeaders are lowercase header names that carry credentials. The
// HTTP middleware masks them when dumping headers, and the handler masks any
// attribute with the same key.
var CredentialHeaders = []string{
	"authorization",
	"proxy-authorization",
	"x-api-key",
	"cookie",
	"set-cookie",
}

var (
	// emailInText finds addresses embedded in free text, such as a
	// validation message.
	emailInText = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	bearerToken = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)
	// Three segments of at least ten characters, so version strings pass.
	rawJWT = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)
)

// newRedactAttr builds the ReplaceAttr hook installed on every handler New
// returns.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithRedactMessage(Redacted),
		masq.WithFieldName("password"),
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(emailInText),
		masq.WithRegex(bearerToken),
		masq.WithRegex(rawJWT),
	}
	for _, f := range PersonalFields {
		opts = append(opts, masq.WithFieldName(f))
	}
	for _, h := range CredentialHeaders {
		opts = append(opts, masq.WithFieldName(h))
	}
	return masq.New(opts...)
}
