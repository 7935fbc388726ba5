package waysurface

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SessionOption configures a Session during creation.
//
// Example:
//
//	s := waysurface.NewSession(conn,
//	    waysurface.WithTitle("Demo"),
//	    waysurface.WithAppID("org.example.demo"),
//	)
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	title       string
	appID       string
	defaultSize WindowSize
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		title:       "waysurface",
		appID:       "waysurface",
		defaultSize: DefaultSize,
	}
}

// WithTitle sets the window title. The title is NFC-normalized and invalid
// UTF-8 is replaced, since the protocol carries UTF-8 strings.
func WithTitle(title string) SessionOption {
	return func(o *sessionOptions) {
		o.title = normalizeText(title)
	}
}

// WithAppID sets the application id used by the compositor to group windows
// and find the desktop entry.
func WithAppID(appID string) SessionOption {
	return func(o *sessionOptions) {
		o.appID = normalizeText(appID)
	}
}

// WithDefaultSize overrides the size used when the compositor leaves sizing
// to the client. Zero dimensions are ignored.
func WithDefaultSize(size WindowSize) SessionOption {
	return func(o *sessionOptions) {
		if size.Width > 0 {
			o.defaultSize.Width = size.Width
		}
		if size.Height > 0 {
			o.defaultSize.Height = size.Height
		}
	}
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.ToValidUTF8(s, "\uFFFD"))
}
