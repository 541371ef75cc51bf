// Package httpstore implements core.Store against a remote annotation
// API over HTTP. Each operation is translated into a transport request
// (method, URL, headers, body encoding), with optional emulation modes
// for servers lacking full HTTP verb or JSON body support.
package httpstore

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultPrefix is the API root prepended to every action URL when the
// configuration does not name one.
const DefaultPrefix = "/store"

// URLSet holds per-action URL templates. A template may contain an
// "{id}" placeholder, replaced with the record's id at request time
// (empty string when the record has none).
type URLSet struct {
	Create  string
	Update  string
	Destroy string
	Search  string
}

// DefaultURLs returns the standard annotation API layout.
func DefaultURLs() URLSet {
	return URLSet{
		Create:  "/annotations",
		Update:  "/annotations/{id}",
		Destroy: "/annotations/{id}",
		Search:  "/search",
	}
}

// Validate checks that every action has a template.
func (u URLSet) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Create, validation.Required),
		validation.Field(&u.Update, validation.Required),
		validation.Field(&u.Destroy, validation.Required),
		validation.Field(&u.Search, validation.Required),
	)
}

// Config holds the configuration for the HTTP store.
type Config struct {
	// Prefix is prepended to every action URL, e.g. "http://example.com/api".
	// Empty means DefaultPrefix.
	Prefix string

	// URLs holds the per-action URL templates. Zero-valued fields get
	// their DefaultURLs counterpart.
	URLs URLSet

	// EmulateHTTP fakes PUT and DELETE for servers that only accept
	// GET and POST: the transport method becomes POST and the true verb
	// travels in the X-HTTP-Method-Override header.
	EmulateHTTP bool

	// EmulateJSON sends the JSON payload inside a form field named
	// "json" instead of a raw JSON body, for servers that cannot parse
	// JSON request bodies.
	EmulateJSON bool

	// Headers are persistent custom headers merged into every request.
	Headers http.Header

	// OnError is invoked with a user-facing message and the failure
	// whenever a request fails. It is a notification side channel; the
	// operation still returns the error.
	OnError func(message string, err error)

	// Client defaults to http.DefaultClient.
	Client *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy of c with zero values filled in.
func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	def := DefaultURLs()
	if c.URLs.Create == "" {
		c.URLs.Create = def.Create
	}
	if c.URLs.Update == "" {
		c.URLs.Update = def.Update
	}
	if c.URLs.Destroy == "" {
		c.URLs.Destroy = def.Destroy
	}
	if c.URLs.Search == "" {
		c.URLs.Search = def.Search
	}
	if c.Client == nil {
		c.Client = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Validate validates the configuration. Call after withDefaults.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Prefix, validation.By(noTrailingSlash)),
		validation.Field(&c.URLs),
	)
}

func noTrailingSlash(value any) error {
	s, _ := value.(string)
	if strings.HasSuffix(s, "/") {
		return validation.NewError("validation_trailing_slash", "must not end with a slash")
	}
	return nil
}
