package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nlindley/annostore/pkg/core"
)

// action is a logical store operation as the wire protocol names it.
type action string

const (
	actionCreate  action = "create"
	actionUpdate  action = "update"
	actionDestroy action = "destroy"
	actionSearch  action = "search"
)

// methods maps a logical action to its HTTP method.
var methods = map[action]string{
	actionCreate:  http.MethodPost,
	actionUpdate:  http.MethodPut,
	actionDestroy: http.MethodDelete,
	actionSearch:  http.MethodGet,
}

// headerMethodOverride carries the true verb when EmulateHTTP rewrites
// PUT or DELETE to POST.
const headerMethodOverride = "X-HTTP-Method-Override"

// idPlaceholder is the substitution point in URL templates.
const idPlaceholder = "{id}"

// builder translates a logical action plus payload into a transport
// request. It holds no state beyond the store configuration.
type builder struct {
	cfg Config
}

// template returns the configured URL template for act.
func (b builder) template(act action) string {
	switch act {
	case actionCreate:
		return b.cfg.URLs.Create
	case actionUpdate:
		return b.cfg.URLs.Update
	case actionDestroy:
		return b.cfg.URLs.Destroy
	default:
		return b.cfg.URLs.Search
	}
}

// urlFor builds prefix + template, substituting the payload's id into
// the placeholder. A record without an id substitutes an empty string.
func (b builder) urlFor(act action, payload map[string]any) string {
	id := ""
	if v, ok := payload[core.FieldID]; ok && v != nil {
		id = fmt.Sprint(v)
	}
	return b.cfg.Prefix + strings.ReplaceAll(b.template(act), idPlaceholder, id)
}

// build produces the transport request for act. extra holds the
// store's persistent custom headers; emulation headers are applied on
// top of them.
func (b builder) build(ctx context.Context, act action, payload map[string]any, extra http.Header) (*http.Request, error) {
	method := methods[act]
	target := b.urlFor(act, payload)

	// Legacy emulation: the true verb travels in a header, the wire
	// sees POST.
	override := ""
	if b.cfg.EmulateHTTP && (method == http.MethodPut || method == http.MethodDelete) {
		override = method
		method = http.MethodPost
	}

	var body io.Reader
	contentType := ""
	switch act {
	case actionSearch:
		// Search payloads travel as query parameters, never as a body.
		if params := queryParams(payload); len(params) > 0 {
			target += "?" + params.Encode()
		}
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", act, err)
		}
		if b.cfg.EmulateJSON {
			form := url.Values{"json": {string(data)}}
			if override != "" {
				form.Set("_method", override)
			}
			body = strings.NewReader(form.Encode())
			contentType = "application/x-www-form-urlencoded"
		} else {
			body = bytes.NewReader(data)
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", act, err)
	}

	for name, values := range extra {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if override != "" {
		req.Header.Set(headerMethodOverride, override)
	}
	return req, nil
}

// queryParams flattens an open-ended query object into URL parameters.
// Slice values become repeated parameters; everything else is
// stringified.
func queryParams(payload map[string]any) url.Values {
	params := url.Values{}
	for k, v := range payload {
		switch vals := v.(type) {
		case []any:
			for _, e := range vals {
				params.Add(k, fmt.Sprint(e))
			}
		case []string:
			for _, e := range vals {
				params.Add(k, e)
			}
		default:
			params.Add(k, fmt.Sprint(v))
		}
	}
	return params
}
