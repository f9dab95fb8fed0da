package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"strokerisk/inference"
)

// decodePayload reads the body as a JSON object. Numbers stay json.Number so
// coercion is left to the normalizer. Bodies in a declared non UTF-8 charset
// are transcoded first.
func decodePayload(r *http.Request) (inference.Payload, error) {
	body, err := bodyReader(r)
	if err != nil {
		return nil, inference.InvalidPayload(err)
	}

	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			err = errors.New("request body is empty")
		case errors.As(err, &maxErr):
			err = fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			err = fmt.Errorf("invalid JSON body: %w", err)
		}
		return nil, inference.InvalidPayload(err)
	}
	if decoder.More() {
		return nil, inference.InvalidPayload(errors.New("invalid JSON body: unexpected data after the JSON object"))
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return nil, inference.InvalidPayload(errors.New("request body must be a JSON object"))
	}
	return inference.Payload(object), nil
}

func bodyReader(r *http.Request) (io.Reader, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return r.Body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("invalid Content-Type: %w", err)
	}
	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return r.Body, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return transform.NewReader(r.Body, enc.NewDecoder()), nil
}
