package inference

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a prediction request failed.
type Kind string

const (
	KindUnauthorized     Kind = "Unauthorized"
	KindMissingFeatures  Kind = "MissingFeatures"
	KindInvalidValue     Kind = "InvalidValue"
	KindInvalidPayload   Kind = "InvalidPayload"
	KindInferenceFailure Kind = "InferenceFailure"
)

const (
	msgTokenMissing = "Unauthorized: token manquant ou mal formaté"
	msgTokenInvalid = "Unauthorized: token invalide"
)

// Error is the error type returned by every step of the request pipeline.
type Error struct {
	Kind    Kind
	Message string
	// Missing lists absent features in feature spec order (MissingFeatures only).
	Missing []string
	// Feature names the value that failed coercion (InvalidValue only).
	Feature string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a pipeline error, or "" for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func missingFeatures(names []string) *Error {
	return &Error{
		Kind:    KindMissingFeatures,
		Message: "Champs manquants : " + pyList(names),
		Missing: names,
	}
}

func invalidValue(feature string, value any, err error) *Error {
	msg := fmt.Sprintf("feature %s: could not convert %s to float", pyStr(feature), describe(value))
	if err != nil && !errors.Is(err, errUnsupported) {
		msg += ": " + err.Error()
	}
	return &Error{Kind: KindInvalidValue, Message: msg, Feature: feature, Err: err}
}

// InvalidPayload wraps a body that could not be read as a JSON object.
func InvalidPayload(err error) *Error {
	return &Error{Kind: KindInvalidPayload, Message: err.Error(), Err: err}
}

func inferenceFailure(err error) *Error {
	return &Error{Kind: KindInferenceFailure, Message: err.Error(), Err: err}
}

// pyList renders names the way the original service listed them, e.g. ['a', 'b'].
func pyList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = pyStr(name)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyStr(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	if quote == "'" {
		s = strings.ReplaceAll(s, "'", `\'`)
	}
	return quote + s + quote
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return pyStr(v)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%v", v)
	}
}
