// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure in the research pipeline.
type ErrorKind string

const (
	KindConfiguration            ErrorKind = "configuration_error"
	KindProviderUnavailable      ErrorKind = "provider_unavailable"
	KindSearchBackendUnavailable ErrorKind = "search_backend_unavailable"
	KindNoCandidates             ErrorKind = "no_candidates"
	KindInvalidTopic             ErrorKind = "invalid_topic"
)

// Sentinel errors, one per ErrorKind. A *Failure matches the sentinel of its
// kind under errors.Is.
var (
	ErrConfiguration            = errors.New("configuration error")
	ErrProviderUnavailable      = errors.New("provider unavailable")
	ErrSearchBackendUnavailable = errors.New("search backend unavailable")
	ErrNoCandidates             = errors.New("no provider produced a candidate")
	ErrInvalidTopic             = errors.New("topic is empty")
)

var kindSentinels = map[ErrorKind]error{
	KindConfiguration:            ErrConfiguration,
	KindProviderUnavailable:      ErrProviderUnavailable,
	KindSearchBackendUnavailable: ErrSearchBackendUnavailable,
	KindNoCandidates:             ErrNoCandidates,
	KindInvalidTopic:             ErrInvalidTopic,
}

// Failure is a typed error carrying its kind and the backend that produced it.
type Failure struct {
	Kind    ErrorKind
	Backend string
	Err     error
}

// NewFailure wraps err as a Failure of the given kind.
func NewFailure(kind ErrorKind, backend string, err error) *Failure {
	return &Failure{Kind: kind, Backend: backend, Err: err}
}

func (f *Failure) Error() string {
	msg := string(f.Kind)
	if f.Backend != "" {
		msg += ": " + f.Backend
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the sentinel error for the failure's kind.
func (f *Failure) Is(target error) bool {
	s, ok := kindSentinels[f.Kind]
	return ok && s == target
}

// Diagnostic is a non-fatal, operator-visible notice that a sub-operation failed.
type Diagnostic struct {
	// Component is the pipeline component that reported the problem
	// (e.g. "provider", "websearch", "video", "pipeline").
	Component string    `json:"component" yaml:"component"`
	Backend   string    `json:"backend,omitempty" yaml:"backend,omitempty"`
	Kind      ErrorKind `json:"kind" yaml:"kind"`
	Message   string    `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Backend != "" {
		return fmt.Sprintf("[%s] %s (%s): %s", d.Component, d.Backend, d.Kind, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Component, d.Kind, d.Message)
}

// DiagnosticFrom converts err into a Diagnostic for component. When err is a
// *Failure its kind and backend are used; otherwise fallback is the kind.
func DiagnosticFrom(component string, fallback ErrorKind, err error) Diagnostic {
	d := Diagnostic{Component: component, Kind: fallback}
	var f *Failure
	if errors.As(err, &f) {
		d.Kind = f.Kind
		d.Backend = f.Backend
		if f.Err != nil {
			d.Message = f.Err.Error()
		}
		return d
	}
	if err != nil {
		d.Message = err.Error()
	}
	return d
}
