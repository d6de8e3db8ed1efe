package nodes

import (
	"errors"
	"fmt"
)

var (
	// ErrFeatureNotAvailable matches render-time failures for constructs
	// the active dialect cannot express.
	ErrFeatureNotAvailable = errors.New("feature not available")
	// ErrUnknownNodeKind matches registry lookups for unregistered kinds.
	ErrUnknownNodeKind = errors.New("unknown node kind")
	// ErrMalformedNode matches nodes that cannot be rendered as built.
	ErrMalformedNode = errors.New("malformed node")
)

// FeatureNotAvailableError reports a construct the dialect cannot render.
type FeatureNotAvailableError struct {
	Feature string
	Dialect string
}

func (e *FeatureNotAvailableError) Error() string {
	if e.Dialect == "" {
		return fmt.Sprintf("relal: %s is not available", e.Feature)
	}
	return fmt.Sprintf("relal: %s is not available for the %s dialect", e.Feature, e.Dialect)
}

func (e *FeatureNotAvailableError) Is(target error) bool { return target == ErrFeatureNotAvailable }

// UnknownNodeKindError reports a registry miss.
type UnknownNodeKindError struct {
	Kind Kind
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("relal: no node registered for kind %s", e.Kind)
}

func (e *UnknownNodeKindError) Is(target error) bool { return target == ErrUnknownNodeKind }

// MalformedNodeError reports a node that is missing required parts.
type MalformedNodeError struct {
	Kind   Kind
	Reason string
}

func (e *MalformedNodeError) Error() string {
	if e.Kind == KindUnknown {
		return "relal: malformed node: " + e.Reason
	}
	return fmt.Sprintf("relal: malformed %s node: %s", e.Kind, e.Reason)
}

func (e *MalformedNodeError) Is(target error) bool { return target == ErrMalformedNode }
