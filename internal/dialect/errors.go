package dialect

import "fmt"

// DuplicateDialectError reports a second registration under an already
// claimed dialect id. Registration-time errors are fatal to startup; the
// process must not proceed with an inconsistent registry.
type DuplicateDialectError struct {
	ID string
}

func (e *DuplicateDialectError) Error() string {
	return fmt.Sprintf("dialect %q is already registered", e.ID)
}

// DuplicateTypeError reports a type name collision within one dialect.
type DuplicateTypeError struct {
	Dialect string
	Name    string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("dialect %q already has a type named %q", e.Dialect, e.Name)
}

// DuplicateOperationError reports an operation name collision within one
// dialect. Types and operations draw from separate namespaces, so an
// operation may share its name with a type.
type DuplicateOperationError struct {
	Dialect string
	Name    string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("dialect %q already has an operation named %q", e.Dialect, e.Name)
}

// NotFoundError reports a failed lookup. Unlike the duplicate errors it is
// recoverable: the generic parser turns it into a source-located diagnostic.
type NotFoundError struct {
	Kind string // "dialect", "type" or "operation"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s named %q is registered", e.Kind, e.Name)
}

// MalformedTypeError reports parameter text a type descriptor's parser
// rejected. It carries the offending text and the byte offset of the
// rejected region so callers can produce a positioned diagnostic.
type MalformedTypeError struct {
	Type   string // qualified or local descriptor name
	Text   string
	Offset int
	Reason string
}

func (e *MalformedTypeError) Error() string {
	return fmt.Sprintf("malformed parameters for type %q at offset %d in %q: %s",
		e.Type, e.Offset, e.Text, e.Reason)
}
