package dialect

import (
	"context"
	"sort"
	"sync"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/ir"
)

// Module is the interface a compiled-in dialect implements to join the
// registry. Register must be called exactly once per dialect; it is not
// idempotent, and a second call surfaces DuplicateDialectError.
type Module interface {
	Register(ctx context.Context, reg *Registry) error
}

// Entry is one registered dialect: its id and the two descriptor tables it
// exclusively owns. Entries share no descriptors across dialects.
type Entry struct {
	ID          string
	Description string
	Types       *TypeTable
	Ops         *OpTable

	// DocVerifier is the dialect's optional document-level hook. It sees
	// every operation of this dialect in a document at once, so it can
	// find cross-operation inconsistencies no per-instance verifier can.
	// Nil means the dialect declares no document-level invariants.
	DocVerifier func(ops []*ir.Operation) []Violation
}

// NewEntry creates an empty dialect entry with fresh tables bound to id.
func NewEntry(id, description string) *Entry {
	return &Entry{
		ID:          id,
		Description: description,
		Types:       NewTypeTable(id),
		Ops:         NewOpTable(id),
	}
}

// Registry is the process-wide dialect namespace. It is populated during
// the single-threaded startup phase (see the package doc for the
// precondition) and read-only afterwards; lookups take no lock.
type Registry struct {
	mu       sync.Mutex
	dialects map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: map[string]*Entry{}}
}

// RegisterDialect claims entry's id in the registry. A second registration
// under the same id yields DuplicateDialectError and mutates nothing; on
// success the entry is observable process-wide immediately, with no staged
// commit phase.
func (r *Registry) RegisterDialect(ctx context.Context, entry *Entry) error {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dialects[entry.ID]; exists {
		return &DuplicateDialectError{ID: entry.ID}
	}
	r.dialects[entry.ID] = entry
	logger.Debug("Registered dialect.",
		"dialect", entry.ID, "types", entry.Types.Len(), "operations", entry.Ops.Len())
	return nil
}

// Dialect returns the entry registered under id, or NotFoundError.
func (r *Registry) Dialect(id string) (*Entry, error) {
	entry, ok := r.dialects[id]
	if !ok {
		return nil, &NotFoundError{Kind: "dialect", Name: id}
	}
	return entry, nil
}

// ResolveType resolves a dialect-qualified type name ("science.protein"):
// split on the first separator, dialect lookup, then local table lookup.
func (r *Registry) ResolveType(qualified string) (*TypeDescriptor, error) {
	entry, local, err := r.split(qualified, "type")
	if err != nil {
		return nil, err
	}
	return entry.Types.Lookup(local)
}

// ResolveOp resolves a dialect-qualified operation name.
func (r *Registry) ResolveOp(qualified string) (*OpDescriptor, error) {
	entry, local, err := r.split(qualified, "operation")
	if err != nil {
		return nil, err
	}
	return entry.Ops.Lookup(local)
}

// Verify resolves op's dialect and delegates to the owning table. The error
// is non-nil only when op's name fails to resolve; violations found by a
// successful verification come back in the list.
func (r *Registry) Verify(op *ir.Operation) ([]Violation, error) {
	entry, _, err := r.split(op.Name, "operation")
	if err != nil {
		return nil, err
	}
	return entry.Ops.Verify(op)
}

// VerifyDocument runs the document-level verifier of every dialect that
// appears in ops, handing each hook the operations of its own dialect in
// document order. The error is non-nil only when an operation name fails
// to resolve; hook findings come back in the violation list.
func (r *Registry) VerifyDocument(ops []*ir.Operation) ([]Violation, error) {
	grouped := map[string][]*ir.Operation{}
	var order []string
	for _, op := range ops {
		entry, _, err := r.split(op.Name, "operation")
		if err != nil {
			return nil, err
		}
		if _, seen := grouped[entry.ID]; !seen {
			order = append(order, entry.ID)
		}
		grouped[entry.ID] = append(grouped[entry.ID], op)
	}

	var violations []Violation
	for _, id := range order {
		entry := r.dialects[id]
		if entry.DocVerifier == nil {
			continue
		}
		violations = append(violations, entry.DocVerifier(grouped[id])...)
	}
	return violations, nil
}

// IDs returns the registered dialect ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.dialects))
	for id := range r.dialects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) split(qualified, kind string) (*Entry, string, error) {
	dialectID, local, err := ir.SplitQualified(qualified)
	if err != nil {
		return nil, "", &NotFoundError{Kind: kind, Name: qualified}
	}
	entry, ok := r.dialects[dialectID]
	if !ok {
		return nil, "", &NotFoundError{Kind: "dialect", Name: dialectID}
	}
	return entry, local, nil
}
