package internal

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// RegistryErrorKind categorizes registry failures.
type RegistryErrorKind int

// Registry error kinds
const (
	RegistryErrInvalid RegistryErrorKind = iota
	RegistryErrDuplicate
	RegistryErrAmbiguous
	RegistryErrUnresolved
	RegistryErrSealed
)

// Registry error message constants
const (
	ErrMsgEmptyHandlerName = "handler name cannot be empty"
	ErrMsgNilHandler       = "handler implementation cannot be nil"
	ErrMsgDuplicateHandler = "handler already registered for shape"
	ErrMsgAmbiguousShape   = "handler shape overlaps a registered shape"
	ErrMsgAmbiguousResolve = "more than one handler shape matches arguments"
	ErrMsgUnknownHandler   = "no handler registered with name"
	ErrMsgNoMatchingShape  = "no handler shape matches arguments"
	ErrMsgRegistrySealed   = "registry is sealed for registration"
	ErrMsgInvalidShapeKind = "handler shape contains an unnamed kind"
)

// Entry is a registered handler together with its dispatch key.
type Entry[H any] struct {
	Name    string
	Shape   Shape
	Handler H
}

// Registry maps (name, shape) pairs to handlers.
// Registration fails fast on duplicates and overlaps; resolution is
// safe for concurrent use once the registry is sealed.
type Registry[H any] struct {
	entries map[string][]Entry[H]
	sealed  bool
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewRegistry creates an empty, open registry.
func NewRegistry[H any](logger *zap.Logger) *Registry[H] {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry[H]{
		entries: make(map[string][]Entry[H]),
		logger:  logger,
	}
}

// Register adds a single handler.
func (r *Registry[H]) Register(entry Entry[H]) error {
	return r.RegisterAll(entry)
}

// RegisterAll adds a batch of handlers atomically: if any entry is rejected,
// none of them are added.
func (r *Registry[H]) RegisterAll(entries ...Entry[H]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return NewRegistryError(RegistryErrSealed, ErrMsgRegistrySealed, StringValueEmpty, nil)
	}

	staged := make(map[string][]Entry[H], len(entries))
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			r.logger.Debug(LogMsgBatchRejected, zap.Int(LogFieldCount, len(entries)))
			return err
		}
		existing := append(append([]Entry[H]{}, r.entries[e.Name]...), staged[e.Name]...)
		if err := r.checkCollision(e, existing); err != nil {
			r.logger.Debug(LogMsgBatchRejected, zap.Int(LogFieldCount, len(entries)))
			return err
		}
		staged[e.Name] = append(staged[e.Name], e)
	}

	for name, list := range staged {
		r.entries[name] = append(r.entries[name], list...)
		for _, e := range list {
			r.logger.Debug(LogMsgHandlerRegistered,
				zap.String(LogFieldHandler, name),
				zap.Stringer(LogFieldShape, e.Shape),
			)
		}
	}
	return nil
}

func validateEntry[H any](e Entry[H]) error {
	if e.Name == StringValueEmpty {
		return NewRegistryError(RegistryErrInvalid, ErrMsgEmptyHandlerName, StringValueEmpty, e.Shape)
	}
	if isNil(e.Handler) {
		return NewRegistryError(RegistryErrInvalid, ErrMsgNilHandler, e.Name, e.Shape)
	}
	for _, k := range e.Shape {
		if k.Name() == StringValueEmpty {
			return NewRegistryError(RegistryErrInvalid, ErrMsgInvalidShapeKind, e.Name, e.Shape)
		}
	}
	return nil
}

func (r *Registry[H]) checkCollision(e Entry[H], existing []Entry[H]) error {
	for _, other := range existing {
		if other.Shape.Equal(e.Shape) {
			r.logger.Warn(LogMsgHandlerCollision,
				zap.String(LogFieldHandler, e.Name),
				zap.Stringer(LogFieldExisting, other.Shape),
			)
			return NewRegistryError(RegistryErrDuplicate, ErrMsgDuplicateHandler, e.Name, e.Shape)
		}
		if other.Shape.Overlaps(e.Shape) {
			r.logger.Warn(LogMsgHandlerCollision,
				zap.String(LogFieldHandler, e.Name),
				zap.Stringer(LogFieldShape, e.Shape),
				zap.Stringer(LogFieldExisting, other.Shape),
			)
			return NewRegistryError(RegistryErrAmbiguous, ErrMsgAmbiguousShape, e.Name, e.Shape)
		}
	}
	return nil
}

// Seal closes the registry for further registration. Sealing twice is a no-op.
func (r *Registry[H]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sealed {
		r.sealed = true
		r.logger.Debug(LogMsgRegistrySealed, zap.Int(LogFieldCount, r.countLocked()))
	}
}

// Sealed reports whether registration is closed.
func (r *Registry[H]) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}

// Resolve finds the single entry whose name equals name and whose shape
// matches args.
func (r *Registry[H]) Resolve(name string, args []any) (Entry[H], error) {
	r.mu.RLock()
	candidates := r.entries[name]
	r.mu.RUnlock()

	var zero Entry[H]
	if len(candidates) == 0 {
		r.logger.Debug(LogMsgHandlerUnresolved, zap.String(LogFieldHandler, name))
		regErr := NewRegistryError(RegistryErrUnresolved, ErrMsgUnknownHandler, name, nil).
			withArgs(args)
		regErr.Suggestions = SimilarNames(name, r.Names(), MaxSuggestions)
		return zero, regErr
	}

	var matches []Entry[H]
	for _, c := range candidates {
		if c.Shape.Matches(args) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		r.logger.Debug(LogMsgHandlerUnresolved,
			zap.String(LogFieldHandler, name),
			zap.String(LogFieldArgs, DescribeArgs(args)),
		)
		return zero, NewRegistryError(RegistryErrUnresolved, ErrMsgNoMatchingShape, name, nil).
			withArgs(args)
	case 1:
		r.logger.Debug(LogMsgHandlerResolved,
			zap.String(LogFieldHandler, name),
			zap.Stringer(LogFieldShape, matches[0].Shape),
		)
		return matches[0], nil
	default:
		return zero, NewRegistryError(RegistryErrAmbiguous, ErrMsgAmbiguousResolve, name, nil).
			withArgs(args)
	}
}

// Names returns the registered handler names in sorted order.
func (r *Registry[H]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name, list := range r.entries {
		if len(list) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Has checks whether any handler is registered under name.
func (r *Registry[H]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[name]) > 0
}

// List returns all entries sorted by name, then by arity, then by shape.
func (r *Registry[H]) List() []Entry[H] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry[H], 0, r.countLocked())
	for _, list := range r.entries {
		out = append(out, list...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Shape.Arity() != out[j].Shape.Arity() {
			return out[i].Shape.Arity() < out[j].Shape.Arity()
		}
		return out[i].Shape.String() < out[j].Shape.String()
	})
	return out
}

// Count returns the number of registered (name, shape) pairs.
func (r *Registry[H]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.countLocked()
}

func (r *Registry[H]) countLocked() int {
	n := 0
	for _, list := range r.entries {
		n += len(list)
	}
	return n
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// RegistryError represents a registration or dispatch failure.
type RegistryError struct {
	Kind    RegistryErrorKind
	Message string
	Name    string
	Shape   Shape
	Args    string
	// Suggestions lists registered names close to Name, for unknown names.
	Suggestions []string
}

// NewRegistryError creates a new registry error
func NewRegistryError(kind RegistryErrorKind, message, name string, shape Shape) *RegistryError {
	return &RegistryError{
		Kind:    kind,
		Message: message,
		Name:    name,
		Shape:   shape,
	}
}

func (e *RegistryError) withArgs(args []any) *RegistryError {
	e.Args = DescribeArgs(args)
	return e
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	switch {
	case e.Name == StringValueEmpty:
		return e.Message
	case e.Args != StringValueEmpty:
		return fmt.Sprintf(ErrFmtShapeMessage, e.Message, e.Name, e.Args) + FormatSuggestions(e.Suggestions)
	case e.Shape != nil:
		return fmt.Sprintf(ErrFmtShapeMessage, e.Message, e.Name, e.Shape.String())
	default:
		return fmt.Sprintf(ErrFmtNameMessage, e.Message, e.Name)
	}
}
