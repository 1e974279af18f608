package splice

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-splice/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Registration errors
	ErrMsgNilHandler          = "handler cannot be nil"
	ErrMsgDuplicateHandler    = "handler already registered for name and shape"
	ErrMsgAmbiguousHandler    = "handler shape is ambiguous"
	ErrMsgRegistrySealed      = "handler registry is sealed"
	ErrMsgInvalidHandler      = "invalid handler definition"
	ErrMsgMetricsRegistration = "metrics registration failed"

	// Dispatch errors
	ErrMsgUnresolvedHandler = "no handler matches name and arguments"
	ErrMsgRichOnlyHandler   = "handler requires a rich text builder"

	// Handler errors
	ErrMsgFormatterFailure     = "formatter declined input"
	ErrMsgSerializationFailure = "serialization failed"
	ErrMsgHandlerFailure       = "handler failed"
	ErrMsgNegativeCount        = "repeat count cannot be negative"
	ErrMsgRepeatTooLarge       = "repeat count exceeds limit"

	// State errors
	ErrMsgFinalized = "builder already finalized"

	// Recipe errors
	ErrMsgRecipeInvalid    = "invalid recipe"
	ErrMsgRecipeStep       = "recipe step must set exactly one of literal or handler"
	ErrMsgRecipeTag        = "unsupported recipe tag"
	ErrMsgRecipeVariant    = "unknown recipe variant"
	ErrMsgRecipeArgument   = "invalid recipe argument"
	ErrMsgRecipeStyleValue = "style must be a mapping of strings"

	// Recipe store errors
	ErrMsgRecipeNotFound    = "recipe not found"
	ErrMsgInvalidRecipeName = "invalid recipe name"
	ErrMsgStoreClosed       = "recipe store is closed"
	ErrMsgStoreRoot         = "recipe store root cannot be empty"
	ErrMsgStoreCreateDir    = "failed to create recipe store directory"
	ErrMsgStoreRead         = "failed to read recipe"
	ErrMsgStoreWrite        = "failed to write recipe"
	ErrMsgStoreDelete       = "failed to delete recipe"
	ErrMsgStoreList         = "failed to list recipes"
)

// Error code constants for categorization
const (
	ErrCodeRegistry = "SPLICE_REGISTRY"
	ErrCodeDispatch = "SPLICE_DISPATCH"
	ErrCodeHandler  = "SPLICE_HANDLER"
	ErrCodeState    = "SPLICE_STATE"
	ErrCodeRecipe   = "SPLICE_RECIPE"
	ErrCodeStore    = "SPLICE_STORE"
)

// Error kinds, stored in error metadata under MetaKeyKind
const (
	ErrorKindUnresolvedHandler     = "unresolved_handler"
	ErrorKindAmbiguousHandler      = "ambiguous_handler"
	ErrorKindDuplicateRegistration = "duplicate_registration"
	ErrorKindRegistrySealed        = "registry_sealed"
	ErrorKindInvalidHandler        = "invalid_handler"
	ErrorKindFormatterFailure      = "formatter_failure"
	ErrorKindSerializationFailure  = "serialization_failure"
	ErrorKindHandlerFailure        = "handler_failure"
	ErrorKindFinalizedState        = "finalized_state_violation"
	ErrorKindInvalidRecipe         = "invalid_recipe"
	ErrorKindRecipeNotFound        = "recipe_not_found"
	ErrorKindStoreClosed           = "store_closed"
	ErrorKindStoreFailure          = "store_failure"
)

// Metadata keys
const (
	MetaKeyKind    = "kind"
	MetaKeyHandler = "handler"
	MetaKeyShape   = "shape"
	MetaKeyArgs    = "args"
	MetaKeyReason  = "reason"
	MetaKeyStep    = "step"
	MetaKeyTag     = "tag"
	MetaKeyVariant = "variant"
	MetaKeyName    = "name"
)

// NewRegistrationError creates a registration-time error of the given kind.
func NewRegistrationError(kind, msg, handler, shape string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyKind, kind).
		WithMetadata(MetaKeyHandler, handler).
		WithMetadata(MetaKeyShape, shape)
}

// NewUnresolvedHandlerError creates an error for a call no handler accepts.
func NewUnresolvedHandlerError(handler, args, reason string) error {
	return cuserr.NewNotFoundError(MetaKeyHandler, ErrMsgUnresolvedHandler).
		WithMetadata(MetaKeyKind, ErrorKindUnresolvedHandler).
		WithMetadata(MetaKeyHandler, handler).
		WithMetadata(MetaKeyArgs, args).
		WithMetadata(MetaKeyReason, reason)
}

// NewAmbiguousHandlerError creates an error for a call more than one handler accepts.
func NewAmbiguousHandlerError(handler, args string) error {
	return cuserr.NewValidationError(ErrCodeDispatch, ErrMsgAmbiguousHandler).
		WithMetadata(MetaKeyKind, ErrorKindAmbiguousHandler).
		WithMetadata(MetaKeyHandler, handler).
		WithMetadata(MetaKeyArgs, args)
}

// NewFormatterError wraps a locale or date formatter failure.
func NewFormatterError(handler string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeHandler, ErrMsgFormatterFailure).
		WithMetadata(MetaKeyKind, ErrorKindFormatterFailure).
		WithMetadata(MetaKeyHandler, handler)
}

// NewSerializationError wraps a serializer failure.
func NewSerializationError(handler string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeHandler, ErrMsgSerializationFailure).
		WithMetadata(MetaKeyKind, ErrorKindSerializationFailure).
		WithMetadata(MetaKeyHandler, handler)
}

// NewHandlerError wraps any other handler failure.
func NewHandlerError(handler string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeHandler, ErrMsgHandlerFailure).
		WithMetadata(MetaKeyKind, ErrorKindHandlerFailure).
		WithMetadata(MetaKeyHandler, handler)
}

// NewFinalizedStateError creates the error returned by appends after Finalize.
func NewFinalizedStateError() error {
	return cuserr.NewValidationError(ErrCodeState, ErrMsgFinalized).
		WithMetadata(MetaKeyKind, ErrorKindFinalizedState)
}

// NewRecipeError creates a recipe decoding error for the given step (-1 for
// errors outside the step list).
func NewRecipeError(msg string, step int, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRecipe, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeRecipe, msg)
	}
	return err.
		WithMetadata(MetaKeyKind, ErrorKindInvalidRecipe).
		WithMetadata(MetaKeyStep, strconv.Itoa(step))
}

// NewRecipeTagError creates a recipe error for an argument carrying tag.
func NewRecipeTagError(msg string, step int, tag string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRecipe, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeRecipe, msg)
	}
	return err.
		WithMetadata(MetaKeyKind, ErrorKindInvalidRecipe).
		WithMetadata(MetaKeyStep, strconv.Itoa(step)).
		WithMetadata(MetaKeyTag, tag)
}

// NewRecipeVariantError creates a recipe error for an unknown variant name.
func NewRecipeVariantError(variant string) error {
	return cuserr.NewValidationError(ErrCodeRecipe, ErrMsgRecipeVariant).
		WithMetadata(MetaKeyKind, ErrorKindInvalidRecipe).
		WithMetadata(MetaKeyVariant, variant)
}

// NewRecipeNotFoundError creates the error returned for an unknown recipe name.
func NewRecipeNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyName, ErrMsgRecipeNotFound).
		WithMetadata(MetaKeyKind, ErrorKindRecipeNotFound).
		WithMetadata(MetaKeyName, name)
}

// NewInvalidRecipeNameError rejects names that cannot be stored safely.
func NewInvalidRecipeNameError(name string) error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgInvalidRecipeName).
		WithMetadata(MetaKeyKind, ErrorKindInvalidRecipe).
		WithMetadata(MetaKeyName, name)
}

// NewStoreClosedError creates the error returned by a closed store.
func NewStoreClosedError() error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgStoreClosed).
		WithMetadata(MetaKeyKind, ErrorKindStoreClosed)
}

// NewStoreError wraps an I/O failure of a recipe store.
func NewStoreError(msg, name string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeStore, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeStore, msg)
	}
	return err.
		WithMetadata(MetaKeyKind, ErrorKindStoreFailure).
		WithMetadata(MetaKeyName, name)
}

// ErrorKindOf returns the splice error kind recorded on err, if any.
func ErrorKindOf(err error) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	return customErr.GetMetadata(MetaKeyKind)
}

// IsErrorKind reports whether err carries the given splice error kind.
func IsErrorKind(err error, kind string) bool {
	k, ok := ErrorKindOf(err)
	return ok && k == kind
}

// fromRegistryError converts internal registry errors to public errors.
func fromRegistryError(err error) error {
	var regErr *internal.RegistryError
	if !errors.As(err, &regErr) {
		return err
	}
	shape := ""
	if regErr.Shape != nil {
		shape = regErr.Shape.String()
	}
	switch regErr.Kind {
	case internal.RegistryErrDuplicate:
		return NewRegistrationError(ErrorKindDuplicateRegistration, ErrMsgDuplicateHandler, regErr.Name, shape)
	case internal.RegistryErrAmbiguous:
		if regErr.Args != "" {
			return NewAmbiguousHandlerError(regErr.Name, regErr.Args)
		}
		return NewRegistrationError(ErrorKindAmbiguousHandler, ErrMsgAmbiguousHandler, regErr.Name, shape)
	case internal.RegistryErrSealed:
		return NewRegistrationError(ErrorKindRegistrySealed, ErrMsgRegistrySealed, regErr.Name, shape)
	case internal.RegistryErrUnresolved:
		return NewUnresolvedHandlerError(regErr.Name, regErr.Args, regErr.Message+internal.FormatSuggestions(regErr.Suggestions))
	default:
		return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgInvalidHandler).
			WithMetadata(MetaKeyKind, ErrorKindInvalidHandler).
			WithMetadata(MetaKeyHandler, regErr.Name).
			WithMetadata(MetaKeyShape, shape).
			WithMetadata(MetaKeyReason, regErr.Message)
	}
}
