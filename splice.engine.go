package splice

import (
	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-splice/internal"
	"go.uber.org/zap"
)

// Engine owns the handler registry and the collaborators handlers call into.
// Handlers are registered during setup; the first builder seals the registry,
// after which the engine is safe for concurrent use by many builders.
type Engine struct {
	registry *internal.Registry[*Handler]
	config   *engineConfig
	metrics  *dispatchMetrics
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if config.numbers == nil {
		config.numbers = NewLocaleFormatter(config.locale)
	}
	if config.dates == nil {
		config.dates = NewFullDateFormatter(nil)
	}
	if config.serializer == nil {
		config.serializer = JSONSerializer()
	}

	metrics, err := newDispatchMetrics(config.registerer)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeRegistry, ErrMsgMetricsRegistration)
	}
	if metrics != nil {
		logger.Debug(LogMsgMetricsRegistered)
	}

	e := &Engine{
		registry: internal.NewRegistry[*Handler](logger),
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}

	if config.builtins {
		if err := e.RegisterAll(builtinHandlers()...); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldLocale, config.locale.String()),
		zap.Stringer(LogFieldPolicy, config.errorPolicy),
		zap.Int(LogFieldHandlers, e.registry.Count()),
	)
	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Register adds a handler. Registering a (name, shape) pair twice, or a shape
// that overlaps an existing one under the same name, fails.
func (e *Engine) Register(h *Handler) error {
	return e.RegisterAll(h)
}

// RegisterAll adds handlers atomically: either all of them are registered or,
// on the first rejected handler, none.
func (e *Engine) RegisterAll(handlers ...*Handler) error {
	entries := make([]internal.Entry[*Handler], 0, len(handlers))
	for _, h := range handlers {
		if h == nil || h.Fn == nil {
			return NewRegistrationError(ErrorKindInvalidHandler, ErrMsgNilHandler, handlerName(h), "")
		}
		registered := *h
		registered.Shape = append(Shape(nil), h.Shape...)
		entries = append(entries, internal.Entry[*Handler]{
			Name:    registered.Name,
			Shape:   registered.Shape,
			Handler: &registered,
		})
	}
	if err := e.registry.RegisterAll(entries...); err != nil {
		return fromRegistryError(err)
	}
	return nil
}

// MustRegister adds a handler and panics if registration fails.
func (e *Engine) MustRegister(h *Handler) {
	if err := e.Register(h); err != nil {
		panic(err)
	}
}

// Seal closes the registry. NewBuilder and NewRichBuilder seal implicitly.
func (e *Engine) Seal() {
	e.registry.Seal()
}

// Sealed reports whether the registry is closed for registration.
func (e *Engine) Sealed() bool {
	return e.registry.Sealed()
}

// Resolve returns the handler that a call with name and args dispatches to.
func (e *Engine) Resolve(name string, args ...any) (*Handler, error) {
	entry, err := e.registry.Resolve(name, args)
	if err != nil {
		return nil, fromRegistryError(err)
	}
	return entry.Handler, nil
}

// HasHandler checks if any handler is registered under name.
func (e *Engine) HasHandler(name string) bool {
	return e.registry.Has(name)
}

// HandlerCount returns the number of registered (name, shape) pairs.
func (e *Engine) HandlerCount() int {
	return e.registry.Count()
}

// Handlers lists registered handlers sorted by name and shape.
func (e *Engine) Handlers() []HandlerInfo {
	entries := e.registry.List()
	infos := make([]HandlerInfo, 0, len(entries))
	for _, entry := range entries {
		h := entry.Handler
		infos = append(infos, HandlerInfo{
			Name:        h.Name,
			Shape:       h.Shape.String(),
			Variant:     h.Variant.String(),
			OnFailure:   h.OnFailure.String(),
			Description: h.Description,
		})
	}
	return infos
}

// ErrorPolicy returns the policy new builders start with.
func (e *Engine) ErrorPolicy() ErrorPolicy {
	return e.config.errorPolicy
}

// NewBuilder seals the registry and returns an open plain-text builder.
func (e *Engine) NewBuilder() *Builder {
	e.Seal()
	b := &Builder{}
	b.init(e, VariantAny, nil)
	return b
}

// NewRichBuilder seals the registry and returns an open rich-text builder
// starting from the engine's base style.
func (e *Engine) NewRichBuilder() *RichBuilder {
	e.Seal()
	b := &RichBuilder{}
	b.init(e, VariantRich, e.config.baseStyle.Clone())
	return b
}

// dispatch resolves and invokes a handler. It returns appended=false when a
// FailureSkip handler failed and its fragment must be dropped.
func (e *Engine) dispatch(name string, args []any, variant Variant, base Style) (Fragment, bool, error) {
	entry, err := e.registry.Resolve(name, args)
	if err != nil {
		e.metrics.observe(name, OutcomeUnresolved)
		return Fragment{}, false, fromRegistryError(err)
	}
	h := entry.Handler

	if h.Variant == VariantRich && variant != VariantRich {
		e.metrics.observe(name, OutcomeUnresolved)
		return Fragment{}, false, NewUnresolvedHandlerError(name, internal.DescribeArgs(args), ErrMsgRichOnlyHandler)
	}

	frag, err := h.Fn(&Call{Name: name, Args: args, engine: e, base: base})
	if err != nil {
		if h.OnFailure == FailureSkip {
			e.logger.Warn(LogMsgFragmentSkipped, zap.String(LogFieldHandler, name), zap.Error(err))
			e.metrics.observe(name, OutcomeSkipped)
			return Fragment{}, false, nil
		}
		e.metrics.observe(name, OutcomeFailed)
		if _, ok := ErrorKindOf(err); !ok {
			err = NewHandlerError(name, err)
		}
		return Fragment{}, false, err
	}

	frag.Kind = FragmentComputed
	frag.Handler = name
	e.metrics.observe(name, OutcomeAppended)
	return frag, true, nil
}

func handlerName(h *Handler) string {
	if h == nil {
		return ""
	}
	return h.Name
}
