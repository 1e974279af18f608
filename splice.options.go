package splice

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	locale      language.Tag
	errorPolicy ErrorPolicy
	baseStyle   Style
	numbers     LocaleFormatter
	dates       DateFormatter
	serializer  Serializer
	registerer  prometheus.Registerer
	builtins    bool
	logger      *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		locale:      language.MustParse(DefaultLocale),
		errorPolicy: ErrorPolicyStrict,
		baseStyle:   DefaultBaseStyle(),
		builtins:    true,
		logger:      nil,
	}
}

// WithLocale sets the locale used by the default number formatter.
// Default: en-US
func WithLocale(tag language.Tag) Option {
	return func(c *engineConfig) {
		c.locale = tag
	}
}

// WithErrorPolicy sets how builders react to failing appends.
// Default: ErrorPolicyStrict
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(c *engineConfig) {
		c.errorPolicy = policy
	}
}

// WithBaseStyle sets the initial base style of rich builders.
// Default: DefaultBaseStyle()
func WithBaseStyle(style Style) Option {
	return func(c *engineConfig) {
		c.baseStyle = style.Clone()
	}
}

// WithNumberFormatter replaces the locale number formatter.
func WithNumberFormatter(f LocaleFormatter) Option {
	return func(c *engineConfig) {
		c.numbers = f
	}
}

// WithDateFormatter replaces the date formatter.
func WithDateFormatter(f DateFormatter) Option {
	return func(c *engineConfig) {
		c.dates = f
	}
}

// WithSerializer replaces the serializer used by the debug handler.
// Default: JSONSerializer()
func WithSerializer(s Serializer) Option {
	return func(c *engineConfig) {
		c.serializer = s
	}
}

// WithMetrics registers dispatch counters with the given registerer.
// Default: nil (no metrics)
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *engineConfig) {
		c.registerer = reg
	}
}

// WithoutBuiltins creates an engine with an empty handler registry.
func WithoutBuiltins() Option {
	return func(c *engineConfig) {
		c.builtins = false
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
