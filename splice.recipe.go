package splice

import (
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Recipe YAML tags for argument values plain YAML cannot express
const (
	RecipeTagStyle       = "!style"
	RecipeTagTime        = "!time"
	RecipeTagSubject     = "!subject"
	RecipeTagColor       = "!color"
	RecipeTagLazy        = "!lazy"
	RecipeTagNumberStyle = "!number_style"
)

// Core YAML tags
const (
	yamlTagString = "!!str"
	yamlTagInt    = "!!int"
	yamlTagFloat  = "!!float"
	yamlTagBool   = "!!bool"
	yamlTagNull   = "!!null"
	yamlTagSeq    = "!!seq"
	yamlTagMap    = "!!map"
	yamlTagTime   = "!!timestamp"

	lazyTrue  = "true"
	lazyFalse = "false"
)

// Recipe is a decoded composition: an ordered list of steps run against one
// builder.
type Recipe struct {
	Variant   Variant
	BaseStyle Style
	Steps     []Step
}

// Step is either a literal or a handler call.
type Step struct {
	Literal   string
	IsLiteral bool
	Handler   string
	Args      []any
}

type recipeDocument struct {
	Variant   string            `yaml:"variant"`
	BaseStyle map[string]string `yaml:"base_style"`
	Steps     []recipeStep      `yaml:"steps"`
}

type recipeStep struct {
	Literal *string     `yaml:"literal"`
	Handler string      `yaml:"handler"`
	Args    []yaml.Node `yaml:"args"`
}

// LoadRecipe decodes a YAML recipe such as:
//
//	variant: rich
//	base_style: {font: Georgia-Italic, color: black}
//	steps:
//	  - literal: "Hello "
//	  - handler: message
//	    args: ["Red", !color red]
func LoadRecipe(data []byte) (*Recipe, error) {
	var doc recipeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewRecipeError(ErrMsgRecipeInvalid, -1, err)
	}

	recipe := &Recipe{Steps: make([]Step, 0, len(doc.Steps))}
	switch doc.Variant {
	case "", VariantNameText:
		recipe.Variant = VariantAny
	case VariantNameRich:
		recipe.Variant = VariantRich
	default:
		return nil, NewRecipeVariantError(doc.Variant)
	}
	if len(doc.BaseStyle) > 0 {
		recipe.BaseStyle = make(Style, len(doc.BaseStyle))
		for k, v := range doc.BaseStyle {
			recipe.BaseStyle[StyleKey(k)] = v
		}
	}

	for i, raw := range doc.Steps {
		if (raw.Literal != nil) == (raw.Handler != "") {
			return nil, NewRecipeError(ErrMsgRecipeStep, i, nil)
		}
		if raw.Literal != nil {
			recipe.Steps = append(recipe.Steps, Step{Literal: *raw.Literal, IsLiteral: true})
			continue
		}
		args := make([]any, 0, len(raw.Args))
		for j := range raw.Args {
			arg, err := decodeArg(&raw.Args[j], i)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		recipe.Steps = append(recipe.Steps, Step{Handler: raw.Handler, Args: args})
	}
	return recipe, nil
}

func decodeArg(node *yaml.Node, step int) (any, error) {
	tag := node.ShortTag()
	switch tag {
	case RecipeTagStyle:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return nil, NewRecipeTagError(ErrMsgRecipeStyleValue, step, tag, err)
		}
		style := make(Style, len(m))
		for k, v := range m {
			style[StyleKey(k)] = v
		}
		return style, nil
	case RecipeTagTime:
		t, err := time.Parse(time.RFC3339, node.Value)
		if err != nil {
			return nil, argError(step, tag, err)
		}
		return t, nil
	case RecipeTagSubject:
		var s Subject
		if err := node.Decode(&s); err != nil {
			return nil, argError(step, tag, err)
		}
		return s, nil
	case RecipeTagColor:
		return Color(node.Value), nil
	case RecipeTagNumberStyle:
		return NumberStyle(node.Value), nil
	case RecipeTagLazy:
		switch node.Value {
		case lazyTrue:
			return Lazy(true), nil
		case lazyFalse:
			return Lazy(false), nil
		}
		return LazyString(node.Value), nil
	case yamlTagString:
		return node.Value, nil
	case yamlTagInt:
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, argError(step, tag, err)
		}
		return n, nil
	case yamlTagFloat:
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, argError(step, tag, err)
		}
		return f, nil
	case yamlTagBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, argError(step, tag, err)
		}
		return b, nil
	case yamlTagTime:
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, argError(step, tag, err)
		}
		return t, nil
	case yamlTagNull:
		return nil, nil
	case yamlTagSeq:
		var values []string
		if err := node.Decode(&values); err != nil {
			return nil, argError(step, tag, err)
		}
		if values == nil {
			values = []string{}
		}
		return values, nil
	case yamlTagMap:
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return nil, argError(step, tag, err)
		}
		return m, nil
	}
	return nil, NewRecipeTagError(ErrMsgRecipeTag, step, tag, nil)
}

func argError(step int, tag string, cause error) error {
	return NewRecipeTagError(ErrMsgRecipeArgument, step, tag, cause)
}

// RunRecipe composes the recipe with a fresh builder of its variant. Plain
// recipes yield a single unstyled run. A rich recipe's base style is merged
// onto the engine's base style.
func (e *Engine) RunRecipe(r *Recipe) (RichText, error) {
	e.logger.Debug(LogMsgRecipeRun,
		zap.Stringer(LogFieldVariant, r.Variant),
		zap.Int(LogFieldSteps, len(r.Steps)),
	)

	if r.Variant != VariantRich {
		b := e.NewBuilder()
		runSteps(&b.composer, r.Steps)
		text, err := b.Finalize()
		if err != nil {
			return RichText{}, err
		}
		return NewRichText(text), nil
	}

	b := e.NewRichBuilder()
	if r.BaseStyle != nil {
		if err := b.SetBaseStyle(b.BaseStyle().Merge(r.BaseStyle)); err != nil {
			return RichText{}, err
		}
	}
	runSteps(&b.composer, r.Steps)
	return b.Finalize()
}

// runSteps appends every step. Failures are recorded on the builder and
// surface from Finalize; under ErrorPolicyStrict the first one stops the run.
func runSteps(c *composer, steps []Step) {
	for _, s := range steps {
		var err error
		if s.IsLiteral {
			err = c.AppendLiteral(s.Literal)
		} else {
			err = c.AppendComputed(s.Handler, s.Args...)
		}
		if err != nil && c.policy == ErrorPolicyStrict {
			return
		}
	}
}
