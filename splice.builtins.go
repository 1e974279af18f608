package splice

import (
	"errors"

	"github.com/itsatony/go-splice/internal"
)

// Causes behind rejected repeat counts
var (
	errNegativeCount  = errors.New(ErrMsgNegativeCount)
	errRepeatTooLarge = errors.New(ErrMsgRepeatTooLarge)
)

// builtinHandlers returns the handlers every engine starts with unless
// WithoutBuiltins is set.
func builtinHandlers() []*Handler {
	return []*Handler{
		{
			Name:        HandlerFormat,
			Shape:       Shape{KindInt, KindNumberStyle},
			OnFailure:   FailureSkip,
			Description: DescFormat,
			Fn:          formatHandler,
		},
		{
			Name:        HandlerDate,
			Shape:       Shape{KindTime},
			Description: DescDate,
			Fn:          dateHandler,
		},
		{
			Name:        HandlerTwitter,
			Shape:       Shape{KindString},
			Description: DescTwitter,
			Fn:          twitterHandler,
		},
		{
			Name:        HandlerJoin,
			Shape:       Shape{KindStrings, KindStringThunk},
			Description: DescJoin,
			Fn:          joinHandler,
		},
		{
			Name:        HandlerIf,
			Shape:       Shape{KindBoolThunk, KindString},
			Description: DescIf,
			Fn:          ifHandler,
		},
		{
			Name:        HandlerSubject,
			Shape:       Shape{KindSubject},
			Description: DescSubject,
			Fn:          subjectHandler,
		},
		{
			Name:        HandlerSubject,
			Shape:       Shape{KindSubject, KindInt},
			Description: DescSubjectCount,
			Fn:          repeatHandler,
		},
		{
			Name:        HandlerDebug,
			Shape:       Shape{KindAny},
			Description: DescDebug,
			Fn:          debugHandler,
		},
		{
			Name:        HandlerDebug,
			Shape:       Shape{KindAny, KindString},
			Description: DescDebugPath,
			Fn:          debugPathHandler,
		},
		{
			Name:        HandlerYAML,
			Shape:       Shape{KindAny},
			Description: DescYAML,
			Fn:          yamlHandler,
		},
		{
			Name:        HandlerMessage,
			Shape:       Shape{KindString, KindColor},
			Variant:     VariantRich,
			Description: DescMessage,
			Fn:          messageHandler,
		},
		{
			Name:        HandlerMessage,
			Shape:       Shape{KindString, KindStyle},
			Variant:     VariantRich,
			Description: DescMessageStyle,
			Fn:          messageStyleHandler,
		},
	}
}

func formatHandler(call *Call) (Fragment, error) {
	style, _ := call.Arg(1).(NumberStyle)
	text, err := call.Numbers().FormatNumber(call.IntArg(0), style)
	if err != nil {
		return Fragment{}, NewFormatterError(call.Name, err)
	}
	return Computed(text), nil
}

func dateHandler(call *Call) (Fragment, error) {
	return Computed(call.Dates().FormatDate(call.TimeArg(0))), nil
}

func twitterHandler(call *Call) (Fragment, error) {
	return MarkupComputed(internal.TwitterLink(call.StringArg(0))), nil
}

func joinHandler(call *Call) (Fragment, error) {
	return Computed(internal.JoinOr(call.StringsArg(0), call.StringThunkArg(1))), nil
}

func ifHandler(call *Call) (Fragment, error) {
	if guard := call.BoolThunkArg(0); guard() {
		return Computed(call.StringArg(1)), nil
	}
	return Computed(""), nil
}

func subjectHandler(call *Call) (Fragment, error) {
	s, _ := call.Arg(0).(Subject)
	return Computed(internal.SubjectSentence(s.Type, s.Action)), nil
}

func repeatHandler(call *Call) (Fragment, error) {
	s, _ := call.Arg(0).(Subject)
	count := call.IntArg(1)
	if count < 0 {
		return Fragment{}, NewHandlerError(call.Name, errNegativeCount)
	}
	if count > MaxRepeatCount {
		return Fragment{}, NewHandlerError(call.Name, errRepeatTooLarge)
	}
	return Computed(internal.RepeatAction(s.Type, s.Action, int(count))), nil
}

func debugHandler(call *Call) (Fragment, error) {
	return serializeFragment(call, call.Serializer(), call.Arg(0))
}

func debugPathHandler(call *Call) (Fragment, error) {
	sub, err := internal.SelectPath(call.Arg(0), call.StringArg(1))
	if err != nil {
		return Fragment{}, NewSerializationError(call.Name, err)
	}
	return serializeFragment(call, call.Serializer(), sub)
}

func yamlHandler(call *Call) (Fragment, error) {
	return serializeFragment(call, internal.YAMLSerializer{}, call.Arg(0))
}

func serializeFragment(call *Call, s Serializer, v any) (Fragment, error) {
	out, err := s.Serialize(v)
	if err != nil {
		return Fragment{}, NewSerializationError(call.Name, err)
	}
	return Computed(string(out)), nil
}

func messageHandler(call *Call) (Fragment, error) {
	c, _ := call.Arg(1).(Color)
	return StyledComputed(call.StringArg(0), ColorStyle(c)), nil
}

func messageStyleHandler(call *Call) (Fragment, error) {
	override, _ := call.Arg(1).(Style)
	return StyledComputed(call.StringArg(0), override), nil
}
