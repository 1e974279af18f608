// Package splice composes text from literals and pluggable fragment handlers.
//
// A builder appends fragments in call order. Literals are copied verbatim;
// computed fragments are produced by handlers looked up by name and by the
// kinds of their arguments:
//
//	engine := splice.MustNew()
//	b := engine.NewBuilder()
//	_ = b.AppendLiteral("I have ")
//	_ = b.Format(38, splice.NumberStyleSpellOut)
//	_ = b.AppendLiteral(" problems")
//	text, err := b.Finalize()
//	// text: "I have thirty-eight problems"
//
// # Handlers
//
// Handlers share a name when their argument shapes differ. The engine picks
// the one whose shape matches the call:
//
//	b.Repeat(splice.Subject{Type: "hater", Action: "hate"}, 5) // subject (subject, int)
//	b.Subject(splice.Subject{Type: "hater", Action: "hate"})   // subject (subject)
//
// Register custom handlers before the first builder is created:
//
//	engine.MustRegister(&splice.Handler{
//	    Name:  "shout",
//	    Shape: splice.Shape{splice.KindString},
//	    Fn: func(call *splice.Call) (splice.Fragment, error) {
//	        return splice.Computed(strings.ToUpper(call.StringArg(0))), nil
//	    },
//	})
//
// Registering a shape that overlaps an existing one under the same name is
// rejected, so every call resolves to at most one handler.
//
// # Rich Text
//
// A RichBuilder attaches a style to every fragment. Literals take the base
// style; handler fragments merge their override onto it:
//
//	rb := engine.NewRichBuilder()
//	_ = rb.AppendLiteral("Hello ")
//	_ = rb.Message("Red", splice.ColorRed)
//	_ = rb.AppendLiteral(" World")
//	rt, _ := rb.Finalize()
//	fmt.Println(splice.RenderANSI(rt))
//
// # Errors
//
// Failures are *cuserr.CustomError values; ErrorKindOf reports which kind.
// Under ErrorPolicyStrict the first failure ends composition, under
// ErrorPolicyCollect all failures are returned together by Finalize.
package splice
