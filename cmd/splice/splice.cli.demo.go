package main

import (
	"fmt"
	"io"
	"time"

	"github.com/itsatony/go-splice"
	"github.com/spf13/cobra"
)

// demoConfig holds parsed demo command configuration
type demoConfig struct {
	date   string
	format string
}

var (
	demoHater        = splice.Subject{Type: "hater", Action: "hate"}
	demoPlayer       = splice.Subject{Type: "player", Action: "play"}
	demoHeartBreaker = splice.Subject{Type: "heart-breaker", Action: "break"}
	demoFaker        = splice.Subject{Type: "faker", Action: "fake"}
)

func newDemoCommand(flags *globalFlags) *cobra.Command {
	cfg := &demoConfig{}
	cmd := &cobra.Command{
		Use:   CmdNameDemo,
		Short: CmdShortDemo,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, flags, cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.date, FlagDate, "", FlagUsageDate)
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, FlagUsageFormat)
	return cmd
}

func runDemo(cmd *cobra.Command, flags *globalFlags, cfg *demoConfig) error {
	if !validRichFormat(cfg.format) {
		return usageError(ErrMsgInvalidFormat, fmt.Errorf(FmtQuoted, cfg.format))
	}
	now := time.Now()
	if cfg.date != "" {
		t, err := time.Parse(time.RFC3339, cfg.date)
		if err != nil {
			return usageError(ErrMsgInvalidDate, err)
		}
		now = t
	}

	engine, err := newEngine(cmd, flags)
	if err != nil {
		return err
	}

	lines := []func(b *splice.Builder){
		func(b *splice.Builder) {
			b.AppendLiteral(DemoIntro)
			b.Format(DemoAge, splice.NumberStyleSpellOut)
			b.AppendLiteral(DemoPeriod)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoDate)
			b.Date(now)
			b.AppendLiteral(DemoPeriod)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoFollow)
			b.Twitter(DemoTwitter)
			b.AppendLiteral(DemoPeriod)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoCrew)
			b.Join(demoCrew, splice.LazyString(DemoEmptyCrew))
			b.AppendLiteral(DemoPeriod)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoCrew)
			b.AppendLiteral(splice.Formatted(demoCrew, splice.LazyString(DemoEmptyCrew)))
			b.AppendLiteral(DemoPeriod)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoRocks)
			b.If(splice.Lazy(true), DemoRocksLiteral)
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoSing)
			for i, s := range []splice.Subject{demoPlayer, demoHater, demoHeartBreaker, demoFaker} {
				if i > 0 {
					b.AppendLiteral(DemoSpace)
				}
				b.Repeat(s, DemoRepeatCount)
			}
		},
		func(b *splice.Builder) {
			b.AppendLiteral(DemoData)
			b.Debug(demoFaker)
			b.AppendLiteral(DemoPeriod)
		},
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		b := engine.NewBuilder()
		line(b)
		text, err := b.Finalize()
		if err != nil {
			return renderError(ErrMsgRenderFailed, err)
		}
		fmt.Fprintln(out, text)
	}

	return writeDemoRich(out, engine, cfg.format)
}

func writeDemoRich(out io.Writer, engine *splice.Engine, format string) error {
	rb := engine.NewRichBuilder()
	rb.Message(DemoColorRed, splice.ColorRed)
	rb.AppendLiteral(DemoSpace)
	rb.Message(DemoColorWhite, splice.ColorWhite)
	rb.AppendLiteral(DemoSpace)
	rb.Message(DemoColorBlue, splice.ColorBlue)
	rt, err := rb.Finalize()
	if err != nil {
		return renderError(ErrMsgRenderFailed, err)
	}

	rendered, err := renderRich(rt, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, DemoSectionRich)
	fmt.Fprintln(out, rendered)
	return nil
}
