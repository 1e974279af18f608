package main

import (
	"encoding/json"
	"fmt"

	"github.com/itsatony/go-splice"
	"github.com/spf13/cobra"
)

func newHandlersCommand(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   CmdNameHandlers,
		Short: CmdShortHandlers,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHandlers(cmd, flags, format)
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultTable, FlagUsageHandler)
	return cmd
}

func runHandlers(cmd *cobra.Command, flags *globalFlags, format string) error {
	if format != OutputFormatTable && format != OutputFormatJSON {
		return usageError(ErrMsgInvalidFormat, fmt.Errorf(FmtQuoted, format))
	}

	engine, err := newEngine(cmd, flags)
	if err != nil {
		return err
	}
	infos := engine.Handlers()

	out := cmd.OutOrStdout()
	if format == OutputFormatJSON {
		data, err := json.MarshalIndent(infos, JSONPrefix, JSONIndent)
		if err != nil {
			return internalError(ErrMsgJSONMarshalFailed, err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, splice.RenderHandlers(infos))
	return nil
}
