package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = ""

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func newVersionCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: CmdShortVersion,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, format)
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, FlagUsageVersion)
	return cmd
}

func runVersion(cmd *cobra.Command, format string) error {
	if format != OutputFormatText && format != OutputFormatJSON {
		return usageError(ErrMsgInvalidFormat, fmt.Errorf(FmtQuoted, format))
	}

	v := versionOutput{Version: buildVersion(), GoVersion: runtime.Version()}
	out := cmd.OutOrStdout()
	if format == OutputFormatJSON {
		data, err := json.MarshalIndent(v, JSONPrefix, JSONIndent)
		if err != nil {
			return internalError(ErrMsgJSONMarshalFailed, err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintf(out, VersionTextTemplate+FmtNewline, v.Version, v.GoVersion)
	return nil
}

// buildVersion prefers the linker-provided version, then the module version
// recorded by go install.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != VersionDevel {
		return info.Main.Version
	}
	return VersionUnknown
}
