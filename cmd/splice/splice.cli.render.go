package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-splice"
	"github.com/spf13/cobra"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	file   string
	dir    string
	format string
}

func newRenderCommand(flags *globalFlags) *cobra.Command {
	cfg := &renderConfig{}
	cmd := &cobra.Command{
		Use:   CmdUseRender,
		Short: CmdShortRender,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runRenderStored(cmd, flags, cfg, args[0])
			}
			return runRender(cmd, flags, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.file, FlagFile, FlagFileShort, "", FlagUsageFile)
	cmd.Flags().StringVarP(&cfg.dir, FlagDir, FlagDirShort, FlagDefaultDir, FlagUsageDir)
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, FlagUsageFormat)
	return cmd
}

func runRender(cmd *cobra.Command, flags *globalFlags, cfg *renderConfig) error {
	if cfg.file == "" {
		return usageError(ErrMsgMissingRecipe, nil)
	}
	if !validRichFormat(cfg.format) {
		return usageError(ErrMsgInvalidFormat, fmt.Errorf(FmtQuoted, cfg.format))
	}

	data, err := readInput(cfg.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	recipe, err := splice.LoadRecipe(data)
	if err != nil {
		return inputError(ErrMsgLoadRecipeFailed, err)
	}

	engine, err := newEngine(cmd, flags)
	if err != nil {
		return err
	}

	rt, err := engine.RunRecipe(recipe)
	if err != nil {
		return renderError(ErrMsgRenderFailed, err)
	}

	rendered, err := renderRich(rt, cfg.format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// runRenderStored runs a recipe saved in the --dir store.
func runRenderStored(cmd *cobra.Command, flags *globalFlags, cfg *renderConfig, name string) error {
	if cfg.file != "" {
		return usageError(ErrMsgFileAndName, nil)
	}
	if !validRichFormat(cfg.format) {
		return usageError(ErrMsgInvalidFormat, fmt.Errorf(FmtQuoted, cfg.format))
	}

	store, err := openStore(cfg.dir)
	if err != nil {
		return err
	}
	defer store.Close()

	engine, err := newEngine(cmd, flags)
	if err != nil {
		return err
	}

	rt, err := engine.RunStored(cmd.Context(), store, name)
	switch {
	case splice.IsErrorKind(err, splice.ErrorKindRecipeNotFound),
		splice.IsErrorKind(err, splice.ErrorKindInvalidRecipe):
		return inputError(ErrMsgLoadRecipeFailed, err)
	case err != nil:
		return renderError(ErrMsgRenderFailed, err)
	}

	rendered, err := renderRich(rt, cfg.format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, inputError(ErrMsgReadStdinFailed, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, inputError(ErrMsgReadFileFailed, err)
	}
	return data, nil
}

func validRichFormat(format string) bool {
	switch format {
	case OutputFormatText, OutputFormatANSI, OutputFormatHTML, OutputFormatJSON, OutputFormatTable:
		return true
	}
	return false
}

// renderRich converts composed text into the requested output format.
func renderRich(rt splice.RichText, format string) (string, error) {
	switch format {
	case OutputFormatANSI:
		return splice.RenderANSI(rt), nil
	case OutputFormatHTML:
		return splice.RenderHTML(rt), nil
	case OutputFormatTable:
		return splice.RenderTable(rt), nil
	case OutputFormatJSON:
		out, err := json.MarshalIndent(rt, JSONPrefix, JSONIndent)
		if err != nil {
			return "", internalError(ErrMsgJSONMarshalFailed, err)
		}
		return string(out), nil
	default:
		return rt.String(), nil
	}
}
