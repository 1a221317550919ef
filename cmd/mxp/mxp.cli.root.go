package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCmdRoot creates the root command for mxp.
func NewCmdRoot(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   CLIName,
		Short: CLIShort,
		Long: `mxp reads text carrying MXP markup, as sent by MUD servers, and shows
the clickable links its SEND tags produce.

  mxp render -f room.txt --entity charName=Gandalf
  mxp parse '<SEND "tell Zugg " PROMPT>'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Global flags
	cmd.PersistentFlags().StringP(FlagConfig, FlagConfigShort, "", FlagUsageConfig)
	cmd.PersistentFlags().StringP(FlagOutput, FlagOutputShort, FlagDefaultOutput, FlagUsageOutput)
	cmd.PersistentFlags().Bool(FlagNoColor, false, FlagUsageNoColor)
	cmd.PersistentFlags().BoolP(FlagVerbose, FlagVerboseShort, false, FlagUsageVerbose)

	cmd.SetVersionTemplate(VersionTemplate)

	cmd.AddCommand(newCmdParse())
	cmd.AddCommand(newCmdRender())
	cmd.AddCommand(newCmdVersion())

	return cmd
}

// globalOptions are the persistent flags every subcommand reads
type globalOptions struct {
	configPath string
	output     string
	noColor    bool
	verbose    bool
}

func readGlobalOptions(cmd *cobra.Command) (*globalOptions, error) {
	opts := &globalOptions{}
	opts.configPath, _ = cmd.Flags().GetString(FlagConfig)
	opts.output, _ = cmd.Flags().GetString(FlagOutput)
	opts.noColor, _ = cmd.Flags().GetBool(FlagNoColor)
	opts.verbose, _ = cmd.Flags().GetBool(FlagVerbose)

	switch opts.output {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
	default:
		return nil, newCLIError(ExitCodeUsageError, ErrMsgInvalidFormat, fmt.Errorf("%q", opts.output))
	}

	if opts.noColor {
		color.NoColor = true
	}
	return opts, nil
}

// newLogger writes human-readable logs to stderr. --verbose lowers the level to debug.
func newLogger(opts *globalOptions, level zapcore.Level, stderr io.Writer) *zap.Logger {
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	if opts.noColor {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stderr), level)
	return zap.New(core)
}
