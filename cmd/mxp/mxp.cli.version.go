package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X main.Version=..."
var (
	Version   = VersionUnknown
	Commit    = VersionUnknown
	BuildTime = VersionUnknown
)

// versionOutput represents structured output for version
type versionOutput struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   CmdNameVersion,
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobalOptions(cmd)
			if err != nil {
				return err
			}

			v := versionOutput{
				Version:   Version,
				Commit:    Commit,
				BuildTime: BuildTime,
				GoVersion: runtime.Version(),
			}
			w := cmd.OutOrStdout()
			handled, err := writeStructured(w, g.output, v)
			if err != nil {
				return newCLIError(ExitCodeError, ErrMsgWriteOutputFailed, err)
			}
			if !handled {
				fmt.Fprintf(w, FmtVersionText, v.Version, v.Commit, v.BuildTime, v.GoVersion)
			}
			return nil
		},
	}
}
