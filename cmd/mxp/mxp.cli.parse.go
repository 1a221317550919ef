package main

import (
	"fmt"
	"io"

	"github.com/itsatony/go-mxp"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// tagOutput is the structured form of a parsed tag
type tagOutput struct {
	Name       string       `json:"name" yaml:"name"`
	End        bool         `json:"end" yaml:"end"`
	Canonical  string       `json:"canonical" yaml:"canonical"`
	Attributes []attrOutput `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type attrOutput struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Flag  bool   `json:"flag,omitempty" yaml:"flag,omitempty"`
}

func newCmdParse() *cobra.Command {
	return &cobra.Command{
		Use:   CmdNameParse + " <tag>",
		Short: "Parse one raw tag and show its structure",
		Example: `  mxp parse '<SEND "tell Zugg " PROMPT>'
  mxp parse '</SEND>' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0])
		},
	}
}

func runParse(cmd *cobra.Command, raw string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(g, zapcore.WarnLevel, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	tag, err := mxp.NewParser(logger).Parse(raw)
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgParseFailed, err)
	}

	out := toTagOutput(tag)
	w := cmd.OutOrStdout()
	handled, err := writeStructured(w, g.output, out)
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	if !handled {
		writeTagText(w, out)
	}
	return nil
}

func toTagOutput(tag mxp.Tag) tagOutput {
	out := tagOutput{
		Name:      tag.TagName(),
		End:       tag.IsEnd(),
		Canonical: tag.String(),
	}
	if st, ok := tag.(*mxp.StartTag); ok {
		for _, a := range st.Attributes {
			out.Attributes = append(out.Attributes, attrOutput{Name: a.Name, Value: a.Value, Flag: a.Flag})
		}
	}
	return out
}

func writeTagText(w io.Writer, out tagOutput) {
	_, _ = styleTag.Fprintln(w, out.Canonical)
	positional := 0
	for _, a := range out.Attributes {
		switch {
		case a.Flag:
			fmt.Fprintf(w, FmtAttrFlag, a.Name)
		case a.Name == "":
			fmt.Fprintf(w, FmtAttrPositional, positional, a.Value)
			positional++
		default:
			fmt.Fprintf(w, FmtAttrNamed, a.Name, a.Value)
		}
	}
}
