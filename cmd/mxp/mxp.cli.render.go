package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-mxp"
	"github.com/spf13/cobra"
)

// renderOptions holds the render command flags
type renderOptions struct {
	file     string
	entities []string
	storeDSN string
}

// renderOutput is the structured result of a render run
type renderOutput struct {
	SessionID string           `json:"session_id" yaml:"session_id"`
	Links     []mxp.LinkRecord `json:"links" yaml:"links"`
	Stats     mxp.Stats        `json:"stats" yaml:"stats"`
}

func newCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   CmdNameRender,
		Short: "Run a document through a session and list its links",
		Example: `  # From stdin
  echo '<SEND>north</SEND>' | mxp render

  # With entities and JSON output
  mxp render -f room.txt -e charName=Gandalf -o json

  # Record links to PostgreSQL
  mxp render -f room.txt --store-dsn postgres://localhost/mxp?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, FlagFile, FlagFileShort, FlagDefaultFile, FlagUsageFile)
	cmd.Flags().StringArrayVarP(&opts.entities, FlagEntity, FlagEntityShort, nil, FlagUsageEntity)
	cmd.Flags().StringVar(&opts.storeDSN, FlagStoreDSN, "", FlagUsageStoreDSN)

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadRenderConfig(g.configPath, opts.entities)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := newLogger(g, level, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	doc, err := readInput(opts.file, cmd.InOrStdin())
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgReadFileFailed, err)
	}

	if cfg.SessionID == "" {
		cfg.SessionID = mxp.NewSessionID()
	}
	sessOpts, err := cfg.Options()
	if err != nil {
		return newCLIError(ExitCodeUsageError, ErrMsgLoadConfigFailed, err)
	}

	recorder := mxp.NewRecordingSink()
	var sink mxp.Sink = recorder
	if opts.storeDSN != "" {
		store, err := mxp.NewPostgresLinkStore(mxp.PostgresConfig{
			ConnectionString: opts.storeDSN,
			AutoMigrate:      true,
			Logger:           logger,
		})
		if err != nil {
			return newCLIError(ExitCodeError, ErrMsgStoreFailed, err)
		}
		defer func() { _ = store.Close() }()
		sink = mxp.MultiSink(recorder, mxp.NewStoreSink(store, cfg.SessionID, logger))
	}
	sessOpts = append(sessOpts, mxp.WithLogger(logger), mxp.WithSink(sink))

	sess, err := mxp.NewSession(sessOpts...)
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgSessionFailed, err)
	}
	if err := sess.Feed(string(doc)); err != nil {
		return newCLIError(ExitCodeError, ErrMsgRenderFailed, err)
	}
	if err := sess.Close(); err != nil {
		_, _ = styleWarn.Fprintf(cmd.ErrOrStderr(), FmtWarning, err)
	}

	out := renderOutput{
		SessionID: sess.Context().SessionID(),
		Links:     recorder.Links(),
		Stats:     sess.Stats(),
	}
	w := cmd.OutOrStdout()
	handled, err := writeStructured(w, g.output, out)
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	if !handled {
		writeRenderText(w, cmd.ErrOrStderr(), out)
	}
	return nil
}

// loadRenderConfig reads the config file, if any, and layers --entity flags on top.
func loadRenderConfig(path string, entityFlags []string) (*mxp.Config, error) {
	cfg := mxp.DefaultConfig()
	if path != "" {
		loaded, err := mxp.LoadConfig(path)
		if err != nil {
			return nil, newCLIError(ExitCodeInputError, ErrMsgLoadConfigFailed, err)
		}
		cfg = loaded
	}

	for _, e := range entityFlags {
		name, value, ok := strings.Cut(e, EntitySeparator)
		if !ok || name == "" {
			return nil, newCLIError(ExitCodeUsageError, ErrMsgInvalidEntityFlag, fmt.Errorf("%q", e))
		}
		cfg.Entities[name] = value
	}
	if err := cfg.Validate(); err != nil {
		return nil, newCLIError(ExitCodeUsageError, ErrMsgInvalidEntityFlag, err)
	}
	return cfg, nil
}

func writeRenderText(w, diag io.Writer, out renderOutput) {
	for _, l := range out.Links {
		fmt.Fprintf(w, FmtLinkText, styleAction.Sprint(l.Action), styleHint.Sprint(l.Hint))
	}
	s := out.Stats
	_, _ = styleHint.Fprintf(diag, FmtStatsText, s.Links, s.ParseFailures, s.SequenceErrors, s.UnknownTags, s.Unterminated)
}
