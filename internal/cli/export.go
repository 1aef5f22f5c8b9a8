package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zogtools/zog/internal/config"
	zerrors "github.com/zogtools/zog/pkg/errors"
	"github.com/zogtools/zog/pkg/export"
	"github.com/zogtools/zog/pkg/graph"
	"github.com/zogtools/zog/pkg/zotero"
)

// Output formats accepted by --format.
const (
	formatGraphML = "graphml"
	formatDOT     = "dot"
)

// apiKeyEnv names the environment variable consulted when --api-key and the
// config file leave the key empty.
const apiKeyEnv = "ZOTERO_API_KEY"

// exportOpts holds the command-line flags for the export run.
type exportOpts struct {
	library         libraryOpts
	collectionPath  string
	outputPath      string
	format          string
	strictHierarchy bool
}

// libraryOpts identifies the target library and how to reach it. The fields
// are shared by the root command and the collections subcommand.
type libraryOpts struct {
	id         string
	libType    string
	apiKey     string
	local      bool
	configPath string
}

// resolve merges flag values with the config file and environment, then
// validates the result. Precedence: flags, then ZOTERO_API_KEY, then file.
// Validation happens before any network access.
func (l libraryOpts) resolve() (libraryOpts, error) {
	path := l.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	var cfg config.Config
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return libraryOpts{}, err
		}
		cfg = c
	}

	if l.id == "" {
		l.id = cfg.LibraryID
	}
	if cfg.LibraryType != "" && l.libType == zotero.LibraryUser {
		l.libType = cfg.LibraryType
	}
	if l.apiKey == "" {
		l.apiKey = os.Getenv(apiKeyEnv)
	}
	if l.apiKey == "" {
		l.apiKey = cfg.APIKey
	}
	l.local = l.local || cfg.Local

	if l.id == "" {
		return libraryOpts{}, zerrors.New(zerrors.ErrCodeInvalidInput, "the --library-id flag is required")
	}
	if l.libType != zotero.LibraryUser && l.libType != zotero.LibraryGroup {
		return libraryOpts{}, zerrors.New(zerrors.ErrCodeInvalidInput, "--library-type must be %q or %q, got %q", zotero.LibraryUser, zotero.LibraryGroup, l.libType)
	}
	if !l.local && l.apiKey == "" {
		return libraryOpts{}, zerrors.New(zerrors.ErrCodeInvalidInput, "the --api-key flag is required unless --local is set")
	}
	return l, nil
}

// newStore builds the Zotero client for the resolved library options.
func newStore(l libraryOpts) (*zotero.Client, error) {
	opts := []zotero.Option{zotero.WithLibraryType(l.libType)}
	if l.local {
		opts = append(opts, zotero.WithLocal())
	} else {
		opts = append(opts, zotero.WithAPIKey(l.apiKey))
	}
	return zotero.New(l.id, opts...)
}

// runExport executes the full pipeline and writes the graph file.
func runExport(cmd *cobra.Command, opts *exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	lib, err := opts.library.resolve()
	if err != nil {
		return err
	}
	if opts.format != formatGraphML && opts.format != formatDOT {
		return zerrors.New(zerrors.ErrCodeInvalidInput, "--format must be %q or %q, got %q", formatGraphML, formatDOT, opts.format)
	}
	outPath, err := filepath.Abs(opts.outputPath)
	if err != nil {
		return zerrors.Wrap(zerrors.ErrCodeInvalidInput, err, "resolve output path %s", opts.outputPath)
	}

	store, err := newStore(lib)
	if err != nil {
		return err
	}

	logger.Infof("Exporting %q from %s library %s", opts.collectionPath, lib.libType, lib.id)
	prog := newProgress(logger)

	g, err := export.Run(ctx, store, export.Options{
		CollectionPath:  opts.collectionPath,
		StrictHierarchy: opts.strictHierarchy,
		Logger:          logger.Debugf,
	})
	if err != nil {
		printError("Export failed: %s", zerrors.UserMessage(err))
		return err
	}
	prog.done(fmt.Sprintf("Assembled %d nodes and %d edges", g.NodeCount(), g.EdgeCount()))

	switch opts.format {
	case formatDOT:
		err = graph.ExportDOT(g, outPath)
	default:
		err = graph.ExportGraphML(g, outPath)
	}
	if err != nil {
		return err
	}

	printSuccess("Wrote %s graph", opts.format)
	printStats(g.NodeCount(), g.EdgeCount())
	printFile(outPath)
	return nil
}

// defaultConfigHint returns the default config location for flag help text.
func defaultConfigHint() string {
	if p, err := config.DefaultPath(); err == nil {
		return p
	}
	return "~/.config/zog/config.toml"
}
