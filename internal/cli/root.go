package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zogtools/zog/pkg/buildinfo"
)

// Execute runs the zog CLI and returns an error if the command fails.
//
// The root command itself performs the export (the tool has one job); the
// collections subcommand lists the library's collection tree. Logging goes
// to stderr at info level, or debug level with --verbose (-v), and the
// logger travels via the command context.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := &exportOpts{}

	root := &cobra.Command{
		Use:   "zog",
		Short: "Export a Zotero collection as a knowledge graph",
		Long: `zog exports a Zotero collection into a directed graph of items connected
by their cross-references (dc:relation), serialized as GraphML or DOT.

The collection is addressed by a slash-separated name path, e.g.
"Projects/PRIME VFV/Datasets".`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	lib := &opts.library
	root.PersistentFlags().StringVar(&lib.id, "library-id", "", "Zotero library ID")
	root.PersistentFlags().StringVar(&lib.libType, "library-type", "user", "library type: user or group")
	root.PersistentFlags().StringVar(&lib.apiKey, "api-key", "", "Zotero API key (required unless --local; also read from ZOTERO_API_KEY)")
	root.PersistentFlags().BoolVar(&lib.local, "local", false, "use the local API of a running Zotero client instead of the Web API")
	root.PersistentFlags().StringVar(&lib.configPath, "config", "", "config file (default: "+defaultConfigHint()+")")

	root.Flags().StringVar(&opts.collectionPath, "collection-path", "", "slash-separated collection name path, e.g. \"Projects/Research/Data\"")
	root.Flags().StringVar(&opts.outputPath, "output-path", "", "destination file for the graph")
	root.Flags().StringVar(&opts.format, "format", formatGraphML, "output format: graphml or dot")
	root.Flags().BoolVar(&opts.strictHierarchy, "strict-hierarchy", false, "resolve each path segment only among children of the previous one")
	_ = root.MarkFlagRequired("collection-path")
	_ = root.MarkFlagRequired("output-path")

	root.AddCommand(newCollectionsCmd(lib))

	return root.ExecuteContext(ctx)
}
