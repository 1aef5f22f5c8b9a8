package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zogtools/zog/pkg/zotero"
)

// newCollectionsCmd creates the collections subcommand, which prints the
// library's collection tree. Useful for discovering valid --collection-path
// values before exporting.
func newCollectionsCmd(lib *libraryOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the library's collection tree",
		Long: `List every collection in the library, indented by hierarchy, with its key.

Each line shows a collection name followed by its key. Join the names along
a branch with "/" to build a --collection-path value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollections(cmd, lib)
		},
	}
}

func runCollections(cmd *cobra.Command, lib *libraryOpts) error {
	ctx := cmd.Context()

	resolved, err := lib.resolve()
	if err != nil {
		return err
	}
	store, err := newStore(resolved)
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, "Fetching collections")
	spin.Start()
	collections, err := store.Collections(ctx)
	spin.Stop()
	if err != nil {
		return err
	}

	if len(collections) == 0 {
		printWarning("Library %s has no collections", resolved.id)
		return nil
	}

	children := make(map[string][]zotero.Collection)
	for _, c := range collections {
		parent := string(c.Data.ParentCollection)
		children[parent] = append(children[parent], c)
	}
	for _, siblings := range children {
		slices.SortFunc(siblings, func(a, b zotero.Collection) int {
			return strings.Compare(a.Data.Name, b.Data.Name)
		})
	}

	printTree(children, "", 0)
	return nil
}

// printTree prints the collections under parent, indented by depth.
func printTree(children map[string][]zotero.Collection, parent string, depth int) {
	for _, c := range children[parent] {
		indent := strings.Repeat("  ", depth)
		fmt.Println(indent + StyleValue.Render(c.Data.Name) + " " + StyleDim.Render(c.Key))
		printTree(children, c.Key, depth+1)
	}
}
