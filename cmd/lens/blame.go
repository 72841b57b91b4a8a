package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lens/internal/blame"
	"lens/internal/extract"
	"lens/internal/lang"
)

var (
	blameElement  string
	blameRevision string
)

var blameCmd = &cobra.Command{
	Use:   "blame <file>",
	Short: "Attribute ownership of a file or a single element",
	Long: `Resolve per-line git authorship onto structural elements.

Without --element the whole file is attributed and key hunks are listed.
With --element the named function, class or qualified Class.method is
attributed; if it cannot be found the output falls back to file level and
says so.

Examples:
  lens blame src/server.py
  lens blame src/server.py --element=Server.run
  lens blame src/server.py --element=handle_request --rev=HEAD~5`,
	Args: cobra.ExactArgs(1),
	Run:  runBlame,
}

func init() {
	blameCmd.Flags().StringVar(&blameElement, "element", "", "Function, class or Class.method to attribute")
	blameCmd.Flags().StringVar(&blameRevision, "rev", "", "Revision to blame (default: working tree)")
	rootCmd.AddCommand(blameCmd)
}

func runBlame(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	file := args[0]
	ctx := newContext()

	lines, err := blame.CollectLines(ctx, cfg.RepoRoot, file, blameRevision)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting blame: %v\n", err)
		os.Exit(1)
	}

	var elements []extract.Element
	if tag, ok := lang.LanguageFromExtension(filepath.Ext(file)); ok {
		source, err := os.ReadFile(filepath.Join(cfg.RepoRoot, file))
		if err == nil {
			fe := extract.NewExtractor(lang.DefaultRegistry()).Extract(ctx, file, source, tag)
			elements = fe.Elements
		}
	}

	attr := blame.Resolve(file, lines, elements, blameElement, cfg.Blame)
	printJSON(attr)
}
