package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lens/internal/extract"
	"lens/internal/query"
)

var elementsQuery string

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List extracted elements, filtered and sorted by a query string",
	Long: `Scan the repository and list every extracted function, method and class.

The --query flag takes &-separated terms with the operators
= == != > < >= <= ~= and min..max ranges, plus sort=[-]field, limit=N
and offset=N directives.

Queryable fields: name, kind, file, language, lines, complexity,
nesting, decorators.

Examples:
  lens elements --query='complexity>10'
  lens elements --query='lines>50&complexity>10&sort=-complexity&limit=3'
  lens elements --query='name~=^handle&kind=function'
  lens elements --query='decorators=cached'`,
	Run: runElements,
}

func init() {
	elementsCmd.Flags().StringVar(&elementsQuery, "query", "", "Filter/sort/limit query string")
	rootCmd.AddCommand(elementsCmd)
}

// queryElement pairs an element with its file's language for querying.
type queryElement struct {
	extract.Element
	Language string `json:"language"`
}

func elementField(e queryElement, field string) (interface{}, bool) {
	switch field {
	case "name":
		return e.Name, true
	case "kind":
		return string(e.Kind), true
	case "file":
		return e.File, true
	case "language":
		return e.Language, true
	case "lines":
		return e.LineCount, true
	case "complexity":
		return e.Complexity, true
	case "nesting":
		return e.NestingDepth, true
	case "decorators":
		if e.Decorators == nil {
			return nil, true
		}
		return e.Decorators, true
	}
	return nil, false
}

func runElements(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	q, err := query.ParseQuery(elementsQuery)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid query: %v\n", err)
		os.Exit(1)
	}

	res, err := runScanWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}

	var records []queryElement
	for _, fe := range res.Files {
		for _, el := range fe.Elements {
			records = append(records, queryElement{Element: el, Language: string(fe.Language)})
		}
	}

	opts := query.Options{CaseInsensitive: true, MatchAnyListElement: true}
	cache := query.NewRegexCacheWithLogger(newLogger(cfg.Logging))
	env := query.Evaluate(records, q, elementField, opts, cache)
	printJSON(env)
}
