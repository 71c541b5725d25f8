// Package cobraext provides Cobra command factories for gridquery schemas.
// It isolates the github.com/spf13/cobra and YAML dependencies so that users
// who don't need CLI integration never import them.
package cobraext

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/relux-works/skill-grid-query/gridquery"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config carries the per-listing defaults and the row id accessor.
type Config[T any] struct {
	Defaults gridquery.Defaults
	ID       func(T) any
}

// LoadRequest reads a request from a YAML or JSON file.
//
// Example file:
//
//	_search: true
//	filters:
//	  groupOp: AND
//	  rules:
//	    - {field: priority, op: ge, data: "5"}
//	sidx: priority
//	sord: desc
//	page: 1
//	rows: 5
func LoadRequest(path string) (*gridquery.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req gridquery.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}
	return &req, nil
}

// ParseRule parses a "field:op:data" flag value. The data part may itself
// contain colons; it may be empty, and for nu/nn it may be omitted.
func ParseRule(s string) (gridquery.FilterRule, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return gridquery.FilterRule{}, fmt.Errorf("invalid filter %q: want field:op:data", s)
	}
	rule := gridquery.FilterRule{Field: parts[0], Operator: parts[1]}
	if len(parts) == 3 {
		rule.Data = parts[2]
	}
	return rule, nil
}

// QueryCommand creates a "q" subcommand that runs the filter/sort/page
// pipeline over the schema's loader and prints one grid page.
// Flags override the matching values of a --request file.
// The --format flag is required and controls output serialization.
func QueryCommand[T any](schema *gridquery.Schema[T], cfg Config[T]) *cobra.Command {
	var (
		requestFile string
		search      bool
		filters     []string
		groupOp     string
		sortField   string
		sortOrder   string
		page        int
		rows        int
		columns     []string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "q",
		Short: "Filter, sort and page records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "compact" {
				return fmt.Errorf("unknown format %q: use \"json\" or \"compact\"", format)
			}

			req := &gridquery.Request{}
			if requestFile != "" {
				loaded, err := LoadRequest(requestFile)
				if err != nil {
					return err
				}
				req = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("filter") {
				group := req.Group()
				group.Rules = group.Rules[:0]
				for _, f := range filters {
					rule, err := ParseRule(f)
					if err != nil {
						return err
					}
					group.Rules = append(group.Rules, rule)
				}
				req.SearchActive = true
			}
			if flags.Changed("search") {
				req.SearchActive = search
			}
			if flags.Changed("group-op") {
				req.Group().Combinator = groupOp
			}
			if flags.Changed("sort") {
				req.SortField = sortField
			}
			if flags.Changed("order") {
				req.SortDirection = sortOrder
			}
			if flags.Changed("page") {
				req.Page = page
			}
			if flags.Changed("rows") {
				req.PageSize = rows
			}
			req.Normalize()

			res, err := schema.Query(req, cfg.Defaults)
			if err != nil {
				return err
			}
			sel, err := schema.NewColumnSelector(columns...)
			if err != nil {
				return err
			}
			id := cfg.ID
			if id == nil {
				id = func(T) any { return nil }
			}
			grid := gridquery.BuildGrid(res, req, sel, id)

			out := cmd.OutOrStdout()
			for _, d := range res.Diagnostics {
				fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", d.String())
			}
			if format == "compact" {
				_, err = out.Write(gridquery.FormatCompact(grid))
				return err
			}
			data, err := json.Marshal(grid)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&requestFile, "request", "", "YAML or JSON request file")
	cmd.Flags().BoolVar(&search, "search", false, "Apply the filter group")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, `Filter rule "field:op:data" (repeatable, implies --search)`)
	cmd.Flags().StringVar(&groupOp, "group-op", "AND", `Rule combinator: "AND" or "OR"`)
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort field path")
	cmd.Flags().StringVar(&sortOrder, "order", "", `Sort direction: "asc" or "desc"`)
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&rows, "rows", 0, "Page size (0 uses the default)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to print (default: all fields)")
	cmd.Flags().StringVar(&format, "format", "", `Output format (required): "json" or "compact"`)
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// FieldsCommand creates a "fields" subcommand listing every resolvable path.
func FieldsCommand[T any](schema *gridquery.Schema[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List filterable and sortable field paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range schema.Fields() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// AddCommands adds both the "q" and "fields" commands as subcommands of parent.
func AddCommands[T any](parent *cobra.Command, schema *gridquery.Schema[T], cfg Config[T]) {
	parent.AddCommand(QueryCommand(schema, cfg))
	parent.AddCommand(FieldsCommand(schema))
}
