package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qraqula/graphmcp/internal/format"
	"github.com/qraqula/graphmcp/internal/highlight"
	"github.com/qraqula/graphmcp/internal/search"
)

func searchCommand(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search subgraph metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.log.Sync() //nolint:errcheck

			results, err := rt.service.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				out, err := format.Value(results)
				if err != nil {
					return err
				}
				return highlight.Fprintln(g.out, out, highlight.JSON, g.color)
			}
			g.printResults(results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	addColorFlag(cmd, g)
	return cmd
}

func (g *globals) printResults(results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(g.out, g.paint(metaStyle, "no active subgraphs found"))
		return
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(g.out)
		}
		name := r.DisplayName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintln(g.out, g.paint(titleStyle, name), g.paint(idStyle, r.ID))
		fmt.Fprintln(g.out, g.paint(metaStyle, fmt.Sprintf("network: %s  signal: %s", orDash(r.Network), orDash(r.Signal))))
		if r.Description != "" {
			fmt.Fprintln(g.out, r.Description)
		}
	}
}

func schemaCommand(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schema <subgraph-id>",
		Short: "Print a subgraph schema as SDL or introspection JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.log.Sync() //nolint:errcheck

			out, err := rt.service.Schema(cmd.Context(), args[0], !asJSON)
			if err != nil {
				return err
			}
			if !asJSON {
				return highlight.Fprintln(g.out, out, highlight.GraphQL, g.color)
			}
			pretty, err := format.JSON(out)
			if err != nil {
				return err
			}
			return highlight.Fprintln(g.out, pretty, highlight.JSON, g.color)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw introspection JSON instead of SDL")
	addColorFlag(cmd, g)
	return cmd
}

func queryCommand(g *globals) *cobra.Command {
	var variables string
	cmd := &cobra.Command{
		Use:   "query <subgraph-id> <query>",
		Short: "Run a GraphQL query against a subgraph",
		Long: `Query sends the document to the subgraph and prints the response body.
GraphQL errors in the response are printed, not treated as failures.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := format.Variables(variables)
			if err != nil {
				return fmt.Errorf("--variables must be a JSON object: %w", err)
			}
			rt, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.log.Sync() //nolint:errcheck

			body, err := rt.service.Query(cmd.Context(), args[0], args[1], vars)
			if err != nil {
				return err
			}
			pretty, err := format.JSON(string(body))
			if err != nil {
				// Not JSON; print what the gateway sent.
				fmt.Fprintln(g.out, string(body))
				return nil
			}
			return highlight.Fprintln(g.out, pretty, highlight.JSON, g.color)
		},
	}
	cmd.Flags().StringVar(&variables, "variables", "", "query variables as a JSON object")
	addColorFlag(cmd, g)
	return cmd
}

func addColorFlag(cmd *cobra.Command, g *globals) {
	cmd.Flags().BoolVar(&g.color, "color", false, "highlight output for a terminal")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
