package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/adablock/tool"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the " + tool.MCPName + " tool over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exec, err := a.executor()
			if err != nil {
				return err
			}
			a.logger.Info("serving MCP on stdio")
			return tool.ServeStdio(cmd.Context(), tool.NewServer(exec, version))
		},
	}
}

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session [name]",
		Short: "Start a named session (not supported for Ada blocks)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := a.executor()
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return exec.StartSession(cmd.Context(), name)
		},
	}
}

func newToolsCmd(a *app) *cobra.Command {
	var describe bool

	cmd := &cobra.Command{
		Use:   "tools [query]",
		Short: "Search the tool catalog, or describe its tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := a.executor()
			if err != nil {
				return err
			}
			catalog := tool.NewCatalog(tool.Options{})
			if err := catalog.Register(cmd.Context(), tool.NewBackend(exec)); err != nil {
				return err
			}

			query := tool.Namespace
			if len(args) == 1 {
				query = args[0]
			}
			results, err := catalog.SearchTools(cmd.Context(), query, 10)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range results {
				if !describe {
					fmt.Fprintf(w, "%s\t%s\n", r.ID, r.ShortDescription)
					continue
				}
				doc, err := catalog.GetToolDoc(cmd.Context(), r.ID, tooldoc.DetailFull)
				if err != nil {
					return err
				}
				examples, err := catalog.ListToolExamples(cmd.Context(), r.ID, 5)
				if err != nil {
					return err
				}
				writeDoc(w, r.ID, doc, examples)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&describe, "describe", "d", false, "Print full documentation")
	return cmd
}

func writeDoc(w io.Writer, id string, doc tooldoc.ToolDoc, examples []tooldoc.ToolExample) {
	fmt.Fprintf(w, "%s\n  %s\n", id, doc.Summary)
	if doc.Notes != "" {
		fmt.Fprintf(w, "\n  %s\n", strings.ReplaceAll(doc.Notes, ". ", ".\n  "))
	}
	for _, ex := range examples {
		fmt.Fprintf(w, "\n  Example: %s\n    %v\n", ex.Title, ex.Args)
	}
}
