package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gvexport/pkg/format"
	"github.com/matzehuels/gvexport/pkg/render"
)

// formatEntry is the JSON form of a catalog entry.
type formatEntry struct {
	Name        string `json:"name"`
	Token       string `json:"token"`
	Description string `json:"description"`
	InProcess   bool   `json:"in_process"`
}

func newFormatEntry(f format.Format) formatEntry {
	return formatEntry{
		Name:        f.String(),
		Token:       f.Token(),
		Description: f.Description(),
		InProcess:   render.InProcess(f.Token()),
	}
}

// formatsCommand creates the "formats" command group.
func (c *CLI) formatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "formats",
		Aliases: []string{"format"},
		Short:   "Inspect the Graphviz output format catalog",
	}

	cmd.AddCommand(c.formatsListCommand())
	cmd.AddCommand(c.formatsShowCommand())
	cmd.AddCommand(c.formatsResolveCommand())
	cmd.AddCommand(c.formatsPickCommand())

	return cmd
}

// formatsListCommand creates the "formats list" subcommand.
func (c *CLI) formatsListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every output format with its -T flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := format.All()
			if asJSON {
				entries := make([]formatEntry, len(all))
				for i, f := range all {
					entries[i] = newFormatEntry(f)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTable(all))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

// formatsShowCommand creates the "formats show" subcommand.
func (c *CLI) formatsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             "Show one output format",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFormatNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.Parse(args[0])
			if err != nil {
				return err
			}
			e := newFormatEntry(f)
			builtin := "no (needs the dot binary)"
			if e.InProcess {
				builtin = "yes"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, keyValueLine("Name", e.Name))
			fmt.Fprintln(out, keyValueLine("Flag", "-T"+e.Token))
			fmt.Fprintln(out, keyValueLine("Description", e.Description))
			fmt.Fprintln(out, keyValueLine("Built-in", builtin))
			return nil
		},
	}
}

// formatsResolveCommand creates the "formats resolve" subcommand. It prints
// one token per argument, which makes it usable from shell scripts:
//
//	dot -T"$(gvexport formats resolve xdot14)" graph.dot
func (c *CLI) formatsResolveCommand() *cobra.Command {
	var flag bool

	cmd := &cobra.Command{
		Use:               "resolve <name>...",
		Short:             "Print the -T token of one or more formats",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeFormatNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				f, err := format.Parse(name)
				if err != nil {
					return err
				}
				token, err := format.Resolve(f)
				if err != nil {
					return err
				}
				if flag {
					token = "-T" + token
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flag, "flag", false, "print the full -T flag instead of the bare token")
	return cmd
}

// formatsPickCommand creates the "formats pick" subcommand.
func (c *CLI) formatsPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a format interactively and print its -T token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(NewFormatListModel(format.All()),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("format picker: %w", err)
			}
			m := final.(FormatListModel)
			if m.Selected == nil {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Selected.Token())
			return nil
		},
	}
}

// completeFormatNames completes catalog names for shell completion.
func completeFormatNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, f := range format.All() {
		if strings.HasPrefix(f.String(), strings.ToLower(toComplete)) {
			names = append(names, f.String()+"\t"+f.Description())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
