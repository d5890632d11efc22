package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/config"
	"github.com/rshade/catalogctl/internal/forms"
	"github.com/rshade/catalogctl/internal/listview"
)

// newWorkflowsCmd creates the workflows command group. Workflows are shown
// to users as approval processes.
func newWorkflowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflows",
		Aliases: []string{"workflow", "approval-processes"},
		Short:   "Manage approval processes",
	}
	cmd.AddCommand(
		newWorkflowsListCmd(), newWorkflowsShowCmd(), newWorkflowsAddCmd(),
		newWorkflowsEditCmd(), newWorkflowsRepositionCmd(), newWorkflowsRemoveCmd(),
	)
	return cmd
}

func newWorkflowsListCmd() *cobra.Command {
	var params *listParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approval processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			return runList(cmd, "workflows", c.Fetcher(c.WorkflowsCollection()), params)
		},
	}
	params = addListFlags(cmd)
	return cmd
}

func newWorkflowsShowCmd() *cobra.Command {
	var (
		output string
		byName bool
	)
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an approval process",
		Long: `Shows every field of an approval process.

With --by-name the argument is matched against process names and every
match is listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}

			if byName {
				found, findErr := c.FetchWorkflowByName(cmd.Context(), args[0])
				if findErr != nil {
					return fmt.Errorf("finding approval process %q: %w", args[0], findErr)
				}
				items := make([]api.Item, len(found))
				for i, wf := range found {
					items[i] = wf.Item()
				}
				view := listview.View{
					Resource: "workflows",
					Items:    items,
					Meta:     api.Meta{Count: len(items), Limit: len(items)},
				}
				return listview.Render(cmd.OutOrStdout(), view, output)
			}

			wf, err := c.FetchWorkflow(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching approval process %s: %w", args[0], err)
			}
			return renderItem(cmd.OutOrStdout(), wf.Item(), output, time.Now())
		},
	}
	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "Output format: table, json, or ndjson")
	cmd.Flags().BoolVar(&byName, "by-name", false, "look the process up by name instead of ID")
	return cmd
}

// workflowFlags are the editable fields of an approval process.
type workflowFlags struct {
	name        string
	description string
	groups      []string
}

func (f *workflowFlags) register(cmd *cobra.Command, required bool) {
	nameHelp := "process name"
	if required {
		nameHelp += " (required)"
	}
	cmd.Flags().StringVar(&f.name, "name", "", nameHelp)
	cmd.Flags().StringVar(&f.description, "description", "", "process description")
	cmd.Flags().StringArrayVar(&f.groups, "group", nil,
		"approver group as name=uuid (repeatable; comma-separated lists are accepted)")
}

// groupValues splits repeated and comma-separated --group values.
func (f *workflowFlags) groupValues() []string {
	var out []string
	for _, g := range f.groups {
		for _, part := range strings.Split(g, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func newWorkflowsAddCmd() *cobra.Command {
	var flags workflowFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an approval process in the first template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := forms.DecodeWorkflow(forms.Values{
				forms.FieldName:        flags.name,
				forms.FieldDescription: flags.description,
				forms.FieldGroupRefs:   flags.groupValues(),
			})
			if err != nil {
				return err
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			wf, err := c.AddWorkflow(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("creating approval process: %w", err)
			}
			cmd.Printf("Approval process %q created (id %s)\n", wf.Name, wf.ID)
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newWorkflowsEditCmd() *cobra.Command {
	var flags workflowFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an approval process",
		Long: `Changes the name, description or approver groups of an approval process.
Fields whose flags are not given keep their current value. Passing --group
replaces the whole group list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			current, err := c.FetchWorkflow(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching approval process %s: %w", args[0], err)
			}

			values := forms.Values{
				forms.FieldName:        current.Name,
				forms.FieldDescription: current.Description,
				forms.FieldGroupRefs:   forms.FormatGroups(current.GroupRefs),
			}
			if cmd.Flags().Changed("name") {
				values[forms.FieldName] = flags.name
			}
			if cmd.Flags().Changed("description") {
				values[forms.FieldDescription] = flags.description
			}
			if cmd.Flags().Changed("group") {
				values[forms.FieldGroupRefs] = flags.groupValues()
			}
			in, err := forms.DecodeWorkflow(values)
			if err != nil {
				return err
			}

			wf, err := c.UpdateWorkflow(cmd.Context(), args[0], in)
			if err != nil {
				return fmt.Errorf("updating approval process %s: %w", args[0], err)
			}
			cmd.Printf("Approval process %q updated\n", wf.Name)
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newWorkflowsRepositionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reposition ID SEQUENCE",
		Short: "Move an approval process to a new position in its template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sequence, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("sequence must be a number, got %q", args[1])
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			if err = c.RepositionWorkflow(cmd.Context(), args[0], sequence); err != nil {
				return fmt.Errorf("repositioning approval process %s: %w", args[0], err)
			}
			cmd.Printf("Approval process %s moved to position %d\n", args[0], sequence)
			return nil
		},
	}
}

func newWorkflowsRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove one or more approval processes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			what := "approval process " + args[0]
			if len(args) > 1 {
				what = fmt.Sprintf("%d approval processes", len(args))
			}
			ok, err := confirmRemoval(cmd, yes, what)
			if err != nil || !ok {
				return err
			}
			c, err := clientFromConfig()
			if err != nil {
				return err
			}
			if err = c.RemoveWorkflows(cmd.Context(), args); err != nil {
				return err
			}
			cmd.Printf("Removed %s\n", what)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking for confirmation")
	return cmd
}
