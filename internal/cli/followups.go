package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/export"
	"github.com/auditlens/auditlens/internal/followup"
	"github.com/auditlens/auditlens/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

func NewCmdFollowUps() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "followups",
		Short: "Work the engagement follow-up register.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(newCmdFollowUpsList())
	cmd.AddCommand(newCmdFollowUpsUpdate())
	cmd.AddCommand(newCmdFollowUpsComment())
	cmd.AddCommand(newCmdFollowUpsExport())
	return cmd
}

type FollowUpsListOptions struct {
	GlobalOptions

	Severity    string
	Disposition string
	Source      string
	Assignee    string
	Search      string
	SortKey     string
	Descending  bool
	Page        int
	Output      string
}

type followUpFilterInput struct {
	Severity    string `validate:"severity"`
	Disposition string `validate:"disposition"`
}

var legalSortKeys = []string{
	string(followup.SortSeverity),
	string(followup.SortCreatedAt),
	string(followup.SortDescription),
	string(followup.SortDisposition),
	string(followup.SortAssignee),
}

func newCmdFollowUpsList() *cobra.Command {
	o := &FollowUpsListOptions{
		GlobalOptions: DefaultGlobalOptions(),
		SortKey:       string(followup.SortCreatedAt),
		Descending:    true,
	}
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List follow-up items with filtering, sorting and paging.",
		Example:      "list --severity high --source tb_diagnostics --sort severity",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *FollowUpsListOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Severity, "severity", o.Severity, "Filter by severity (high, medium, low)")
	fs.StringVar(&o.Disposition, "disposition", o.Disposition, "Filter by disposition (open, resolved, waived)")
	fs.StringVar(&o.Source, "source", o.Source, "Filter by originating tool")
	fs.StringVar(&o.Assignee, "assignee", o.Assignee, "Filter by assignee")
	fs.StringVar(&o.Search, "search", o.Search, "Free-text search over description and notes")
	fs.StringVar(&o.SortKey, "sort", o.SortKey, fmt.Sprintf("Sort key. One of: (%v)", legalSortKeys))
	fs.BoolVar(&o.Descending, "desc", o.Descending, "Sort descending")
	fs.IntVar(&o.Page, "page", o.Page, "Zero-based page index (25 rows per page)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *FollowUpsListOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	v := validation.NewValidator()
	if err := v.Struct(followUpFilterInput{Severity: o.Severity, Disposition: o.Disposition}); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	if !funk.Contains(legalSortKeys, o.SortKey) {
		return fmt.Errorf("sort key must be one of %v", legalSortKeys)
	}
	if o.Page < 0 {
		return fmt.Errorf("page must not be negative")
	}
	return validateOutputFormat(o.Output)
}

func (o *FollowUpsListOptions) Run(ctx context.Context, args []string) error {
	items, err := o.Client().ListFollowUps(ctx)
	if err != nil {
		return fmt.Errorf("listing follow-ups: %w", err)
	}

	view := followup.NewView(items)
	view.SetFilters(followup.Filters{
		Severity:    api.Severity(o.Severity),
		Disposition: api.Disposition(o.Disposition),
		ToolSource:  o.Source,
		AssignedTo:  o.Assignee,
		Search:      o.Search,
	})
	view.SetSort(followup.SortKey(o.SortKey), !o.Descending)
	view.SetPage(o.Page)

	visible := view.Visible()
	if handled, err := printStructured(o.Output, visible); handled {
		return err
	}

	fmt.Printf("page %d/%d, %d of %d item(s) match\n\n", view.Page()+1, view.PageCount(), len(visible), view.TotalMatching())
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ID\tSEVERITY\tDISPOSITION\tTOOL\tASSIGNEE\tDESCRIPTION")
	for _, item := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", item.ID, item.Severity, item.Disposition, item.ToolSource, item.AssignedTo, item.Description)
	}
	w.Flush()
	return nil
}

type FollowUpsUpdateOptions struct {
	GlobalOptions

	Notes       string
	Disposition string
	Assignee    string
	Output      string

	notesSet       bool
	dispositionSet bool
	assigneeSet    bool
}

func newCmdFollowUpsUpdate() *cobra.Command {
	o := &FollowUpsUpdateOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:          "update ID",
		Short:        "Update a follow-up item's notes, disposition or assignee.",
		Example:      "update f-12 --disposition resolved --notes \"support obtained\"",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.notesSet = cmd.Flags().Changed("notes")
			o.dispositionSet = cmd.Flags().Changed("disposition")
			o.assigneeSet = cmd.Flags().Changed("assign")
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *FollowUpsUpdateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Notes, "notes", o.Notes, "Replace the item's notes")
	fs.StringVar(&o.Disposition, "disposition", o.Disposition, "Set the disposition (open, resolved, waived)")
	fs.StringVar(&o.Assignee, "assign", o.Assignee, "Assign the item")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *FollowUpsUpdateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !o.notesSet && !o.dispositionSet && !o.assigneeSet {
		return fmt.Errorf("nothing to update: pass --notes, --disposition or --assign")
	}
	v := validation.NewValidator()
	if err := v.Struct(followUpFilterInput{Disposition: o.Disposition}); err != nil {
		return fmt.Errorf("invalid disposition: %w", err)
	}
	return validateOutputFormat(o.Output)
}

func (o *FollowUpsUpdateOptions) Run(ctx context.Context, args []string) error {
	update := api.FollowUpUpdate{}
	if o.notesSet {
		update.Notes = &o.Notes
	}
	if o.dispositionSet {
		disposition := api.StringToDisposition(o.Disposition)
		update.Disposition = &disposition
	}
	if o.assigneeSet {
		update.AssignedTo = &o.Assignee
	}

	item, err := o.Client().UpdateFollowUp(ctx, args[0], update)
	if err != nil {
		return fmt.Errorf("updating follow-up: %w", err)
	}

	if handled, err := printStructured(o.Output, item); handled {
		return err
	}
	fmt.Printf("%s: %s [%s/%s]\n", item.ID, item.Description, item.Severity, item.Disposition)
	return nil
}

type FollowUpsCommentOptions struct {
	GlobalOptions

	Author string
	Body   string
}

func newCmdFollowUpsComment() *cobra.Command {
	o := &FollowUpsCommentOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:          "comment ID",
		Short:        "Add a threaded comment to a follow-up item.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *FollowUpsCommentOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Author, "author", o.Author, "Comment author (defaults to the token's subject)")
	fs.StringVar(&o.Body, "body", o.Body, "Comment body")
}

func (o *FollowUpsCommentOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Body == "" {
		return fmt.Errorf("--body is required")
	}
	return nil
}

func (o *FollowUpsCommentOptions) Run(ctx context.Context, args []string) error {
	item, err := o.Client().AddFollowUpComment(ctx, args[0], o.Author, o.Body)
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}
	fmt.Printf("%s now has %d comment(s)\n", item.ID, len(item.Comments))
	return nil
}

type FollowUpsExportOptions struct {
	GlobalOptions

	Format   string
	FilePath string
}

func newCmdFollowUpsExport() *cobra.Command {
	o := &FollowUpsExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Format:        "csv",
	}
	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Export the follow-up register to a local CSV or XLSX file.",
		Example:      "export --format xlsx --file followups.xlsx",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *FollowUpsExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Format, "format", o.Format, "Export format (csv, xlsx)")
	fs.StringVarP(&o.FilePath, "file", "f", o.FilePath, "Destination path")
}

func (o *FollowUpsExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains([]string{"csv", "xlsx"}, o.Format) {
		return fmt.Errorf("format must be csv or xlsx")
	}
	if o.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	return nil
}

func (o *FollowUpsExportOptions) Run(ctx context.Context, args []string) error {
	items, err := o.Client().ListFollowUps(ctx)
	if err != nil {
		return fmt.Errorf("listing follow-ups: %w", err)
	}

	file, err := os.Create(o.FilePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", o.FilePath, err)
	}
	defer file.Close()

	switch o.Format {
	case "csv":
		err = export.WriteFollowUpsCSV(file, items)
	case "xlsx":
		err = export.WriteFollowUpsXLSX(file, items)
	}
	if err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	fmt.Printf("wrote %d item(s) to %s\n", len(items), o.FilePath)
	return nil
}
