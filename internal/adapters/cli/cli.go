// Package cli is the terminal adapter: one-shot cobra commands over the
// ApplicationService plus an interactive shell that dispatches to them.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"

	"github.com/spf13/cobra"
)

// ErrRejected is returned when a submission fails validation. The field
// errors have already been printed.
var ErrRejected = errors.New("submission rejected")

// Streams are the terminal handles the commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process stdin, stdout and stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type runner struct {
	svc   app.ApplicationService
	in    *bufio.Reader
	out   io.Writer
	err   io.Writer
	clock func() time.Time
}

// NewRootCommand builds the erpctl command tree over svc.
func NewRootCommand(svc app.ApplicationService, streams Streams) *cobra.Command {
	r := &runner{
		svc:   svc,
		in:    bufio.NewReader(streams.In),
		out:   streams.Out,
		err:   streams.Err,
		clock: time.Now,
	}
	return r.root()
}

func (r *runner) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Manage ERP dashboard records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(r.in)
	root.SetOut(r.out)
	root.SetErr(r.err)

	root.AddCommand(
		r.collectionsCmd(),
		r.listCmd(),
		r.showCmd(),
		r.addCmd(),
		r.editCmd(),
		r.deleteCmd(),
		r.validateCmd(),
		r.formCmd(),
		r.exportCmd(),
		r.summaryCmd(),
		r.resetCmd(),
		r.shellCmd(),
	)
	return root
}

func (r *runner) collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the record collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCollections(r.out, r.svc.Collections())
			return nil
		},
	}
}

func addFilterFlags(cmd *cobra.Command, f *core.Filter) {
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVar(&f.Category, "category", "", "exact category (department, account, ...)")
	cmd.Flags().StringVar(&f.Status, "status", "", "exact status")
	cmd.Flags().BoolVar(&f.Fuzzy, "fuzzy", false, "match the search text as a fuzzy subsequence")
}

func (r *runner) listCmd() *cobra.Command {
	var f core.Filter
	cmd := &cobra.Command{
		Use:     "list <collection>",
		Aliases: []string{"ls"},
		Short:   "Show the records of a collection as a table",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.svc.Collection(args[0])
			if err != nil {
				return err
			}
			table, err := c.Table(cmd.Context(), f)
			if err != nil {
				return err
			}
			printTable(r.out, table)
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <collection> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, id, err := r.target(args)
			if err != nil {
				return err
			}
			fields, err := c.Fields(cmd.Context(), id)
			if err != nil {
				return err
			}
			printRecord(r.out, c.Info().Singular, id, fields)
			return nil
		},
	}
}

func (r *runner) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <collection> key=value...",
		Short: "Create a record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.svc.Collection(args[0])
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			res, err := c.Create(cmd.Context(), fields)
			if err != nil {
				return r.rejected(err)
			}
			fmt.Fprintf(r.out, "%s (ID: %d)\n", res.Message, res.ID)
			return nil
		},
	}
}

func (r *runner) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <collection> <id> key=value...",
		Short: "Change fields of a record; fields not named keep their value",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, id, err := r.target(args[:2])
			if err != nil {
				return err
			}
			changes, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			fields, err := c.Fields(cmd.Context(), id)
			if err != nil {
				return err
			}
			for k, v := range changes {
				fields[k] = v
			}
			res, err := c.Update(cmd.Context(), id, fields)
			if err != nil {
				return r.rejected(err)
			}
			fmt.Fprintln(r.out, res.Message)
			return nil
		},
	}
}

func (r *runner) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <collection> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, id, err := r.target(args)
			if err != nil {
				return err
			}
			res, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(r.out, res.Message)
			return nil
		},
	}
}

func (r *runner) validateCmd() *cobra.Command {
	var editingID int
	cmd := &cobra.Command{
		Use:   "validate <collection> key=value...",
		Short: "Check a submission without storing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.svc.Collection(args[0])
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			errs, err := c.Validate(cmd.Context(), fields, editingID)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				printFieldErrors(r.out, errs)
				return ErrRejected
			}
			fmt.Fprintln(r.out, "Submission is valid.")
			return nil
		},
	}
	cmd.Flags().IntVar(&editingID, "id", 0, "validate as an edit of this record")
	return cmd
}

func (r *runner) formCmd() *cobra.Command {
	var editingID int
	cmd := &cobra.Command{
		Use:   "form <collection>",
		Short: "Fill in a record interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.svc.Collection(args[0])
			if err != nil {
				return err
			}
			return r.runForm(cmd.Context(), c, editingID)
		},
	}
	cmd.Flags().IntVar(&editingID, "id", 0, "edit this record instead of creating one")
	return cmd
}

func (r *runner) exportCmd() *cobra.Command {
	var (
		f      core.Filter
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <collection>",
		Short: "Write a collection to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[0] + ".xlsx"
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := r.svc.Export(cmd.Context(), app.ExportRequest{Collection: args[0], Filter: f}, file); err != nil {
				file.Close()
				_ = os.Remove(output)
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "Wrote %s\n", output)
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <collection>.xlsx)")
	return cmd
}

func (r *runner) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard key figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum, err := r.svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(r.out, sum)
			return nil
		},
	}
}

func (r *runner) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [collection]",
		Short: "Restore one collection, or all of them, to the seed data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []app.ResetResult
			if len(args) == 1 {
				c, err := r.svc.Collection(args[0])
				if err != nil {
					return err
				}
				res, err := c.Reset(cmd.Context())
				if err != nil {
					return err
				}
				results = append(results, *res)
			} else {
				var err error
				if results, err = r.svc.ResetAll(cmd.Context()); err != nil {
					return err
				}
			}
			for _, res := range results {
				fmt.Fprintf(r.out, "Restored %s (%d records)\n", res.Collection, res.Records)
			}
			return nil
		},
	}
}

// target resolves "<collection> <id>".
func (r *runner) target(args []string) (app.CollectionService, int, error) {
	c, err := r.svc.Collection(args[0])
	if err != nil {
		return nil, 0, err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return nil, 0, fmt.Errorf("invalid id %q: must be a positive integer", args[1])
	}
	return c, id, nil
}

// rejected prints the field errors of a validation failure.
func (r *runner) rejected(err error) error {
	if fields, ok := core.AsValidationError(err); ok {
		printFieldErrors(r.out, fields)
		return ErrRejected
	}
	return err
}
