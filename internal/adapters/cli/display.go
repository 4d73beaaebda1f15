package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"
)

const ruleWidth = 72

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printHeading(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(out, "  %s\n", strings.ToUpper(title))
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
}

func printCollections(out io.Writer, infos []app.CollectionInfo) {
	tw := newTabWriter(out)
	fmt.Fprintln(tw, "NAME\tTITLE\tRECORD")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Title, info.Singular)
	}
	tw.Flush()
}

func printTable(out io.Writer, t *app.TableResult) {
	printHeading(out, t.Title)
	if len(t.Rows) == 0 {
		fmt.Fprintln(out, "  No records found.")
		fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
		return
	}
	tw := newTabWriter(out)
	fmt.Fprintln(tw, "  "+strings.ToUpper(strings.Join(t.Headers, "\t")))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, "  "+strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(out, "  %d record(s)\n", len(t.Rows))
}

func printRecord(out io.Writer, singular string, id int, fields core.Fields) {
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(out, "  %s #%d\n", singular, id)
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))
	tw := newTabWriter(out)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(tw, "  %s:\t%s\n", core.Humanize(k), fields[k])
	}
	tw.Flush()
}

func printFieldErrors(out io.Writer, errs core.FieldErrors) {
	fmt.Fprintln(out, "Please fix the following:")
	for _, k := range slices.Sorted(maps.Keys(errs)) {
		fmt.Fprintf(out, "  %-14s %s\n", k, errs[k])
	}
}

func printSummary(out io.Writer, s *core.Summary) {
	printHeading(out, "Dashboard")
	tw := newTabWriter(out)
	fmt.Fprintf(tw, "  Employees\t%d\n", s.Employees)
	for _, status := range core.EmployeeStatuses {
		fmt.Fprintf(tw, "    %s\t%d\n", status, s.Headcount[status])
	}
	fmt.Fprintf(tw, "  Open positions\t%d (%d applicants)\n", s.OpenPositions, s.Applicants)
	fmt.Fprintf(tw, "  Upcoming trainings\t%d\n", s.UpcomingTrainings)
	fmt.Fprintf(tw, "  Ledger\t%d entries, debit %s, credit %s, balanced: %t\n",
		s.Ledger.Entries, s.Ledger.TotalDebit.StringFixed(2), s.Ledger.TotalCredit.StringFixed(2), s.Ledger.Balanced)
	fmt.Fprintf(tw, "  Payables\t%d invoices, %s outstanding, %d overdue\n",
		s.Payables.Count, s.Payables.Outstanding.StringFixed(2), s.Payables.Overdue)
	fmt.Fprintf(tw, "  Receivables\t%d invoices, %s outstanding, %d overdue\n",
		s.Receivables.Count, s.Receivables.Outstanding.StringFixed(2), s.Receivables.Overdue)
	fmt.Fprintf(tw, "  Payroll\t%d active, %s per month\n", s.Payroll.ActiveStaff, s.Payroll.MonthlyCost.StringFixed(2))
	tw.Flush()
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
}
