package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (r *runner) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.shell(cmd)
		},
	}
}

// shell reads one command per line and runs it through a fresh command
// tree sharing this runner's input, so forms read from the same stream.
func (r *runner) shell(parent *cobra.Command) error {
	fmt.Fprintln(r.out, "ERP Dashboard")
	fmt.Fprintln(r.out, "Type a command (e.g. 'list employees'), 'help' for the list, 'exit' to quit.")
	fmt.Fprintln(r.out, strings.Repeat("-", ruleWidth))

	for {
		fmt.Fprint(r.out, "erp> ")
		line, err := r.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		switch line {
		case "":
			if eof {
				fmt.Fprintln(r.out)
				return nil
			}
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		}

		args, perr := splitArgs(strings.TrimPrefix(line, "/"))
		if perr != nil {
			fmt.Fprintf(r.err, "Error: %v\n", perr)
			continue
		}
		if len(args) > 0 && args[0] == "shell" {
			fmt.Fprintln(r.err, "Error: already in the shell")
			continue
		}

		root := r.root()
		root.SetArgs(args)
		if err := root.ExecuteContext(parent.Context()); err != nil && !errors.Is(err, ErrRejected) {
			fmt.Fprintf(r.err, "Error: %v\n", err)
		}
		if eof {
			return nil
		}
	}
}
