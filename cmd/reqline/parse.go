package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/internal/dump"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [request line]",
		Short: "Parse a request line and print it as JSON",
		Long: "Parse a request line and print it as JSON. The line is taken from the argument,\n" +
			"or read from stdin if none given. A missing CRLF is appended to the argument.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)

			if len(args) > 0 {
				raw = []byte(withCRLF(args[0]))
			} else if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return errors.Wrap(err, "read stdin")
			}

			return parseLine(cmd.OutOrStdout(), raw)
		},
	}
}

func parseLine(out io.Writer, raw []byte) error {
	request, err := http.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	text, err := dump.JSON(request)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, text)
	return err
}

func withCRLF(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line
	}

	return strings.TrimSuffix(line, "\n") + "\r\n"
}
