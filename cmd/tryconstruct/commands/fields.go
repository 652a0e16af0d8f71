package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func fieldsCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the top-level fields a document type reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := lookupKind(name, nil)
			if err != nil {
				return &exitError{code: ExitError, err: err}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(k.fields, "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "type", "t", "signup", "document type (signup, user, address)")
	return cmd
}
