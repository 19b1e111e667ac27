package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundify/internal/core/services"
)

// newPromptCommand renders a variant's prompt offline. It needs no
// configuration and never contacts a provider.
func newPromptCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt <variant>",
		Short: "Render the prompt a request body would produce",
		Long:  "Reads a JSON request body from --file or stdin and prints the prompt for the named variant.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := services.VariantByName(args[0])
			if err != nil {
				return err
			}
			q, err := readQuery(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			prompt, err := services.NewRecommender(nil, nil).Preview(v, q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Request body file (defaults to stdin)")
	return cmd
}
