package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
	"github.com/ewilliams-labs/soundify/internal/core/services"
	"github.com/ewilliams-labs/soundify/internal/logging"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var (
		file    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <variant>",
		Short: "Run one recommendation against the configured provider",
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

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			completion, err := newCompletionProvider(cfg.Completion)
			if err != nil {
				return err
			}
			return runRecommend(cmd, completion, v, q, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Request body file (defaults to stdin)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the response body as JSON")
	return cmd
}

func runRecommend(cmd *cobra.Command, completion ports.CompletionProvider, v services.Variant, q domain.RecommendationQuery, jsonOut bool) error {
	reqCtx := logging.ContextWithRequestID(cmd.Context(), logging.GenerateRequestID())

	list, err := services.NewRecommender(completion, nil).Recommend(reqCtx, v, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := json.MarshalIndent(map[string]domain.RecommendationList{"recommendations": list}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	items, err := list.Items()
	if err != nil {
		return fmt.Errorf("recommendations are not track objects (try --json): %w", err)
	}
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), item.TrackName, item.ArtistName, item.Genre})
	}
	fmt.Fprintln(out, renderTable(recommendationColumns, rows, fmt.Sprintf("%d %s", len(rows), v.Name())))
	return nil
}
