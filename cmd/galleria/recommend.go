// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/recommend"
)

type recommendFlags struct {
	seed  int
	user  int
	likes []int
	topK  int
}

func newRecommendCmd(opts *options) *cobra.Command {
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print ranked recommendations as JSON",
		Long: `Rank the catalog for one query and print the response envelope.

With --seed the ranking follows the seed's similarity row, boosted by 0.3 per
liked item. Without a seed, liked items are averaged and anything the user
already interacted with is scaled down. A query with neither exits with code 2.`,
		Example: `  galleria recommend --seed 12
  galleria recommend --seed 12 --like 3 --like 40 --top-k 5
  galleria recommend --user 7
  galleria recommend --like 3,40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, opts, buildQuery(cmd, flags))
		},
	}

	cmd.Flags().IntVar(&flags.seed, "seed", 0, "seed item id")
	cmd.Flags().IntVar(&flags.user, "user", 0, "user id whose stored likes and interactions apply")
	cmd.Flags().IntSliceVar(&flags.likes, "like", nil, "explicitly liked item id (repeatable)")
	cmd.Flags().IntVarP(&flags.topK, "top-k", "k", 0, "number of results (default: recommend.default_k)")

	return cmd
}

// buildQuery maps flags to a query. Unset --seed and --user stay absent so
// that 0 remains a valid id.
//
//nolint:gocritic // hugeParam: flags are read once
func buildQuery(cmd *cobra.Command, flags recommendFlags) recommend.Query {
	q := recommend.Query{
		ExplicitLikes: flags.likes,
		TopK:          flags.topK,
	}
	if cmd.Flags().Changed("seed") {
		q.SeedItem = recommend.IntPtr(flags.seed)
	}
	if cmd.Flags().Changed("user") {
		q.UserID = recommend.IntPtr(flags.user)
	}
	return q
}

func runRecommend(cmd *cobra.Command, opts *options, q recommend.Query) error {
	ctx := cmd.Context()

	rt, err := opts.openRuntime(ctx, q.UserID != nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.engine.Recommend(ctx, q)
	out := cmd.OutOrStdout()
	if err != nil {
		var data interface{}
		requestID := q.RequestID
		if result != nil {
			data = result
			requestID = result.RequestID
		}
		if printErr := printJSON(out, models.NewErrorResponse(err, data, requestID)); printErr != nil {
			return printErr
		}
		code := 1
		if errors.Is(err, models.ErrNoSignal) {
			code = 2
		}
		return &exitError{code: code, err: err}
	}

	return printJSON(out, models.NewSuccessResponse(result, result.RequestID, result.Latency))
}
