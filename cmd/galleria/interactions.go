// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/preference"
)

// interactionResult is printed after a write. ReadBackend is the backend
// recommend and user read from; only badger sees the write.
type interactionResult struct {
	Action      string `json:"action"`
	UserID      int    `json:"user_id"`
	ItemID      int    `json:"item_id"`
	Rating      *int   `json:"rating,omitempty"`
	ReadBackend string `json:"read_backend"`
}

// writeFunc applies one write to the durable log.
type writeFunc func(ctx context.Context, log *preference.BadgerLog, userID, itemID int) error

func newLikeCmd(opts *options) *cobra.Command {
	return newWriteCmd(opts, "like", "Store a like for an item", 2,
		func(ctx context.Context, log *preference.BadgerLog, userID, itemID int) error {
			return log.Like(ctx, userID, itemID)
		})
}

func newUnlikeCmd(opts *options) *cobra.Command {
	return newWriteCmd(opts, "unlike", "Remove the stored interaction for an item", 2,
		func(ctx context.Context, log *preference.BadgerLog, userID, itemID int) error {
			return log.Unlike(ctx, userID, itemID)
		})
}

func newRateCmd(opts *options) *cobra.Command {
	cmd := newWriteCmd(opts, "rate", "Store an explicit rating (1 likes, anything else only interacts)", 3, nil)
	cmd.Use = "rate <user> <item> <rating>"
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("rating %q is not an integer", args[2])
		}
		return runWrite(cmd, opts, "rate", args, &rating,
			func(ctx context.Context, log *preference.BadgerLog, userID, itemID int) error {
				return log.Rate(ctx, userID, itemID, rating)
			})
	}
	return cmd
}

const writeNote = "Writes go to the BadgerDB log at preferences.badger_path. Only the badger\n" +
	"read backend sees them; other backends log a warning."

func newWriteCmd(opts *options, action, short string, nargs int, write writeFunc) *cobra.Command {
	return &cobra.Command{
		Use:     action + " <user> <item>",
		Short:   short,
		Long:    short + ".\n\n" + writeNote,
		Example: fmt.Sprintf("  galleria %s 7 12", action),
		Args:    cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, opts, action, args, nil, write)
		},
	}
}

func runWrite(cmd *cobra.Command, opts *options, action string, args []string, rating *int, write writeFunc) error {
	userID, err := parseID("user", args[0])
	if err != nil {
		return err
	}
	itemID, err := parseID("item", args[1])
	if err != nil {
		return err
	}

	log, err := preference.OpenBadgerLog(preference.BadgerOptions{
		Path:       opts.cfg.Preferences.BadgerPath,
		SyncWrites: true,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := log.Close(); cerr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "close interaction log:", cerr)
		}
	}()

	if err := write(cmd.Context(), log, userID, itemID); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	backend := opts.cfg.Preferences.Backend
	if backend != preference.BackendBadger {
		logging.Warn().
			Str("action", action).
			Str("read_backend", backend).
			Str("badger_path", opts.cfg.Preferences.BadgerPath).
			Msg("Interaction stored in the badger log, which the configured read backend does not consult")
	}
	return printJSON(cmd.OutOrStdout(), models.NewSuccessResponse(interactionResult{
		Action:      action,
		UserID:      userID,
		ItemID:      itemID,
		Rating:      rating,
		ReadBackend: backend,
	}, "", 0))
}

// userHistory is the user command payload. Records is only filled by the
// badger backend, which stores one record per item.
type userHistory struct {
	UserID       int                 `json:"user_id"`
	Backend      string              `json:"backend"`
	Liked        []int               `json:"liked"`
	Interactions []int               `json:"interactions"`
	Records      []preference.Record `json:"records,omitempty"`
}

func newUserCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "user <id>",
		Short:   "Print the liked and interacted items of a user",
		Long:    "Print what the configured preference backend resolves for a user.",
		Example: "  galleria user 7",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			h, err := preference.OpenHandle(ctx, opts.cfg.PreferenceConfig())
			if err != nil {
				return err
			}
			defer h.Close()

			liked, err := h.Resolver.LikedItems(ctx, userID)
			if err != nil {
				return fmt.Errorf("liked items: %w", err)
			}
			all, err := h.Resolver.AllInteractions(ctx, userID)
			if err != nil {
				return fmt.Errorf("interactions: %w", err)
			}

			history := userHistory{
				UserID:       userID,
				Backend:      h.Backend,
				Liked:        sortedIDs(liked),
				Interactions: sortedIDs(all),
			}
			if h.Badger != nil {
				if history.Records, err = h.Badger.UserRecords(ctx, userID); err != nil {
					return fmt.Errorf("user records: %w", err)
				}
			}
			return printJSON(cmd.OutOrStdout(), models.NewSuccessResponse(history, "", 0))
		},
	}
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
