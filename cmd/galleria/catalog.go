// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/similarity"
)

func newItemCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "item <id>",
		Short:   "Print the catalog entry of one item",
		Example: "  galleria item 12",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("item", args[0])
			if err != nil {
				return err
			}

			space, err := similarity.Load(cmd.Context(), opts.cfg.LoadConfig())
			if err != nil {
				return err
			}
			defer space.Close()

			out := cmd.OutOrStdout()
			item, ok := space.Metadata(id)
			if !ok {
				err := models.NewError(models.KindOutOfRange, "item",
					fmt.Sprintf("item %d outside [0, %d)", id, space.ItemCount()), nil)
				if printErr := printJSON(out, models.NewErrorResponse(err, nil, "")); printErr != nil {
					return printErr
				}
				return &exitError{code: 1, err: err}
			}
			return printJSON(out, models.NewSuccessResponse(item, "", 0))
		},
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// itemPage is the items command payload.
type itemPage struct {
	Items    []models.Item `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
	HasNext  bool          `json:"has_next"`
}

func newItemsCmd(opts *options) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the catalog one page at a time",
		Example: `  galleria items
  galleria items --page 3 --page-size 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := similarity.Load(cmd.Context(), opts.cfg.LoadConfig())
			if err != nil {
				return err
			}
			defer space.Close()

			return printJSON(cmd.OutOrStdout(), models.NewSuccessResponse(listItems(space, page, pageSize), "", 0))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", defaultPageSize, fmt.Sprintf("items per page (1-%d)", maxPageSize))
	return cmd
}

// catalog is the read side of the similarity space used for listing.
type catalog interface {
	ItemCount() int
	Metadata(itemID int) (models.Item, bool)
}

// listItems returns one page of the catalog in id order. page clamps to at
// least 1 and size to [1, maxPageSize]; a page past the end is empty.
func listItems(c catalog, page, size int) itemPage {
	page = max(page, 1)
	size = min(max(size, 1), maxPageSize)
	total := c.ItemCount()

	out := itemPage{Items: []models.Item{}, Page: page, PageSize: size, Total: total}
	if page-1 >= (total+size-1)/size {
		return out
	}
	start := (page - 1) * size
	end := min(start+size, total)
	for id := start; id < end; id++ {
		if item, ok := c.Metadata(id); ok {
			out.Items = append(out.Items, item)
		}
	}
	out.HasNext = end < total
	return out
}

// catalogStats is the stats command payload.
type catalogStats struct {
	ItemCount int              `json:"item_count"`
	Dim       int              `json:"dim"`
	Model     similarity.Stats `json:"model"`
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog size and the training summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := similarity.Load(cmd.Context(), opts.cfg.LoadConfig())
			if err != nil {
				return err
			}
			defer space.Close()

			return printJSON(cmd.OutOrStdout(), models.NewSuccessResponse(catalogStats{
				ItemCount: space.ItemCount(),
				Dim:       space.Dim(),
				Model:     space.Stats(),
			}, "", 0))
		},
	}
}

// parseID parses a non-negative integer argument.
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s id %q is not an integer", name, arg)
	}
	if id < 0 {
		return 0, fmt.Errorf("%s id must be non-negative, got %d", name, id)
	}
	return id, nil
}
