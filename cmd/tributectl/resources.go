// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/tributestream/pkg/cmsquery"
	"github.com/taibuivan/tributestream/pkg/tributeclient"
)

// listFlags maps command-line flags onto a query descriptor.
type listFlags struct {
	page     int
	pageSize int
	sort     []string
	populate []string
	filters  []string
}

func (flags *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "records per page")
	cmd.Flags().StringSliceVar(&flags.sort, "sort", nil, "sort entries, e.g. name:asc")
	cmd.Flags().StringSliceVar(&flags.populate, "populate", nil, "relations to populate")
	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "filter as field=value or field:$op=value")
}

func (flags *listFlags) query() (cmsquery.Query, error) {
	query := cmsquery.Query{
		Pagination: cmsquery.Pagination{Page: flags.page, PageSize: flags.pageSize},
		Sort:       flags.sort,
		Populate:   flags.populate,
	}
	for _, raw := range flags.filters {
		field, operator, value, err := parseFilter(raw)
		if err != nil {
			return cmsquery.Query{}, err
		}
		query.Where(field, operator, value)
	}
	return query, nil
}

// # Funeral homes

func (app *cli) funeralHomesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "funeral-homes",
		Aliases: []string{"fh"},
		Short:   "Read funeral homes",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List funeral homes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := flags.query()
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			page, err := client.FuneralHomes().List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return app.print(page)
		},
	}
	flags.bind(list)

	var populate []string
	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one funeral home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			home, err := client.FuneralHomes().Get(cmd.Context(), args[0], cmsquery.Query{Populate: populate})
			if err != nil {
				return err
			}
			return app.print(home)
		},
	}
	get.Flags().StringSliceVar(&populate, "populate", nil, "relations to populate")

	cmd.AddCommand(list, get)
	return cmd
}

// # Tributes

func (app *cli) tributesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tributes",
		Short: "Read and manage tributes",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List tributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := flags.query()
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			page, err := client.Tributes().List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return app.print(page)
		},
	}
	flags.bind(list)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one tribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}
			tribute, err := client.Tributes().Get(cmd.Context(), args[0], cmsquery.Query{Populate: []string{"owner"}})
			if err != nil {
				return err
			}
			return app.print(tribute)
		},
	}

	var input struct {
		slug        string
		description string
		status      string
	}
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tribute; the slug is derived from NAME unless --slug is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := tributeclient.TributeInput{Name: &args[0]}
			if input.slug != "" {
				body.Slug = &input.slug
			}
			if input.description != "" {
				body.Description = &input.description
			}
			if input.status != "" {
				body.Status = &input.status
			}

			return app.signedIn(cmd.Context(), func(client *tributeclient.Client, _ *tributeclient.Session) error {
				created, err := client.Tributes().Create(cmd.Context(), body)
				if err != nil {
					return err
				}
				return app.print(created)
			})
		},
	}
	create.Flags().StringVar(&input.slug, "slug", "", "explicit slug")
	create.Flags().StringVar(&input.description, "description", "", "description")
	create.Flags().StringVar(&input.status, "status", "", "draft, published or archived")

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.signedIn(cmd.Context(), func(client *tributeclient.Client, _ *tributeclient.Session) error {
				deleted, err := client.Tributes().Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return app.print(map[string]any{"data": deleted})
			})
		},
	}

	cmd.AddCommand(list, get, create, remove)
	return cmd
}
