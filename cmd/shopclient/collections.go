package main

import (
	"github.com/spf13/cobra"

	"github.com/mrchypark/shopclient"
	"github.com/mrchypark/shopclient/pkg/model"
	"github.com/mrchypark/shopclient/pkg/typed"
)

func newCollectionsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Collection listings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the collections published to the channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(a *app) error {
				out, err := typed.New[*model.Collection](a.client, shopclient.ResourceCollections).All(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, out, collectionTable)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>...",
		Short: "Get collections by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(a *app) error {
				out, err := fetchMany(cmd.Context(), typed.New[*model.Collection](a.client, shopclient.ResourceCollections), args)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, out, collectionTable)
			})
		},
	}

	products := &cobra.Command{
		Use:   "products <id>",
		Short: "List the products of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(a *app) error {
				c, err := typed.New[*model.Collection](a.client, shopclient.ResourceCollections).One(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out, err := c.Products(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, out, productTable)
			})
		},
	}

	cmd.AddCommand(list, get, products)
	return cmd
}
