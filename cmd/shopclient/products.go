package main

import (
	"github.com/spf13/cobra"

	"github.com/mrchypark/shopclient"
	"github.com/mrchypark/shopclient/pkg/model"
	"github.com/mrchypark/shopclient/pkg/typed"
)

func newProductsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Product listings",
	}

	var query []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the products published to the channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			return withApp(flags, func(a *app) error {
				products := typed.New[*model.Product](a.client, shopclient.ResourceProducts)
				var out []*model.Product
				if q == nil {
					out, err = products.All(cmd.Context())
				} else {
					out, err = products.Query(cmd.Context(), q)
				}
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, out, productTable)
			})
		},
	}
	list.Flags().StringArrayVarP(&query, "query", "q", nil, "filter as key=value, e.g. product_ids=1,2 (repeatable)")

	get := &cobra.Command{
		Use:   "get <id>...",
		Short: "Get products by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(a *app) error {
				out, err := fetchMany(cmd.Context(), typed.New[*model.Product](a.client, shopclient.ResourceProducts), args)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, out, productTable)
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
