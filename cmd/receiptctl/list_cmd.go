package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

func (c *cli) listCmd() *cobra.Command {
	var search, group, kindFlag, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Visores: warehouse, receipts, declarations, companies, documents, dashboard",
	}
	cmd.PersistentFlags().StringVar(&search, "search", "", "Filtro por texto (sin distinguir mayúsculas)")
	cmd.PersistentFlags().StringVar(&group, "group", "", "company | declaration | user | tree | none")

	viewerCmd := func(use, short string, run func(ctx context.Context, token string) (any, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sess, err := c.session()
				if err != nil {
					return err
				}
				out, err := run(cmd.Context(), sess.Token)
				if err != nil {
					return err
				}
				return c.printJSON(out)
			},
		}
	}

	receipts := viewerCmd("receipts", "Una categoría del accountant (--kind)", func(ctx context.Context, token string) (any, error) {
		kind, ok := entity.ParseKind(kindFlag)
		if !ok {
			return nil, fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, kindFlag)
		}
		return c.accountant.Receipts(ctx, token, kind, search, group)
	})
	receipts.Flags().StringVar(&kindFlag, "kind", string(entity.KindMainReceipt), "Categoría")

	companies := viewerCmd("companies", "Empresas registradas (owner)", func(ctx context.Context, token string) (any, error) {
		return c.owner.Companies(ctx, token, search, status)
	})
	companies.Flags().StringVar(&status, "status", "", "active | suspended | inactive")

	cmd.AddCommand(
		viewerCmd("warehouse", "Archivos de almacén (clerk)", func(ctx context.Context, token string) (any, error) {
			return c.clerk.WarehouseFiles(ctx, token, search, group)
		}),
		viewerCmd("declarations", "Declaraciones registradas (clerk)", func(ctx context.Context, token string) (any, error) {
			return c.clerk.ListDeclarations(ctx, token, search)
		}),
		viewerCmd("dashboard", "Las cuatro categorías del accountant", func(ctx context.Context, token string) (any, error) {
			return c.accountant.Dashboard(ctx, token, search)
		}),
		viewerCmd("documents", "Todos los documentos (owner)", func(ctx context.Context, token string) (any, error) {
			return c.owner.Documents(ctx, token, search, group)
		}),
		receipts,
		companies,
	)
	return cmd
}
