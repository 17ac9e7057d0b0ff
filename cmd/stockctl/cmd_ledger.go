package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockmaster-api/internal/app"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/scheduler"
)

var errInconsistent = errors.New("el índice de stock no coincide con el ledger")

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Operaciones sobre el ledger de movimientos",
}

var ledgerReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reproduce el ledger y compara contra el índice de stock",
	Long: `Recorre el ledger en orden de secuencia, reconstruye las cantidades por
producto/bodega/ubicación y las compara con el índice vivo. Termina con código
distinto de cero si encuentra diferencias o cadenas rotas.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := app.OpenStorage(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := app.NewServices(cfg, st, app.Options{}, log)
		rep, err := scheduler.RunReconcile(ctx, svc.Stock, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "entradas: %d, claves: %d, diferencias: %d, cadenas rotas: %d\n",
			rep.EntriesReplayed, rep.KeysChecked, len(rep.Mismatches), len(rep.ChainBreaks))
		if !rep.Consistent() {
			return errInconsistent
		}
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerReconcileCmd)
}
