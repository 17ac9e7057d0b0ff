// stockctl tareas operativas de StockMaster: migraciones, datos de ejemplo,
// reconciliación del ledger e importación de catálogo.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

var (
	cfg *config.Config
	log zerolog.Logger

	storageFlag string
)

var rootCmd = &cobra.Command{
	Use:           "stockctl",
	Short:         "Herramientas de operación de StockMaster",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		if storageFlag != "" {
			c.Inventory.StorageDriver = storageFlag
		}
		cfg = c
		log = logger.New(logger.Config{
			Env:     c.App.Env,
			Level:   c.App.LogLevel,
			Service: "stockctl",
			Output:  os.Stderr,
		}).Zerolog()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "driver de almacenamiento (memory|postgres); por defecto INVENTORY_STORAGE")

	rootCmd.AddCommand(migrateCmd, seedCmd, ledgerCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
