package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockmaster-api/internal/app"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

var (
	importEncoding  string
	importSeparator string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Mantenimiento del catálogo de productos",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <archivo.csv>",
	Short: "Importa productos desde CSV (sku_code,name,category,unit_of_measure,reorder_point)",
	Long: `Crea los productos del archivo que aún no existen (por SKU). Las categorías
desconocidas se crean al vuelo. Los archivos exportados desde hojas de cálculo
en Latin-1 o Windows-1252 se convierten con --encoding.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		opts, err := newImportOptions(importEncoding, importSeparator)
		if err != nil {
			return err
		}

		st, err := app.OpenStorage(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := app.NewServices(cfg, st, app.Options{}, log)
		res, err := importCatalog(ctx, st, svc, f, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "creados: %d, existentes: %d, categorías nuevas: %d\n",
			res.Created, res.Skipped, res.Categories)
		for _, e := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("%d filas con error", len(res.Errors))
		}
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&importEncoding, "encoding", "utf-8", "codificación del archivo: utf-8, latin1, windows-1252")
	catalogImportCmd.Flags().StringVar(&importSeparator, "separator", ",", "separador de columnas")
	catalogCmd.AddCommand(catalogImportCmd)
}

type importOptions struct {
	decoder *charmap.Charmap // nil = UTF-8
	comma   rune
}

func newImportOptions(encoding, separator string) (importOptions, error) {
	var opts importOptions
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
	case "latin1", "latin-1", "iso-8859-1":
		opts.decoder = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		opts.decoder = charmap.Windows1252
	default:
		return opts, fmt.Errorf("codificación no soportada: %q", encoding)
	}
	r := []rune(separator)
	if len(r) != 1 {
		return opts, fmt.Errorf("el separador debe ser un solo carácter")
	}
	opts.comma = r[0]
	return opts, nil
}

type importResult struct {
	Created    int
	Skipped    int
	Categories int
	Errors     []string
}

var importColumns = []string{"sku_code", "name", "category", "unit_of_measure", "reorder_point"}

// importCatalog procesa fila por fila; una fila inválida no detiene el resto.
func importCatalog(ctx context.Context, st *app.Storage, svc *app.Services, r io.Reader, opts importOptions) (*importResult, error) {
	if opts.decoder != nil {
		r = transform.NewReader(r, opts.decoder.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = opts.comma
	if cr.Comma == 0 {
		cr.Comma = ','
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range importColumns[:3] {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	res := &importResult{}
	categories := map[string]string{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", line, err))
			continue
		}

		catName := field(rec, "category")
		catID, ok := categories[strings.ToLower(catName)]
		if !ok {
			id, created, err := ensureCategory(ctx, st, svc, catName)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", line, err))
				continue
			}
			if created {
				res.Categories++
			}
			categories[strings.ToLower(catName)] = id
			catID = id
		}

		var reorder int64
		if s := field(rec, "reorder_point"); s != "" {
			reorder, err = strconv.ParseInt(s, 10, 64)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("fila %d: reorder_point %q no es entero", line, s))
				continue
			}
		}

		_, err = svc.Products.Create(ctx, dto.CreateProductRequest{
			SKU:           field(rec, "sku_code"),
			Name:          field(rec, "name"),
			CategoryID:    catID,
			UnitOfMeasure: field(rec, "unit_of_measure"),
			ReorderPoint:  reorder,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", line, err))
		default:
			res.Created++
		}
	}
	return res, nil
}
