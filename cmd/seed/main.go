// seed aplica las migraciones, crea las cuentas por defecto y el catálogo de ejemplo,
// y opcionalmente importa un catálogo desde una hoja de cálculo (.xlsx) o un CSV.
//
// Uso: go run ./cmd/seed [-catalog productos.xlsx] [-latin1]
// Columnas: nombre, descripcion, precio, stock, categoria, imagen (la primera fila es el encabezado).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-api/internal/application/seed"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/tienda-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "ruta del catálogo a importar (.xlsx o .csv)")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel en Windows)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productUC := usecase.NewProductUseCase(
		productRepo,
		postgres.NewStockMovementRepository(pool),
		postgres.NewTxRunner(pool),
		log.Component("productos"),
	)
	seeder := seed.NewSeeder(userRepo, productRepo, productUC, log.Component("seed"))
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("datos iniciales")
	}

	if *catalogPath == "" {
		return
	}
	items, err := readCatalogFile(*catalogPath, *latin1)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", *catalogPath).Msg("leer catálogo")
	}
	owner, err := seeder.Owner(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dueño del catálogo")
	}
	n, err := seeder.Import(ctx, owner, items)
	if err != nil {
		log.Fatal().Err(err).Int("importados", n).Msg("importar catálogo")
	}
	log.Info().Int("productos", n).Str("archivo", *catalogPath).Msg("catálogo importado")
}

func readCatalogFile(path string, latin1 bool) ([]seed.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return infraxlsx.ReadCatalog(f)
	case ".csv":
		var r io.Reader = f
		if latin1 {
			r = decodeLatin1(f)
		}
		return readCatalogCSV(r)
	default:
		return nil, fmt.Errorf("formato no soportado: %s", filepath.Ext(path))
	}
}

func decodeLatin1(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

// readCatalogCSV acepta ',' o ';' como separador (Excel en español exporta con ';').
func readCatalogCSV(r io.Reader) ([]seed.CatalogItem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	items, err := seed.ParseCatalogRows(rows)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return items, nil
}
