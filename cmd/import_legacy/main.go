// import_legacy migra un volcado JSON del almacenamiento local del navegador
// (claves users, products_<id>, customers_<id>, sales_<id>) a la base configurada.
//
// Uso: go run ./cmd/import_legacy -file volcado.json [-charset latin1]
// Lee STORE_DRIVER, DATABASE_URL, SQLITE_PATH, etc. igual que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockpro-api/internal/application/legacy"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/store"
	"github.com/jhoicas/stockpro-api/pkg/config"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "ruta del volcado JSON (- para stdin)")
	charset := flag.String("charset", "utf-8", "codificación del volcado: utf-8 | latin1")
	timeout := flag.Duration("timeout", 5*time.Minute, "tiempo máximo de la importación")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "uso: import_legacy -file volcado.json [-charset latin1]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_legacy")

	in, closeIn, err := openInput(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir volcado")
	}
	defer closeIn()

	r, err := decodeCharset(in, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}
	dump, err := legacy.ParseDump(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer volcado")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.Close()

	sum, err := legacy.NewImporter(st.Tx, nil, log).Import(ctx, dump)
	if err != nil {
		log.Error().Err(err).Msg("importación fallida, no se guardó nada")
		return
	}
	log.Info().
		Int("users", sum.Users).
		Int("skipped", sum.Skipped).
		Int("products", sum.Products).
		Int("customers", sum.Customers).
		Int("sales", sum.Sales).
		Msg("importación completada")
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// decodeCharset convierte a UTF-8 los volcados exportados en Latin-1.
func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado %q", charset)
}
