// import_clients da de alta en bloque los clientes de una exportación CSV.
//
// Uso: go run ./cmd/import_clients -company <uuid> -file clientes.csv [-encoding auto|utf-8|latin1] [-dry-run]
// Lee la conexión a PostgreSQL de las mismas variables de entorno que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/facturio/facturio-api/internal/application/billing"
	"github.com/facturio/facturio-api/internal/infrastructure/csvimport"
	"github.com/facturio/facturio-api/internal/infrastructure/postgres"
	"github.com/facturio/facturio-api/pkg/config"
	"github.com/facturio/facturio-api/pkg/logger"
	"github.com/facturio/facturio-api/pkg/validator"
)

func main() {
	var (
		companyID = flag.String("company", "", "ID de la empresa destino")
		file      = flag.String("file", "", "ruta del CSV")
		encoding  = flag.String("encoding", csvimport.EncodingAuto, "auto | utf-8 | latin1 | windows-1252")
		dryRun    = flag.Bool("dry-run", false, "solo valida, no inserta")
	)
	flag.Parse()

	if _, err := uuid.Parse(*companyID); err != nil || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_clients")

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer CSV")
	}
	reqs, rowErrs, err := csvimport.ParseClients(content, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("procesar CSV")
	}
	for _, re := range rowErrs {
		log.Warn().Int("line", re.Line).Str("reason", re.Reason).Msg("fila descartada")
	}

	validate := validator.New()
	valid := reqs[:0]
	for i, req := range reqs {
		if err := validate.Struct(req); err != nil {
			log.Warn().Int("row", i+1).Str("name", req.Name).Str("reason", validator.Message(err)).Msg("fila inválida")
			continue
		}
		valid = append(valid, req)
	}

	if *dryRun {
		log.Info().Int("valid", len(valid)).Int("discarded", len(reqs)-len(valid)+len(rowErrs)).Msg("dry-run terminado")
		return
	}

	ctx := log.WithContext(context.Background())
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := billing.NewClientUseCase(postgres.NewClientRepository(pool))
	created := 0
	for _, req := range valid {
		if _, err := uc.Create(ctx, *companyID, req); err != nil {
			log.Error().Err(err).Str("name", req.Name).Msg("alta de cliente")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("total", len(valid)).Msg("importación terminada")
}
