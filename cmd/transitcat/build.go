package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/db"
	"github.com/passbi/transitcat/internal/facade"
	"github.com/passbi/transitcat/internal/persist"
)

func buildCmd() *cobra.Command {
	var fromPostgres bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Ingest a structured envelope from stdin and persist the built network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(fromPostgres)
		},
	}
	cmd.Flags().BoolVar(&fromPostgres, "from-postgres", false,
		"ingest stops/buses/distances from Postgres (DB_* env vars) before the stdin envelope's base_requests")
	return cmd
}

func runBuild(fromPostgres bool) error {
	log.Println("📦 transitcat build")

	req, err := facade.DecodeRequest(os.Stdin)
	if err != nil {
		return err
	}
	if req.SerializationSettings == nil || req.SerializationSettings.File == "" {
		return fmt.Errorf("serialization_settings.file is required")
	}
	if req.RoutingSettings == nil {
		return fmt.Errorf("%w: routing_settings is required", facade.ErrInvalidSettings)
	}

	f := facade.New()

	if fromPostgres {
		log.Println("🐘 connecting to postgres...")
		pool, err := db.GetDB()
		if err != nil {
			return err
		}
		defer db.Close()

		log.Println("importing stops/buses/distances from postgres...")
		if err := catalogue.ImportFromPostgres(context.Background(), pool, f.Catalogue()); err != nil {
			return err
		}
	}

	log.Printf("ingesting %d base requests...", len(req.BaseRequests))
	if err := f.Ingest(req.BaseRequests); err != nil {
		return err
	}

	log.Println("building transport graph and router...")
	if err := f.BuildRouting(req.RoutingSettings.ToSettings()); err != nil {
		return err
	}

	if req.RenderSettings != nil {
		f.SetRenderSettings(req.RenderSettings.ToSettings())
	}

	out, err := os.Create(req.SerializationSettings.File)
	if err != nil {
		return fmt.Errorf("%w: %v", persist.ErrIO, err)
	}
	defer out.Close()

	log.Printf("writing blob to %s...", req.SerializationSettings.File)
	if err := persist.Save(out, f.Catalogue(), f.RenderSettings(), f.Router()); err != nil {
		return err
	}

	log.Println("✅ build complete")
	return nil
}
