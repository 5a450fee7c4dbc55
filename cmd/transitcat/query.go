package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/passbi/transitcat/internal/facade"
	"github.com/passbi/transitcat/internal/persist"
)

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Load a persisted network and answer a batch of queries from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery()
		},
	}
}

func runQuery() error {
	log.Println("🔎 transitcat query")

	req, err := facade.DecodeRequest(os.Stdin)
	if err != nil {
		return err
	}
	if req.SerializationSettings == nil || req.SerializationSettings.File == "" {
		return fmt.Errorf("serialization_settings.file is required")
	}

	in, err := os.Open(req.SerializationSettings.File)
	if err != nil {
		return fmt.Errorf("%w: %v", persist.ErrIO, err)
	}
	defer in.Close()

	log.Printf("loading blob from %s...", req.SerializationSettings.File)
	cat, renderSettings, router, err := persist.Load(in)
	if err != nil {
		return err
	}

	f := facade.FromPersisted(cat, renderSettings, router)
	if len(req.BaseRequests) > 0 {
		if err := f.Ingest(req.BaseRequests); err != nil {
			return err
		}
	}
	if req.RenderSettings != nil {
		f.SetRenderSettings(req.RenderSettings.ToSettings())
	}

	responses := f.Answer(req.StatRequests)
	if err := facade.EncodeResponses(os.Stdout, responses); err != nil {
		return fmt.Errorf("%w: %v", persist.ErrIO, err)
	}

	log.Println("✅ query complete")
	return nil
}
