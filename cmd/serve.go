package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"dupfinder/config"
	"dupfinder/database"
	"dupfinder/dedup"
	"dupfinder/logging"
	"dupfinder/server"
	"dupfinder/signalhandler"

	"github.com/spf13/cobra"
)

func (a *app) newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload and delete-duplicates HTTP endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}
			defer logging.CloseLogger()

			var db *sql.DB
			if cfg.Server.RecordRuns {
				db, err = database.InitDatabase(cfg.DatabasePath)
				if err != nil {
					return fmt.Errorf("error initializing database: %w", err)
				}
				defer db.Close()
			}

			detector := dedup.NewDetector(newRegistry(), cfg.Thresholds, log)
			srv, err := server.New(detector, cfg.Server, db, log)
			if err != nil {
				return err
			}

			ctx, stop := signalhandler.SetupHandler(context.Background(), log)
			defer stop()
			return srv.Run(ctx)
		},
	}

	flags := serveCmd.Flags()
	flags.StringP("addr", "a", "", "listen address")
	flags.String("upload-dir", "", "scratch directory for uploaded images")
	flags.Bool("record", false, "store every upload result in the run history database")
	a.bind(config.KeyAddr, flags.Lookup("addr"))
	a.bind(config.KeyUploadDir, flags.Lookup("upload-dir"))
	a.bind(config.KeyRecordRuns, flags.Lookup("record"))

	return serveCmd
}
