package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"dupfinder/config"
	"dupfinder/database"
	"dupfinder/dedup"
	"dupfinder/imageprocessor"
	"dupfinder/logging"
	"dupfinder/scanner"
	"dupfinder/types"

	"github.com/spf13/cobra"
)

func (a *app) newScanCmd() *cobra.Command {
	var (
		options scanner.ScanOptions
		record  bool
		asJSON  bool
	)

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Group the images in a folder into duplicate sets",
		Long:  "Group the images in a folder into duplicate sets.\n\n" +
			"Only the top level of the folder is scanned unless --recursive is given.\n" +
			"Supported extensions: " + strings.Join(imageprocessor.GetSupportedExtensions(), " "),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}
			defer logging.CloseLogger()

			registry := newRegistry()
			paths, stats, err := scanner.CollectImagePaths(registry, options, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				scanner.PrintStartupInfo(out, stats, options)
			}

			start := time.Now()
			result, err := dedup.NewDetector(registry, cfg.Thresholds, log).DetectDuplicates(paths)
			if err != nil {
				return fmt.Errorf("error scanning folder: %w", err)
			}

			if record {
				db, err := database.InitDatabase(cfg.DatabasePath)
				if err != nil {
					return fmt.Errorf("error initializing database: %w", err)
				}
				defer db.Close()
				run, err := database.StoreRun(db, options.FolderPath, result)
				if err != nil {
					return err
				}
				log.WithField("run", run.ID).Info("recorded run")
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(out, result, time.Since(start))
			return nil
		},
	}

	flags := scanCmd.Flags()
	flags.StringVarP(&options.FolderPath, "folder", "f", "", "folder containing the images to compare")
	flags.BoolVarP(&options.Recursive, "recursive", "r", false, "include sub-folders")
	flags.BoolVar(&record, "record", false, "store the result in the run history database")
	flags.BoolVar(&asJSON, "json", false, "print the result as JSON")
	flags.Int("dhash-threshold", 0, "maximum difference hash distance for duplicates")
	flags.Int("phash-threshold", 0, "maximum perceptual hash distance for duplicates")
	a.bind(config.KeyDHashThreshold, flags.Lookup("dhash-threshold"))
	a.bind(config.KeyPHashThreshold, flags.Lookup("phash-threshold"))
	scanCmd.MarkFlagRequired("folder")

	return scanCmd
}

func printResult(w io.Writer, result *types.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "\nScan completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "- Total images processed: %d\n", result.TotalProcessed)
	fmt.Fprintf(w, "- Unique images: %d\n", len(result.UniqueImages))
	fmt.Fprintf(w, "- Duplicates: %d\n", result.TotalDuplicates)

	for i, group := range result.DuplicateGroups {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, group.Original)
		for _, d := range group.Duplicates {
			fmt.Fprintf(w, "   duplicate: %s\n", d)
		}
	}
}
