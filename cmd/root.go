// Package cmd wires the dupfinder command line.
package cmd

import (
	"dupfinder/config"
	"dupfinder/imageprocessor"
	"dupfinder/imageprocessor/cvloader"
	"dupfinder/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the state shared by the subcommands of one root command
type app struct {
	cfgFile string
	v       *viper.Viper
}

// NewRootCmd builds the dupfinder command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "dupfinder",
		Short: "Find visually duplicate images using perceptual hashing",
		Long: `Find visually duplicate images using perceptual hashing:
  dupfinder scan --folder ./photos
  dupfinder serve
  dupfinder history
  `,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./dupfinder.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("logfile", "", "also write logs to this file")
	flags.String("database", "", "path to the run history database")
	a.bind(config.KeyDebug, flags.Lookup("debug"))
	a.bind(config.KeyLogFile, flags.Lookup("logfile"))
	a.bind(config.KeyDatabase, flags.Lookup("database"))

	rootCmd.AddCommand(a.newScanCmd(), a.newServeCmd(), a.newHistoryCmd())
	return rootCmd
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// setup reads the configuration and builds the logger for a command run
func (a *app) setup() (*config.Config, *logrus.Logger, error) {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.SetupLogger(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		log.WithField("file", used).Debug("using config file")
	}
	return cfg, log, nil
}

func newRegistry() *imageprocessor.ImageLoaderRegistry {
	registry := imageprocessor.NewImageLoaderRegistry()
	cvloader.Register(registry)
	return registry
}
