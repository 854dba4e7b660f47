package main

import (
	"log"

	"github.com/indigo-web/reqline"
	"github.com/indigo-web/reqline/config"
	"github.com/indigo-web/reqline/handler/website"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "reqline",
		Short:         "Serve static files, answering by the parsed request line only",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return readConfigFile(v, configFile)
		},
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			return serve(newApp(cfg), cfg.Static.Root, cfg.Static.Aliases)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")

	flags := serveFlags()
	root.Flags().AddFlagSet(flags)
	cobra.CheckErr(bindFlags(v, flags))

	root.AddCommand(newParseCmd())

	return root
}

func readConfigFile(v *viper.Viper, path string) error {
	if len(path) == 0 {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}

	log.Printf("using config file %s", v.ConfigFileUsed())
	return nil
}

func newApp(cfg *config.Config) *reqline.App {
	app := reqline.New(cfg.Addr).Tune(cfg)

	switch {
	case len(cfg.TLS.Cert) > 0:
		app.HTTPS(cfg.TLS.Cert, cfg.TLS.Key)
	case cfg.TLS.AutoCert:
		app.AutoHTTPS(cfg.TLS.Domains...)
	}

	return app
}

func serve(app *reqline.App, root string, aliases map[string]string) error {
	handler, err := website.New(root, aliases)
	if err != nil {
		return err
	}

	return app.Serve(handler)
}
