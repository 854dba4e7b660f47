package main

import (
	"net/http"

	"github.com/indigo-web/reqline/config"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindings maps configuration keys to the flags they may be set with.
var bindings = map[string]string{
	"addr":                 "addr",
	"static.root":          "public-path",
	"net.read-buffer-size": "read-buffer-size",
	"net.read-timeout":     "read-timeout",
	"net.write-timeout":    "write-timeout",
	"net.accept-rate":      "accept-rate",
	"net.accept-burst":     "accept-burst",
	"tls.cert":             "tls-cert",
	"tls.key":              "tls-key",
	"tls.autocert":         "autocert",
	"tls.domains":          "domains",
	"log.requests":         "log-requests",
}

func serveFlags() *pflag.FlagSet {
	defaults := config.Default()
	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.String("addr", defaults.Addr, "address to listen on")
	fs.String("public-path", defaults.Static.Root, "directory to serve files from (env PUBLIC_PATH)")
	fs.Int("read-buffer-size", defaults.NET.ReadBufferSize, "size of the buffer a request is read into")
	fs.Duration("read-timeout", defaults.NET.ReadTimeout, "how long to wait for a request")
	fs.Duration("write-timeout", defaults.NET.WriteTimeout, "how long writing a response may take")
	fs.Float64("accept-rate", defaults.NET.AcceptRate, "connections accepted per second, 0 for unlimited")
	fs.Int("accept-burst", defaults.NET.AcceptBurst, "connections accepted at once above the rate")
	fs.String("tls-cert", "", "PEM certificate file, enables TLS together with --tls-key")
	fs.String("tls-key", "", "PEM private key file")
	fs.Bool("autocert", false, "obtain certificates automatically (self-signed on localhost)")
	fs.StringSlice("domains", nil, "domains autocert is allowed to serve")
	fs.Bool("log-requests", defaults.Log.Requests, "log every parsed request as JSON")

	return fs
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag --%s", flag)
		}
	}

	return errors.Wrap(v.BindEnv("static.root", "PUBLIC_PATH"), "bind PUBLIC_PATH")
}

// loadConfig builds the config out of defaults overridden by the viper's values.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	cfg.Addr = v.GetString("addr")
	cfg.Static.Root = v.GetString("static.root")
	cfg.NET.ReadBufferSize = v.GetInt("net.read-buffer-size")
	cfg.NET.ReadTimeout = v.GetDuration("net.read-timeout")
	cfg.NET.WriteTimeout = v.GetDuration("net.write-timeout")
	cfg.NET.AcceptRate = v.GetFloat64("net.accept-rate")
	cfg.NET.AcceptBurst = v.GetInt("net.accept-burst")
	cfg.TLS.Cert = v.GetString("tls.cert")
	cfg.TLS.Key = v.GetString("tls.key")
	cfg.TLS.AutoCert = v.GetBool("tls.autocert")
	if domains := v.GetStringSlice("tls.domains"); len(domains) > 0 {
		cfg.TLS.Domains = domains
	}

	cfg.Log.Requests = v.GetBool("log.requests")

	// viper lowercases keys, so aliases for paths with capitals can't come from a file
	if aliases := v.GetStringMapString("static.aliases"); len(aliases) > 0 {
		cfg.Static.Aliases = aliases
	}

	for key, value := range v.GetStringMapString("headers") {
		cfg.Headers[http.CanonicalHeaderKey(key)] = value
	}

	switch {
	case len(cfg.Addr) == 0:
		return nil, errors.New("empty address")
	case len(cfg.Static.Root) == 0:
		return nil, errors.New("empty public path")
	case cfg.NET.ReadBufferSize <= 0:
		return nil, errors.Errorf("read buffer size must be positive, got %d", cfg.NET.ReadBufferSize)
	case cfg.NET.ReadTimeout <= 0 || cfg.NET.WriteTimeout <= 0:
		return nil, errors.New("timeouts must be positive")
	case (len(cfg.TLS.Cert) == 0) != (len(cfg.TLS.Key) == 0):
		return nil, errors.New("both --tls-cert and --tls-key must be set")
	case cfg.NET.AcceptRate > 0 && cfg.NET.AcceptBurst <= 0:
		return nil, errors.New("accept burst must be positive when the rate is limited")
	}

	return cfg, nil
}
