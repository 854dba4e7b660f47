package config

import "time"

type (
	NET struct {
		// ReadBufferSize is the size of the buffer the request is read into. The request is
		// read just once, so everything that didn't fit is simply never seen.
		ReadBufferSize int
		// ReadTimeout limits how long a freshly accepted connection may stay silent.
		ReadTimeout time.Duration
		// WriteTimeout limits how long writing the response may take.
		WriteTimeout time.Duration
		// AcceptRate limits how many connections per second are accepted. Zero disables
		// the limit.
		AcceptRate float64 `test:"nullable"`
		// AcceptBurst is the number of connections which may be accepted at once, exceeding
		// the AcceptRate. Ignored if AcceptRate is zero.
		AcceptBurst int
	}

	Static struct {
		// Root is the directory files are served from.
		Root string
		// Aliases map request paths to file names relative to the Root.
		Aliases map[string]string
	}

	TLS struct {
		// Cert and Key are paths to the PEM-encoded certificate and private key. Both must
		// be set in order to enable TLS.
		Cert, Key string `test:"nullable"`
		// AutoCert enables obtaining certificates automatically. On localhost a self-signed
		// certificate is generated instead.
		AutoCert bool `test:"nullable"`
		// Domains restricts domains AutoCert is allowed to obtain certificates for.
		Domains []string `test:"nullable"`
	}

	Log struct {
		// Requests enables logging of every parsed request in JSON.
		Requests bool `test:"nullable"`
	}
)

// Config holds settings used across the server.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero values aren't substituted with defaults.
type Config struct {
	Addr   string
	NET    NET
	Static Static
	TLS    TLS
	Log    Log
	// Headers are included into every response, unless explicitly overridden.
	Headers map[string]string
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Addr: "127.0.0.1:8080",
		NET: NET{
			ReadBufferSize: 1024,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			AcceptBurst:    64,
		},
		Static: Static{
			Root: "pub",
			Aliases: map[string]string{
				"/":      "index.html",
				"/hello": "hello.html",
			},
		},
		Log: Log{
			Requests: true,
		},
		Headers: map[string]string{
			"Server": "reqline",
		},
	}
}
