package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	crawlbackoff "github.com/always-cache/crawl-backoff"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	originFlag         string
	addrFlag           string
	hostFlag           string
	healthFlag         string
	explicitOnlyFlag   bool
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.StringVar(&originFlag, "origin", "", "Origin URL to proxy to (overrides addr and host)")
	flag.StringVar(&addrFlag, "addr", "", "Origin IP address to proxy to")
	flag.StringVar(&hostFlag, "host", "", "Hostname of origin")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&healthFlag, "health", "", "Path of the local health endpoint (disabled if empty)")
	flag.BoolVar(&explicitOnlyFlag, "explicit", false, "Only rewrite requests marked unresolved, not every 404")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilenameFlag != "" {
		if logFileOutput, err := os.OpenFile(logFilenameFlag, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	var config Config
	if configFilenameFlag != "" {
		var err error
		if config, err = getConfig(configFilenameFlag); err != nil {
			log.Fatal().Err(err).Msg("Could not read config")
		}
	}
	applyFlags(&config)

	proxyConfig, err := proxyConfigFrom(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not configure origin")
	}

	backoff := crawlbackoff.New(crawlbackoff.Config{
		Logger:       &log.Logger,
		ExplicitOnly: config.ExplicitOnly,
		Rules:        config.Rules,
	})

	router := newRouter(config, backoff, crawlbackoff.NewProxy(proxyConfig))

	log.Info().Msgf("Proxying port %v to %s (with hostname '%s')", config.Port, proxyConfig.OriginURL.String(), proxyConfig.OriginHost)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", config.Port), router); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// applyFlags overrides the config file with flags given on the command line.
func applyFlags(config *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			config.Port = portFlag
		case "origin":
			config.Origin = originFlag
		case "addr":
			config.Origin = "https://" + addrFlag
		case "host":
			config.Host = hostFlag
		case "health":
			config.Health = healthFlag
		case "explicit":
			config.ExplicitOnly = explicitOnlyFlag
		}
	})
	// origin wins over addr regardless of flag order
	if originFlag != "" {
		config.Origin = originFlag
	}
	if config.Port <= 0 {
		config.Port = portFlag
	}
}

func proxyConfigFrom(config Config) (crawlbackoff.ProxyConfig, error) {
	if config.Origin == "" {
		return crawlbackoff.ProxyConfig{}, fmt.Errorf("please specify origin")
	}
	originURL, err := url.Parse(config.Origin)
	if err != nil {
		return crawlbackoff.ProxyConfig{}, fmt.Errorf("could not parse origin url: %w", err)
	}
	if originURL.Scheme == "" || originURL.Host == "" {
		return crawlbackoff.ProxyConfig{}, fmt.Errorf("origin %q needs a scheme and a host", config.Origin)
	}
	if originURL.Path != "" && originURL.Path != "/" {
		return crawlbackoff.ProxyConfig{}, fmt.Errorf("origins with paths are not supported: %q", config.Origin)
	}
	return crawlbackoff.ProxyConfig{
		OriginURL:  *originURL,
		OriginHost: config.Host,
	}, nil
}

func newRouter(config Config, backoff *crawlbackoff.Backoff, origin http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("requestId", ""))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Sending response to client")
	}))
	r.Use(middleware.Recoverer)

	if config.Health != "" {
		r.Get(config.Health, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(fmt.Sprintf("ok\nversion: %s\n", version)))
		})
	}
	r.Handle("/*", backoff.Middleware(origin))
	return r
}
