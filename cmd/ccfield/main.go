package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/always-cache/ccfield"
	"github.com/always-cache/ccfield/recorder"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	portFlag           int
	originFlag         string
	addrFlag           string
	hostFlag           string
	configFlag         string
	dbFilenameFlag     string
	dbDriverFlag       string
	modeFlag           string
	watchFlag          bool
	otlpEndpointFlag   string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&originFlag, "origin", "", "Origin URL to proxy to (overrides addr and host)")
	flag.StringVar(&addrFlag, "addr", "", "Origin IP address to proxy to")
	flag.StringVar(&hostFlag, "host", "", "Hostname of origin")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&configFlag, "config", "", "YAML config file with origin and rules")
	flag.StringVar(&dbFilenameFlag, "db", "memory", "Observation DB: sqlite file name ('memory' for in-memory db) or postgres DSN")
	flag.StringVar(&dbDriverFlag, "db-driver", recorder.DriverSQLite, "Observation DB driver: sqlite or pgx")
	flag.StringVar(&modeFlag, "mode", "", "normalize (default) or observe")
	flag.BoolVar(&watchFlag, "watch", false, "Reload rules when the config file changes")
	flag.StringVar(&otlpEndpointFlag, "otlp-endpoint", "", "OTLP/HTTP traces endpoint URL (tracing disabled if empty)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage:\n  %s [flags]\n  %s inspect [-field cache-control|age|expires] VALUE...\n\nFlags:\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	if version == "" {
		version = "DEV"
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "inspect" {
		setupLogging(false, "")
		os.Exit(inspect(os.Args[2:], os.Stdout))
	}

	flag.Parse()
	setupLogging(verbosityTraceFlag, logFilenameFlag)

	// file config is overridden by flags
	var fileConfig ccfield.FileConfig
	if configFlag != "" {
		var err error
		if fileConfig, err = ccfield.LoadConfig(configFlag); err != nil {
			log.Fatal().Err(err).Msg("Could not load config")
		}
	}
	if originFlag == "" && addrFlag == "" {
		originFlag = fileConfig.Origin
	}
	if hostFlag == "" {
		hostFlag = fileConfig.Host
	}
	mode := fileConfig.Mode
	if modeFlag != "" {
		var err error
		if mode, err = ccfield.ParseMode(modeFlag); err != nil {
			log.Fatal().Err(err).Msg("Invalid mode")
		}
	}

	// set up observation storage
	dbFilename := dbFilenameFlag
	if dbFilename == "memory" {
		dbFilename = ""
	}
	store, err := recorder.Open(dbDriverFlag, dbFilename)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not open observation DB")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing := otlpEndpointFlag != ""
	if tracing {
		shutdown, err := initTracing(ctx, otlpEndpointFlag, func(err error) {
			log.Warn().Err(err).Msg("Tracing error")
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Could not set up tracing")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	proxyConfig := ccfield.Config{
		Logger:   &log.Logger,
		Rules:    fileConfig.Rules,
		Recorder: store,
		Mode:     mode,
	}

	// get the downstream server address
	if originFlag != "" {
		originUrl, err := url.Parse(originFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Clould not parse url")
		}
		proxyConfig.OriginURL = *originUrl
		proxyConfig.OriginHost = hostFlag
	} else if addrFlag != "" {
		originUrl, err := url.Parse("https://" + addrFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Clould not parse url")
		}
		proxyConfig.OriginURL = *originUrl
		proxyConfig.OriginHost = hostFlag
	} else {
		log.Fatal().Msg("Please specify origin")
	}
	if tracing {
		var base http.RoundTripper
		if proxyConfig.OriginHost != "" {
			base = &http.Transport{TLSClientConfig: &tls.Config{ServerName: proxyConfig.OriginHost}}
		}
		proxyConfig.Transport = tracingTransport(true, base)
	}

	proxy, err := ccfield.New(proxyConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create proxy")
	}
	if watchFlag && configFlag != "" {
		go func() {
			if err := proxy.WatchRules(ctx, configFlag); err != nil {
				log.Warn().Err(err).Msg("Config watch disabled")
			}
		}()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", portFlag),
		Handler: wrapTracingHandler(tracing, "ccfield", proxy.Handler()),
	}
	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info().Msgf("Proxying port %v to %s (with hostname '%s')", portFlag, proxyConfig.OriginURL.String(), proxyConfig.OriginHost)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func setupLogging(trace bool, logFilename string) {
	// set log level
	logLevel := zerolog.DebugLevel
	if trace {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stderr})
	if logFilename != "" {
		if logFileOutput, err := os.OpenFile(logFilename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()
}
