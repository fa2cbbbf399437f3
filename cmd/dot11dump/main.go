package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/danmuck/dot11dec/internal/capture"
	"github.com/danmuck/dot11dec/internal/config"
	"github.com/danmuck/dot11dec/internal/logging"
	"github.com/danmuck/dot11dec/internal/report"
	"github.com/rs/zerolog/log"
)

type options struct {
	pcapPath   string
	hexPath    string
	configPath string
	jsonOut    bool
	withBody   bool
	workers    int
}

func bindFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.pcapPath, "pcap", "", "pcap or pcapng capture (raw 802.11 or radiotap); "+
		"frame types use the decoder's numbering (00 control, 01 management), not IEEE, "+
		"and the integrity field is the wire FCS read big-endian")
	fs.StringVar(&o.hexPath, "hex", "", "file with one hex encoded frame per line (- for stdin)")
	fs.StringVar(&o.configPath, "config", "", "optional TOML config")
	fs.BoolVar(&o.jsonOut, "json", false, "write one JSON summary per frame to stdout")
	fs.BoolVar(&o.withBody, "body", false, "include frame bodies in JSON output")
	fs.IntVar(&o.workers, "workers", runtime.NumCPU(), "parallel decoders")
	return o
}

func main() {
	o := bindFlags(flag.CommandLine)
	flag.Parse()

	logging.ConfigureRuntime()

	if err := run(o.pcapPath, o.hexPath, o.configPath, o.jsonOut, o.withBody, o.workers); err != nil {
		fmt.Fprintf(os.Stderr, "dot11dump: %v\n", err)
		os.Exit(1)
	}
}

func run(pcapPath, hexPath, configPath string, jsonOut, withBody bool, workers int) error {
	cfg := config.DefaultConfig()
	logger := log.Logger
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.FromFile(cfg.Log.Level, cfg.Log.JSON)
	}
	opts := capture.Options{
		FCSPresent:    cfg.Capture.FCSPresent,
		MaxFrameBytes: cfg.Capture.MaxFrameBytes,
	}

	src, closeSrc, err := openSource(pcapPath, hexPath, opts)
	if err != nil {
		return err
	}
	defer closeSrc()

	reporterOpts := []report.Option{report.WithBody(withBody || cfg.Server.IncludeBody)}
	if jsonOut {
		reporterOpts = append(reporterOpts, report.WithJSON(os.Stdout))
	}
	rep := report.NewReporter(logger, "dot11dump", reporterOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := report.Run(ctx, src, workers, rep.Observe); err != nil {
		return err
	}

	stats := rep.Stats()
	event := logger.Info().
		Int("records", stats.Records).
		Int("decoded", stats.Decoded).
		Int("failed", stats.Failed)
	for _, kind := range stats.Kinds() {
		event = event.Int(kind, stats.ByKind[kind])
	}
	event.Msg("summary")
	return nil
}

func openSource(pcapPath, hexPath string, opts capture.Options) (capture.Source, func(), error) {
	switch {
	case pcapPath != "" && hexPath != "":
		return nil, nil, fmt.Errorf("use either -pcap or -hex, not both")
	case pcapPath != "":
		f, err := os.Open(pcapPath)
		if err != nil {
			return nil, nil, err
		}
		src, err := capture.OpenPcap(f, opts)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return src, func() { f.Close() }, nil
	case hexPath == "-" || hexPath == "":
		return capture.NewHexSource(os.Stdin, opts), func() {}, nil
	default:
		f, err := os.Open(hexPath)
		if err != nil {
			return nil, nil, err
		}
		return capture.NewHexSource(f, opts), func() { f.Close() }, nil
	}
}
