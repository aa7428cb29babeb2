package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"logsreact/internal/config"
	"logsreact/internal/ingest"
	"logsreact/internal/metrics"
	"logsreact/internal/output"
	"logsreact/internal/parser"
	"logsreact/internal/stats"
	"logsreact/internal/types"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	exitOK         = 0
	exitUsage      = 1
	exitUnreadable = 2
)

func main() {
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(exitUsage)
	}

	var code int
	switch os.Args[1] {
	case "parse":
		code = parseCommand(os.Args[2:], os.Stdout, os.Stderr)
	case "follow":
		code = followCommand(os.Args[2:], os.Stdout, os.Stderr)
	case "pattern":
		code = patternCommand(os.Args[2:], os.Stdout, os.Stderr)
	default:
		printUsage(os.Stderr)
		code = exitUsage
	}
	os.Exit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: logsreact <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  parse <file>    Parse a whole access log and print one line per record")
	fmt.Fprintln(w, "  follow <file>   Print records as lines are appended to an access log")
	fmt.Fprintln(w, "  pattern         Print the grammar applied to each line")
}

// commonFlags are shared by parse and follow
type commonFlags struct {
	configPath string
	outFormat  string
	logFormat  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to YAML config file (optional)")
	fs.StringVar(&c.outFormat, "format", "", "Output format: text or json (overrides config)")
	fs.StringVar(&c.logFormat, "parser", "", "Log grammar: combined or common (overrides config)")
}

// load reads the config and applies flag overrides
func (c *commonFlags) load() (*types.Config, *parser.Parser, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.outFormat != "" {
		cfg.Output.Format = c.outFormat
	}
	if c.logFormat != "" {
		cfg.Parser.Format = c.logFormat
	}

	m, err := parser.MatcherFor(cfg.Parser.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, parser.New(m), nil
}

func parseCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	summary := fs.Bool("summary", false, "Print a tally of parsed records to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: logsreact parse [flags] <file>")
		return exitUsage
	}

	cfg, p, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	path := fs.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", path, err)
		return exitUnreadable
	}

	start := time.Now()
	res, err := p.Parse(string(content))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
		return exitUsage
	}
	metrics.ObserveResult(res, time.Since(start))

	renderer, err := output.New(stdout, cfg.Output.Format, cfg.Output.Delimiter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	for _, rec := range res.Records {
		if err := renderer.Render(rec); err != nil {
			fmt.Fprintf(stderr, "Error writing record %d: %v\n", rec.Index, err)
			return exitUsage
		}
	}
	if res.Completed {
		if err := renderer.Complete(len(res.Records)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}

	if *summary {
		tally := stats.NewTally(10)
		tally.AddAll(res.Records)
		printSummary(stderr, tally.Snapshot())
	}
	return exitOK
}

func followCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("follow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: logsreact follow [flags] <file>")
		return exitUsage
	}

	cfg, p, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	renderer, err := output.New(stdout, cfg.Output.Format, cfg.Output.Delimiter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go func() {
			log.Printf("[METRICS] Starting on %s", cfg.Metrics.Addr)
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				log.Printf("[METRICS] Failed to start: %v", err)
			}
		}()
	}

	tailer := ingest.NewFileTailer(fs.Arg(0), ingest.Options{
		Follow:    true,
		Poll:      cfg.Follow.Poll,
		FromStart: cfg.Follow.FromStart,
	})
	lines, err := tailer.Start(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUnreadable
	}
	defer tailer.Stop()

	tally := stats.NewTally(10)
	n, err := streamRecords(ctx, lines, p, renderer, tally)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log.Printf("[INGEST] Stopped after %d records", n)
	printSummary(stderr, tally.Snapshot())
	return exitOK
}

// streamRecords turns each non-blank raw line into a record with an
// increasing index until lines closes or ctx is done
func streamRecords(ctx context.Context, lines <-chan ingest.RawLine, p *parser.Parser, r output.Renderer, tally *stats.Tally) (int, error) {
	index := 0
	for {
		select {
		case <-ctx.Done():
			return index, nil
		case raw, ok := <-lines:
			if !ok {
				return index, nil
			}
			metrics.LinesIngested.Inc()
			if parser.IsBlank(raw.Content) {
				continue
			}

			start := time.Now()
			rec := p.ParseLine(types.LogLine{Index: index, RawText: raw.Content})
			metrics.ObserveLine(rec, time.Since(start))
			index++

			tally.Add(rec)
			if err := r.Render(rec); err != nil {
				return index, fmt.Errorf("render record %d: %w", rec.Index, err)
			}
		}
	}
}

func patternCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pattern", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("parser", "combined", "Log grammar: combined or common")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	m, err := parser.MatcherFor(*name)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(stdout, "Pattern: %s\n", m.Description())
	return exitOK
}

func printSummary(w io.Writer, s stats.Snapshot) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		log.Printf("[STATS] Failed to write summary: %v", err)
	}
}
