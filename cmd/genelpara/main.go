// Command genelpara prints exchange rates from the GenelPara API.
//
//	genelpara -list doviz -symbols USD,EUR,GBP,JPY
//	genelpara -list doviz,kripto,altin -symbols USD,BTC,GA -format grouped
//	genelpara -list kripto -symbols all -watch 30s
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/adapter/api_client/genelpara"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/fetcher"
	"github.com/berkocan/genelpara-api/internal/render"
	"github.com/pkg/errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type options struct {
	list    string
	symbols string
	baseURL string
	format  string
	timeout time.Duration
	watch   time.Duration
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "genelpara:", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("genelpara", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.list, "list", "doviz", "comma separated categories (doviz, kripto, altin...)")
	fs.StringVar(&opts.symbols, "symbols", entities.AllSymbolsParam, "comma separated symbols or all")
	fs.StringVar(&opts.baseURL, "base-url", genelpara.DefaultBaseURL, "rate API endpoint")
	fs.StringVar(&opts.format, "format", "text", "output format: text, grouped, compare or json")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	fs.DurationVar(&opts.watch, "watch", 0, "poll on this interval until interrupted")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, errors.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	const op = "genelpara.run"

	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	query := entities.ParseQuery(opts.list, opts.symbols)

	write, err := writerFor(opts.format, stdout, query)
	if err != nil {
		return err
	}

	client := genelpara.NewClient(genelpara.WithBaseURL(opts.baseURL))

	if opts.watch > 0 {
		sink := fetcher.StorageFunc(func(_ context.Context, _ entities.RateQuery, resp *entities.RateResponse) error {
			return write(resp)
		})

		err = fetcher.NewFetcher(client, query, opts.watch, opts.timeout, sink).Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	resp, err := client.Fetch(ctx, query, opts.timeout)
	if err != nil {
		return errors.Wrap(err, op)
	}

	if err = write(resp); err != nil {
		return errors.Wrap(err, op)
	}

	if !resp.Success {
		return errors.Errorf("api rejected the request: %s", resp.ErrorMessage)
	}

	return nil
}

func writerFor(format string, w io.Writer, query entities.RateQuery) (func(*entities.RateResponse) error, error) {
	switch format {
	case "text":
		return func(resp *entities.RateResponse) error { return render.Console(w, resp) }, nil
	case "grouped":
		return func(resp *entities.RateResponse) error { return render.Grouped(w, resp) }, nil
	case "compare":
		return func(resp *entities.RateResponse) error { return render.Compare(w, resp, query.Symbols) }, nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return func(resp *entities.RateResponse) error { return enc.Encode(resp) }, nil
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
}
