package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend"
	"vincit.fi/similar-images/common"
	"vincit.fi/similar-images/common/logger"
)

const (
	EventBusQueueSize = 1000
	EnvFile           = ".env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	if err := common.LoadEnvFile(EnvFile); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	params, err := common.ParseParams("similar-images", args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if err := params.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Invalid parameters: %s\n", err)
		return 1
	}

	logger.InitializeWithWriter(logger.StringToLogLevel(params.LogLevel()), stderr)

	stores, err := backend.InitializeStores(params.DbFile())
	if err != nil {
		logger.Error.Printf("Could not open database: %s", err)
		return 1
	}
	defer stores.Close()

	brokers := backend.InitializeEventBrokers(EventBusQueueSize)
	defer brokers.Close()
	subscribeLogging(brokers)

	services, err := backend.InitializeServices(params, stores, brokers)
	if err != nil {
		logger.Error.Printf("Could not initialize: %s", err)
		return 1
	}

	result, err := services.ImageLibrary.SearchFolder(ctx, params.RootPath())
	if err != nil {
		logger.Error.Printf("Search failed: %s", err)
		return 1
	}

	for _, imageError := range result.Errors {
		logger.Warn.Printf("Skipped %s: %s", imageError.ImageFile.Path(), imageError.Err)
	}
	if err := result.Err(); err != nil {
		logger.Warn.Printf("%s in %s", err, params.RootPath())
	}

	if params.Verbose() {
		printSimilarLists(stdout, result)
	} else {
		printPairs(stdout, result)
	}

	if params.MetricsFile() != "" {
		if err := backend.WriteMetrics(params.MetricsFile()); err != nil {
			logger.Error.Printf("Could not write metrics: %s", err)
			return 1
		}
	}
	return 0
}

func subscribeLogging(brokers *backend.Brokers) {
	brokers.Broker.Subscribe(api.ProcessStatusUpdated, func(command *api.UpdateProgressCommand) {
		logger.Debug.Printf("%s %d/%d", command.Name, command.Current, command.Total)
	})
	brokers.Broker.Subscribe(api.ImageFailed, func(command *api.ImageFailedCommand) {
		logger.Debug.Printf("Image %s failed: %s", command.ImageFile.Path(), command.Err)
	})
	brokers.Broker.Subscribe(api.ShowError, func(command *api.ErrorCommand) {
		logger.Debug.Printf("Error event: %s", command.Message)
	})
}

func printPairs(out io.Writer, result *apitype.SearchResult) {
	for _, pair := range result.UniquePairs() {
		_, _ = fmt.Fprintf(out, "%s %s\n", pair.First.Path(), pair.Second.Path())
	}
}

func printSimilarLists(out io.Writer, result *apitype.SearchResult) {
	for _, hashed := range result.Hashes {
		path := hashed.ImageFile.Path()
		matches := result.SimilarTo(path)
		if len(matches) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s:", path)
		for _, match := range matches {
			_, _ = fmt.Fprintf(out, " %s (%d)", match.ImageFile.Path(), match.Distance)
		}
		_, _ = fmt.Fprintln(out)
	}
}
