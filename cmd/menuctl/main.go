package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/catalog"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/logging"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/searchlog"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/usecase"
)

// Exit codes
const (
	exitUsage  = 2
	exitCorpus = 3
)

// logger is replaced by setupLogger before any command runs
var logger = logrus.New()

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func corpusFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "corpus",
		Aliases:  []string{"c"},
		Usage:    "Path to the menu catalog CSV",
		EnvVars:  []string{"MENUFINDER_CORPUS_PATH"},
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "menuctl",
		Usage: "Search and inspect a restaurant menu catalog from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Look up a menu item and print the JSON response",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.StringFlag{
						Name:  "log",
						Usage: "Append the search to this JSON-lines log",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Print corpus and index statistics",
				Action: inspectCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of items to list",
						Value: 5,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	l, err := logging.New(os.Stderr, c.String("log-level"), "text")
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	logger = l
	return nil
}

// loadCorpus reads and indexes the catalog named by --corpus
func loadCorpus(c *cli.Context) (*usecase.Corpus, error) {
	items, err := catalog.NewLoader(logger.WithField("component", "catalog")).LoadFile(c.String("corpus"))
	if err != nil {
		return nil, cli.Exit(err.Error(), exitCorpus)
	}

	corpus, err := usecase.BuildCorpus(items)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitCorpus)
	}
	return corpus, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	corpus, err := loadCorpus(c)
	if err != nil {
		return err
	}

	var searchLogger domain.SearchLogger
	if path := c.String("log"); path != "" {
		l, err := searchlog.NewLogger(searchlog.NewFileWriter(path), searchlog.Config{
			Logger: logger.WithField("component", "searchlog"),
		})
		if err != nil {
			return err
		}
		defer l.Close()
		searchLogger = l
	}

	svc := usecase.NewSearchService(corpus, nil, searchLogger, usecase.SearchServiceConfig{
		EnableDebugLogging: logger.IsLevelEnabled(logrus.DebugLevel),
		Logger:             logger.WithField("component", "search_service"),
	})

	resp, err := svc.Search(context.Background(), query)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func inspectCommand(c *cli.Context) error {
	limit := c.Int("limit")
	if limit < 0 {
		return cli.Exit("limit must be >= 0", exitUsage)
	}

	corpus, err := loadCorpus(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "items: %d\n", corpus.Size())
	fmt.Fprintf(w, "vocabulary: %d\n", corpus.Index().VocabularySize())

	items := corpus.Items()
	for i := 0; i < limit && i < len(items); i++ {
		item := items[i]
		fmt.Fprintf(w, "%d: %s (%s) %.2f [%s]\n", i, item.Name, item.Restaurant, item.Price, item.NormalizedName)
	}
	return nil
}
