package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"supremes/internal/util"
	"supremes/pkg/cache"
	"supremes/pkg/logger"
	"supremes/pkg/logger/console"
	"supremes/pkg/oyez"
	"supremes/pkg/speech"
)

const usage = `usage: supremes [flags] <command> [args]

commands:
  case <term> <docket>   fetch one case and print a summary
  term <term>            list the cases argued in a term
  table <term> <docket>  print the per-speaker table for a case as CSV

flags:
  -overwrite             refetch even when a cache entry exists
  -expand                with "term": expand every listed case (bulk fetch)
  -ungrouped             with "table": one row per utterance, no grouping
  -csv <path>            with "table": write CSV to a file instead of stdout
`

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	overwrite := flag.Bool("overwrite", false, "refetch even when a cache entry exists")
	expand := flag.Bool("expand", false, "expand every case listed for the term")
	ungrouped := flag.Bool("ungrouped", false, "one row per utterance, no grouping")
	csvPath := flag.String("csv", "", "write CSV output to this file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store, err := newStore(ctx)
	if err != nil {
		logger.Fatal("Could not create cache store", "err", err)
	}

	fetchCache := cache.NewCache(cache.NewCacheParams{
		Store: store,
		Client: cache.NewWebClient(cache.NewWebClientParams{
			MaxTries: util.GetEnvInt("HTTP_MAX_TRIES", 3),
		}),
		Overwrite: *overwrite,
	})
	client := oyez.NewClient(oyez.NewClientParams{
		Fetcher: fetchCache,
		BaseURL: util.GetEnvString("OYEZ_BASE_URL", oyez.DefaultBaseURL),
	})

	switch args[0] {
	case "case":
		if len(args) != 3 {
			flag.Usage()
			os.Exit(2)
		}
		if err := runCase(ctx, client, args[1], args[2]); err != nil {
			logger.Fatal("Fetch failed", "err", err)
		}
	case "term":
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		if err := runTerm(ctx, client, args[1], *expand); err != nil {
			logger.Fatal("Fetch failed", "err", err)
		}
	case "table":
		if len(args) != 3 {
			flag.Usage()
			os.Exit(2)
		}
		if err := runTable(ctx, client, args[1], args[2], *ungrouped, *csvPath); err != nil {
			logger.Fatal("Table build failed", "err", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// newStore picks the cache backend from the environment: local files by
// default, S3 when CACHE_BACKEND=s3. Configuration is read here, at the
// composition point, and nowhere deeper.
func newStore(ctx context.Context) (cache.Store, error) {
	switch util.GetEnvString("CACHE_BACKEND", "fs") {
	case "s3":
		return cache.NewS3Store(ctx, cache.NewS3StoreParams{
			Region:    util.GetEnv("AWS_REGION"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey: util.GetEnv("AWS_SECRET_KEY"),
			Bucket:    util.GetEnv("AWS_BUCKET"),
			Prefix:    util.GetEnvString("CACHE_PREFIX", "oyez"),
		})
	default:
		return cache.NewFilesystemStore(util.GetEnvString("CACHE_DIR", "downloaded"))
	}
}

func runCase(ctx context.Context, client *oyez.Client, term string, docket string) error {
	c, err := client.CaseByDocket(ctx, term, docket)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", c)
	fmt.Printf("  %s v. %s\n", c.FirstParty, c.SecondParty)
	fmt.Printf("  advocates: %d, decisions: %d, transcripts: %d\n",
		len(c.Advocates), len(c.Decisions), len(c.Transcripts))
	if len(c.Decisions) > 0 && c.Decisions[0].WinningParty != "" {
		fmt.Printf("  winning party: %s\n", c.Decisions[0].WinningParty)
	}
	return nil
}

func runTerm(ctx context.Context, client *oyez.Client, term string, expand bool) error {
	summaries, err := client.CasesForTerm(ctx, term)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("%s\t%s\n", s.DocketNumber, s.Name)
		if !expand || s.DocketNumber == "" {
			continue
		}
		// Bulk fetch: expanding each case warms the cache for later runs.
		if _, err := client.CaseByDocket(ctx, term, s.DocketNumber); err != nil {
			logger.Warn("Could not expand case", "docket", s.DocketNumber, "err", err)
		}
	}
	return nil
}

func runTable(ctx context.Context, client *oyez.Client, term string, docket string, ungrouped bool, csvPath string) error {
	c, err := client.CaseByDocket(ctx, term, docket)
	if err != nil {
		return err
	}
	table := speech.FromCase(c, speech.TableParams{Ungrouped: ungrouped})
	if table == nil {
		logger.Warn("Case has no recorded ballots, nothing to join", "docket", docket)
		return nil
	}

	out := os.Stdout
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvPath, err)
		}
		defer f.Close()
		out = f
	}
	return table.WriteCSV(out)
}
