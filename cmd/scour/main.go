package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/abelbrown/scour/internal/config"
	"github.com/abelbrown/scour/internal/history"
	"github.com/abelbrown/scour/internal/nav"
	"github.com/abelbrown/scour/internal/otel"
	"github.com/abelbrown/scour/internal/search"
	"github.com/abelbrown/scour/internal/ui"
)

const version = "0.3.0"

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "config file (default ~/.scour/config.yaml)")
		baseURL    = flag.String("base-url", "", "search backend URL (overrides config)")
		query      = flag.String("q", "", "run this search on start")
		page       = flag.Int("page", 1, "first results page for -q")
		compact    = flag.Bool("compact", false, "one-line snippets")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println("scour", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid -base-url: %v", err)
		}
	}
	if *compact {
		cfg.UI.Density = config.DensityCompact
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger, closeLog, err := otel.OpenFile(cfg.EventLogPath())
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	logger.SetRingBuffer(ring)
	logger.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindStartup,
		Comp:  "main",
		Msg:   "scour " + version,
		Extra: map[string]any{"base_url": cfg.BaseURL, "trace": otel.TraceEnabled()},
	})

	hist, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer hist.Close()

	client, err := search.NewClient(cfg.BaseURL, cfg.Timeout,
		search.WithRateLimit(cfg.RequestsPerSecond, 2),
		search.WithUserAgent("scour/"+version),
	)
	if err != nil {
		log.Fatalf("Failed to create search client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := nav.Home()
	if *query != "" {
		start = nav.SearchURL(*query, *page)
	}

	app := ui.NewApp(ui.AppConfig{
		StartTask: func(q string, p int) tea.Cmd {
			return func() tea.Msg {
				res, err := client.StartTask(ctx, q, p)
				return ui.TaskResolved{Query: q, Page: p, Result: res, Err: err}
			}
		},
		FetchPage: func(q string, p int) tea.Cmd {
			return func() tea.Msg {
				pg, err := client.FetchPage(ctx, q, p)
				return ui.PageBootstrapped{Query: q, Page: pg, Err: err}
			}
		},
		LoadMore: func(q string, p int) tea.Cmd {
			return func() tea.Msg {
				pg, err := client.LoadMore(ctx, q, p)
				return ui.MoreLoaded{Page: pg, Err: err}
			}
		},
		LoadRecent: func(limit int) tea.Cmd {
			return func() tea.Msg {
				searches, err := hist.RecentSearches(limit)
				return ui.RecentLoaded{Searches: searches, Err: err}
			}
		},
		RecordSearch: func(q string, p int) tea.Cmd {
			return func() tea.Msg {
				return ui.SearchRecorded{Query: q, Err: hist.RecordSearch(q, p, time.Now())}
			}
		},
		LoadVisited: func(urls []string) tea.Cmd {
			return func() tea.Msg {
				visited, err := hist.Visited(urls)
				return ui.VisitedLoaded{Visited: visited, Err: err}
			}
		},
		OpenLink: func(url string) tea.Cmd {
			return func() tea.Msg {
				msg := ui.LinkOpened{URL: url, Err: hist.MarkVisited(url, time.Now())}
				if cfg.CopyEnabled() {
					if err := clipboard.WriteAll(url); err != nil {
						logger.Warn(otel.KindError, "clipboard", err.Error())
					} else {
						msg.Copied = true
					}
				}
				return msg
			}
		},

		Logger:            logger,
		Ring:              ring,
		ErrorDismiss:      cfg.ErrorDismiss,
		StillWorkingDelay: cfg.StillWorkingDelay,
		PopupFade:         cfg.PopupFade,
		Compact:           cfg.UI.Density == config.DensityCompact,
		RecentLimit:       cfg.UI.RecentLimit,
		Start:             start,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error(otel.KindError, "main", err)
		log.Printf("Error running program: %v", err)
	}

	// Outstanding requests are abandoned.
	cancel()
	logger.Info(otel.KindShutdown, "main", "exit")
	if err := closeLog(); err != nil {
		log.Printf("Failed to close event log: %v", err)
	}
}
