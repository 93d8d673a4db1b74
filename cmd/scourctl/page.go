package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/scour/internal/render"
	"github.com/abelbrown/scour/internal/search"
)

func runPage() {
	fs := flag.NewFlagSet("page", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	page := fs.Int("page", 1, "Results page to fetch")
	fs.Parse(os.Args[1:])

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "usage: scourctl page [-page N] <query>")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	client, err := search.NewClient(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	p, err := client.FetchPage(context.Background(), query, *page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", search.UserMessage(err, err.Error()))
		os.Exit(1)
	}

	total := "?"
	if p.TotalPages > 0 {
		total = fmt.Sprint(p.TotalPages)
	}
	fmt.Printf("%q page %d of %s: %d results (request %s)\n\n", query, p.Number, total, len(p.Results), p.RequestID)

	for i, r := range p.Results {
		card := render.NewCard(r)
		fmt.Printf("%2d. %s\n    %s\n", i+1, truncate(card.Title, 90), card.URL)
		for _, tag := range card.Tags {
			fmt.Printf("    [%s]", tag.Value)
		}
		if len(card.Tags) > 0 {
			fmt.Println()
		}
		if card.Breakdown == nil {
			continue
		}
		fmt.Printf("    %d matches, %s\n", card.Breakdown.Matches, card.Breakdown.Header())
		for _, row := range card.Breakdown.Rows {
			fmt.Printf("      %-18s %-20s %5.1f%%  %s\n",
				truncate(row.Keyword, 18), render.Bar(row.Percent, 20), row.Percent, row.Label())
		}
	}
}
