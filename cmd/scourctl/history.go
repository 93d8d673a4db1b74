package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	limit := fs.Int("n", 20, "Number of recent searches to show")
	clearAll := fs.Bool("clear", false, "Forget every recorded search")
	fs.Parse(os.Args[1:])

	cfg := loadConfig(*configPath)
	st := openHistory(cfg)
	defer st.Close()

	if *clearAll {
		n, err := st.ClearSearches()
		if err != nil {
			log.Fatalf("clear history: %v", err)
		}
		fmt.Printf("Removed %d searches\n", n)
		return
	}

	searches, err := st.RecentSearches(*limit)
	if err != nil {
		log.Fatalf("read history: %v", err)
	}
	visited, err := st.VisitedCount()
	if err != nil {
		log.Fatalf("read history: %v", err)
	}

	fmt.Printf("History: %s\n", cfg.HistoryPath())
	fmt.Printf("Visited results: %d\n\n", visited)
	if len(searches) == 0 {
		fmt.Println("No searches recorded.")
		return
	}

	fmt.Printf("%-40s %5s %5s  %s\n", "QUERY", "PAGE", "RUNS", "LAST RUN")
	for _, s := range searches {
		fmt.Printf("%-40s %5d %5d  %s\n",
			truncate(s.Query, 40), s.Page, s.Count, s.LastRun.Format(time.DateTime))
	}
}
