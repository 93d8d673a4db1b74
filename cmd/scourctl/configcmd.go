package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abelbrown/scour/internal/config"
)

func runConfig() {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	initFile := fs.Bool("init", false, "Write the default configuration if no file exists")
	fs.Parse(os.Args[1:])

	path := *configPath
	if path == "" {
		path = config.Path()
	}

	if *initFile {
		if _, err := os.Stat(path); err == nil {
			log.Fatalf("%s already exists", path)
		}
		if err := config.Default().Save(path); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	cfg := loadConfig(path)
	out, err := yaml.Marshal(cfg)
	if err != nil {
		log.Fatalf("marshal config: %v", err)
	}
	fmt.Printf("# effective configuration (%s)\n", path)
	os.Stdout.Write(out)
}
