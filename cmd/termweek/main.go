package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termweek/internal/config"
	appLog "termweek/internal/log"
	"termweek/internal/plugin"
)

type flagConfig struct {
	configPath string
	date       string
	template   string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("termweek starting",
		"feed_url", conf.FeedURL,
		"year_tag", conf.YearTag,
		"fetch_timeout_seconds", conf.FetchTimeoutSeconds,
	)

	date := time.Now()
	if flags.date != "" {
		date, err = time.Parse("2006-01-02", flags.date)
		if err != nil {
			appLog.Error("invalid -date value, want YYYY-MM-DD", err, "date", flags.date)
			os.Exit(1)
		}
	}

	// Cancel the startup refresh on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := plugin.New(conf)
	result := p.Init(ctx)
	defer p.Close()

	appLog.Info("initialized", "refresh", result.String())

	fmt.Println(p.Format(date, flags.template))
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "termweek.yaml", "Path to config file")
	flag.StringVar(&cfg.date, "date", "", "Date to resolve as YYYY-MM-DD (default today)")
	flag.StringVar(&cfg.template, "template", "dddd, D MMMM YYYY (LUW)", "Output template")

	flag.Parse()

	return cfg
}
