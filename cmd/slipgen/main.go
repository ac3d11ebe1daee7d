package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/kingbayo/internal/app"
	"github.com/yungbote/kingbayo/internal/platform/shutdown"
	"github.com/yungbote/kingbayo/internal/ticket"
)

func main() {
	var mode, risk, format string
	var batches int
	flag.StringVar(&mode, "mode", string(ticket.ModePreMatch), "pre-match-window | live | bet-builder")
	flag.StringVar(&risk, "risk", string(ticket.TierBalanced), "safe | balanced | risky")
	flag.StringVar(&format, "format", "json", "output format: json | csv")
	flag.IntVar(&batches, "batches", 1, "number of generations to run")
	flag.Parse()

	req, err := ticket.ParseRequest(mode, risk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid request: %v\n", err)
		os.Exit(2)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "json" && format != "csv" {
		fmt.Fprintf(os.Stderr, "unsupported format %q\n", format)
		os.Exit(2)
	}
	if batches < 1 {
		batches = 1
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Log.Sync()

	for i := 0; i < batches; i++ {
		res, err := a.Session.Generate(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
			os.Exit(1)
		}
		a.Log.Debug("batch generated", "batch", i+1, "source", res.Source, "fallback_reason", res.FallbackReason)
	}

	switch format {
	case "csv":
		if _, err := a.Session.ExportHistory(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a.Session.History()); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
	}
}
