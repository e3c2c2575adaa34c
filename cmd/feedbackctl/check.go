package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/envgov/feedback-api/config"
	"github.com/envgov/feedback-api/internal/store/graphdb"
)

func runCheck(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	gateway, err := graphdb.Connect(ctx, cfg.Neo4j)
	defer gateway.Close(context.Background())
	if err != nil {
		return err
	}
	gateway.EnsureIndexes(ctx)

	status := gateway.Health(ctx)
	body, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", body)
	if !status.Healthy() {
		return fmt.Errorf("graph store reported %s", status.Database)
	}

	overall := gateway.OverallAnalytics(ctx)
	fmt.Fprintf(out, "feedback records stored: %d\n", overall.TotalFeedback)
	return nil
}
