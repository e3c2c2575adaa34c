package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/envgov/feedback-api/config"
	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/internal/store/graphdb"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// fixtureRecord is one feedback entry of a seed fixture file. Timestamps are
// strings so fixtures go through the same validation as API payloads.
type fixtureRecord struct {
	UserQuery       *string  `yaml:"user_query"`
	BotResponse     *string  `yaml:"bot_response"`
	FeedbackType    *string  `yaml:"feedback_type"`
	UserComment     *string  `yaml:"user_comment"`
	RatingStars     *int     `yaml:"rating_stars"`
	MessageID       *string  `yaml:"message_id"`
	Categories      []string `yaml:"categories"`
	Timestamp       *string  `yaml:"timestamp"`
	DetectedIntent  string   `yaml:"detected_intent"`
	ConfidenceScore *float64 `yaml:"confidence_score"`
	UserID          string   `yaml:"user_id"`
}

type fixtureFile struct {
	Feedback []fixtureRecord `yaml:"feedback"`
}

// parseFixtures decodes a YAML fixture document and validates every record.
func parseFixtures(r io.Reader) ([]*types.Feedback, error) {
	var doc fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	if len(doc.Feedback) == 0 {
		return nil, fmt.Errorf("fixture file contains no feedback records")
	}

	records := make([]*types.Feedback, 0, len(doc.Feedback))
	for i, rec := range doc.Feedback {
		payload := types.FeedbackCreate{
			UserQuery:    rec.UserQuery,
			BotResponse:  rec.BotResponse,
			FeedbackType: rec.FeedbackType,
			UserComment:  rec.UserComment,
			RatingStars:  rec.RatingStars,
			MessageID:    rec.MessageID,
			Categories:   rec.Categories,
			Timestamp:    rec.Timestamp,
		}
		fb, errs := payload.Validate()
		if len(errs) > 0 {
			return nil, fmt.Errorf("fixture %d: %s", i, describeFieldErrors(errs))
		}
		fb.DetectedIntent = rec.DetectedIntent
		fb.ConfidenceScore = rec.ConfidenceScore
		fb.UserID = rec.UserID
		records = append(records, fb)
	}
	return records, nil
}

func describeFieldErrors(errs types.FieldErrors) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(errs[f], " "))
	}
	return strings.Join(parts, "; ")
}

var (
	sampleIntents = []string{
		"carbon_reduction_inquiry",
		"waste_management_policy",
		"renewable_energy_info",
		"environmental_regulations",
		"air_quality_concern",
	}
	sampleQueries = []string{
		"How to reduce carbon emissions in urban areas?",
		"What are the waste management policies for small businesses?",
		"Can you explain renewable energy incentives?",
		"What environmental regulations apply to manufacturing?",
		"How can I report air quality issues in my area?",
	}
	sampleCategories = [][]string{
		{"helpful", "accurate"},
		{"informative", "clear"},
		{"confusing", "incomplete"},
		{"detailed", "relevant"},
		{"unclear", "outdated"},
	}
)

// sampleFeedback builds n synthetic records spread over the last 30 days.
// Producer-only fields are filled so every analytics view has data.
func sampleFeedback(rng *rand.Rand, batch string, n int, now time.Time) []*types.Feedback {
	records := make([]*types.Feedback, 0, n)
	for i := 0; i < n; i++ {
		topic := rng.Intn(len(sampleQueries))
		positive := rng.Intn(2) == 0

		fb := &types.Feedback{
			UserQuery:      sampleQueries[topic],
			BotResponse:    "Here is what the environmental governance guidance says about this topic.",
			FeedbackType:   types.FeedbackNegative,
			RatingStars:    1 + rng.Intn(2),
			MessageID:      fmt.Sprintf("seed-%s-%03d", batch, i),
			Categories:     append([]string(nil), sampleCategories[rng.Intn(len(sampleCategories))]...),
			Timestamp:      now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour).UTC(),
			DetectedIntent: sampleIntents[topic],
			UserID:         fmt.Sprintf("user_%d", 100+rng.Intn(10)),
		}
		if positive {
			fb.FeedbackType = types.FeedbackPositive
			fb.RatingStars = 4 + rng.Intn(2)
			fb.UserComment = "This response was helpful for understanding the policy."
		}
		confidence := 0.6 + rng.Float64()*0.35
		fb.ConfidenceScore = &confidence
		records = append(records, fb)
	}
	return records
}

type seedResult struct {
	Stored int64
	Failed int64
}

// seedFeedback writes records through feedbackStore with at most concurrency
// writes in flight. Individual write failures are counted, not fatal.
func seedFeedback(ctx context.Context, feedbackStore store.FeedbackStore, records []*types.Feedback, concurrency int) (seedResult, error) {
	log := logger.GetLogger().Named("seed")
	var stored, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, fb := range records {
		fb := fb
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := feedbackStore.StoreFeedback(gctx, fb); err != nil {
				failed.Add(1)
				log.Warnw("Seed record not stored", "message_id", fb.MessageID, "error", err)
				return nil
			}
			stored.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return seedResult{Stored: stored.Load(), Failed: failed.Load()}, err
}

func runSeed(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	count := fs.Int("n", 25, "Number of sample records to generate")
	file := fs.String("file", "", "YAML fixture file to load instead of generated samples")
	concurrency := fs.Int("concurrency", 8, "Number of parallel writes")
	randSeed := fs.Int64("rand-seed", time.Now().UnixNano(), "Seed for sample generation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	batch := uuid.NewString()[:8]
	var records []*types.Feedback
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		records, err = parseFixtures(f)
		f.Close()
		if err != nil {
			return err
		}
	} else {
		if *count < 1 {
			return fmt.Errorf("n must be at least 1")
		}
		records = sampleFeedback(rand.New(rand.NewSource(*randSeed)), batch, *count, time.Now())
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

	res, err := seedFeedback(ctx, gateway, records, *concurrency)
	fmt.Fprintf(out, "batch %s: stored %d of %d records (%d failed) in database %q\n",
		batch, res.Stored, len(records), res.Failed, gateway.Database())
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d records failed to store", res.Failed)
	}
	return nil
}
