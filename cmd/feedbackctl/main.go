// Command feedbackctl prepares and exercises a feedback API deployment.
//
//	feedbackctl check                verify graph store connectivity and ensure indexes
//	feedbackctl seed  [-n] [-file]   write sample or fixture feedback through the gateway
//	feedbackctl smoke [-base-url]    call every endpoint of a running server
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/envgov/feedback-api/logger"
	"github.com/joho/godotenv"
)

const usage = `usage: feedbackctl <command> [flags]

commands:
  check   verify graph store connectivity, ensure indexes and report health
  seed    store sample (or YAML fixture) feedback records
  smoke   call every API endpoint of a running server and report status codes
`

func main() {
	_ = godotenv.Load()
	logger.InitLogger()
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	_ = logger.Close()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "check":
		err = runCheck(ctx, args[1:], stdout)
	case "seed":
		err = runSeed(ctx, args[1:], stdout)
	case "smoke":
		err = runSmokeCommand(ctx, args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "feedbackctl %s: %v\n", args[0], err)
		return 1
	}
	return 0
}
