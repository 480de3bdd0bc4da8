// Command dispatchctl sends one HTTP request through a Dispatcher and prints
// the resulting envelope.
//
//	dispatchctl -b https://api.example.com -p page=1 get /items
//	dispatchctl -c config.yml -o yaml download /reports/latest.csv ./latest.csv
//	dispatchctl -d '{"name":"x"}' post /items
//
// It exits 0 on success, 1 when the envelope reports a failure and 2 on
// usage or configuration errors.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
