// avlbench times, measures and stress-tests the balanced tree in
// pkg/container/avltree and keeps the resulting reports in a bbolt file.
package main

import (
	"fmt"
	"os"

	"github.com/go-sod/avl/internal/buildinfo"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := newApp().execute(ctx); err != nil {
		done()
		logger.Fatal(err)
	}

	defer done()
}

func printBanner() {
	_, _ = fmt.Fprint(os.Stderr, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stderr,
		"%s: %s, %s\n\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)
}
