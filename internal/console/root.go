// Package console implements the operator CLI. Every command talks to a
// client.DataSource, so --fixture swaps the live server for seeded in-memory
// data without touching any command logic.
package console

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/modan/fas/pkg/client"
	"github.com/spf13/cobra"
)

var (
	baseURL    string
	useFixture bool
)

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fas",
		Short: "Funding admin console",
		Long:  "Operator console for project review, settlements, shipments and statistics.",
	}

	root.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:8080", "admin API base URL")
	root.PersistentFlags().BoolVar(&useFixture, "fixture", false, "use seeded in-memory data instead of the live API")

	root.AddCommand(newReviewCommand())
	root.AddCommand(newSettlementCommand())
	root.AddCommand(newShipmentCommand())
	root.AddCommand(newStatsCommand())

	return root
}

// newDataSource is a variable so tests can substitute a recording source.
var newDataSource = func() client.DataSource {
	if useFixture {
		return client.NewFixture()
	}
	return client.NewWithHTTPClient(baseURL, &http.Client{Timeout: 15 * time.Second})
}

// Execute runs the console and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
