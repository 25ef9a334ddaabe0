package services

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Search queries the registry catalog and renders the results as a
// table, preserving server order. An empty result set gets a distinct
// message instead of an empty table.
type Search struct {
	client RegistryClient
	out    io.Writer
	log    *zap.SugaredLogger
}

func NewSearchService(client RegistryClient, out io.Writer) *Search {
	return &Search{
		client: client,
		out:    out,
		log:    zap.S().Named("search_service"),
	}
}

func (s *Search) Run(ctx context.Context, query string) error {
	results, err := s.client.Search(ctx, query)
	if err != nil {
		return err
	}
	s.log.Debugw("search finished", "query", query, "results", len(results))

	if len(results) == 0 {
		fmt.Fprintf(s.out, "no packages found matching %q\n", query)
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	header := color.New(color.Bold)
	fmt.Fprintln(w, header.Sprint("NAME\tVERSION\tAUTHOR\tDESCRIPTION"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.PackageName, r.Version, r.Author, r.Description)
	}
	return w.Flush()
}
