package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	searchai "github.com/nitinanarwal/Search-AI"
)

var errSearchFailed = errors.New("search failed")

type searchFlags struct {
	zip    string
	radius string
	causes []string
	sort   string
	page   int
	dryRun bool
	asJSON bool
}

func newSearchCmd(a *app) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search [text...]",
		Short: "Run one search and print result cards",
		Example: `  searchai search food pantry --zip 94110 --radius 5
  searchai search --cause housing --cause "mental health" --sort rating
  searchai search shelter --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, strings.Join(args, " "), f)
		},
	}

	sorts := make([]string, 0, len(searchai.SortOrders()))
	for _, o := range searchai.SortOrders() {
		sorts = append(sorts, string(o))
	}

	cmd.Flags().StringVar(&f.zip, "zip", "", "ZIP code to search around")
	cmd.Flags().StringVar(&f.radius, "radius", "", "Radius in miles (default 10)")
	cmd.Flags().StringArrayVar(&f.causes, "cause", nil,
		"Cause filter, repeatable: "+strings.Join(searchai.KnownCauses(), ", "))
	cmd.Flags().StringVar(&f.sort, "sort", string(searchai.SortRelevance),
		"Sort order: "+strings.Join(sorts, ", "))
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the request body instead of sending it")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print results as JSON")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, text string, f *searchFlags) error {
	sortOrder, ok := searchai.ParseSortOrder(f.sort)
	if !ok {
		return fmt.Errorf("unknown sort order %q", f.sort)
	}
	for _, c := range f.causes {
		if !searchai.IsKnownCause(c) {
			return fmt.Errorf("unknown cause %q (known: %s)", c, strings.Join(searchai.KnownCauses(), ", "))
		}
	}
	if f.page < 1 {
		return fmt.Errorf("--page must be >= 1, got %d", f.page)
	}

	client, err := a.newClient(nil)
	if err != nil {
		return err
	}

	q := client.Query()
	q.SetText(text)
	q.SetZip(f.zip)
	q.SetRadiusText(f.radius)
	q.SetCauses(f.causes...)
	q.SetSort(sortOrder)
	q.SetPage(f.page)

	out := cmd.OutOrStdout()
	if f.dryRun {
		body, err := client.Preview()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(body))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st, _, err := client.Submit(ctx).Wait(ctx)
	if err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}
	if st.Status == searchai.StatusError {
		a.logger.Debug("search settled with error", zap.String("message", st.Message))
		fmt.Fprintln(cmd.ErrOrStderr(), st.Message)
		return errSearchFailed
	}

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st.Results)
	}
	printCards(out, st.Results)
	return nil
}

