package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search vehicles and site pages by relevance",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		if format != "table" && format != "json" {
			return eris.Errorf("unknown format %q (want table or json)", format)
		}
		filters, err := searchFilters(cmd)
		if err != nil {
			return err
		}

		svc, st, err := initService(ctx, "catalog")
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		query := strings.Join(args, " ")
		results, err := svc.Search(ctx, query, filters)
		if err != nil {
			return eris.Wrap(err, "search")
		}

		if format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No results.")
			return nil
		}
		formatSearchResults(os.Stdout, results)
		return nil
	},
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().String("format", "table", "output format (table, json)")
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("kind", nil, "restrict to record kinds (car, page, feature, service)")
	cmd.Flags().StringSlice("brand", nil, "restrict cars to these brands")
	cmd.Flags().Float64("min-price", 0, "minimum car price")
	cmd.Flags().Float64("max-price", 0, "maximum car price")
	cmd.Flags().Int("min-year", 0, "minimum model year")
	cmd.Flags().Int("max-year", 0, "maximum model year")
}

// searchFilters builds filters from the flags the user actually set.
func searchFilters(cmd *cobra.Command) (*search.Filters, error) {
	f := &search.Filters{}
	flags := cmd.Flags()

	kinds, _ := flags.GetStringSlice("kind")
	for _, k := range kinds {
		kind := model.RecordKind(strings.ToLower(strings.TrimSpace(k)))
		if !kind.IsValid() {
			return nil, eris.Errorf("unknown kind %q", k)
		}
		f.Kinds = append(f.Kinds, kind)
	}
	f.Brands, _ = flags.GetStringSlice("brand")

	if flags.Changed("min-price") {
		v, _ := flags.GetFloat64("min-price")
		f.PriceMin = &v
	}
	if flags.Changed("max-price") {
		v, _ := flags.GetFloat64("max-price")
		f.PriceMax = &v
	}
	if flags.Changed("min-year") {
		v, _ := flags.GetInt("min-year")
		f.YearMin = &v
	}
	if flags.Changed("max-year") {
		v, _ := flags.GetInt("max-year")
		f.YearMax = &v
	}
	return f, nil
}

// formatSearchResults writes ranked results as a table to out.
func formatSearchResults(out io.Writer, results []search.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tSCORE\tKIND\tTITLE\tPRICE\tURL")
	for i, r := range results {
		_, _ = fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\t%s\n",
			i+1,
			r.Score,
			r.Record.Kind,
			r.Record.Title,
			orDash(r.Record.Metadata.Price),
			orDash(r.Record.URL),
		)
	}
	_ = w.Flush()
}
