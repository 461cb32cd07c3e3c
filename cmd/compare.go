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
	"go.uber.org/zap"

	"github.com/pollux-motors/showroom/internal/compare"
	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/showroom"
)

var compareCmd = &cobra.Command{
	Use:   "compare <id> <id>...",
	Short: "Compare vehicles side by side",
	Long:  "Compares catalog vehicles on the configured attributes. ▲ marks the best value, ▼ the worst, and * rows where values differ.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		if format != "table" && format != "json" {
			return eris.Errorf("unknown format %q (want table or json)", format)
		}

		svc, st, err := initService(ctx, "catalog")
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		ids := make([]model.ID, len(args))
		for i, a := range args {
			ids[i] = model.ID(a)
		}

		cmp, err := svc.Compare(ctx, ids)
		if err != nil {
			return eris.Wrap(err, "compare")
		}
		if len(cmp.Missing) > 0 {
			fmt.Fprintf(os.Stderr, "Not found: %s\n", joinIDs(cmp.Missing))
		}
		if len(cmp.Vehicles) == 0 {
			return eris.New("compare: no matching vehicles")
		}

		if xlsxPath != "" {
			if err := writeComparisonXLSX(xlsxPath, cmp); err != nil {
				return err
			}
			zap.L().Info("comparison exported", zap.String("path", xlsxPath))
		}

		if format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cmp)
		}
		formatComparison(os.Stdout, cmp)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("format", "table", "output format (table, json)")
	compareCmd.Flags().String("xlsx", "", "also write the comparison to this XLSX file")
	rootCmd.AddCommand(compareCmd)
}

// formatComparison writes the comparison as a table with one column per
// vehicle and one row per attribute.
func formatComparison(out io.Writer, cmp *showroom.Comparison) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"", "ATTRIBUTE"}
	for _, v := range cmp.Vehicles {
		header = append(header, v.Name)
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, attr := range cmp.Attributes {
		results := cmp.Results[attr.Key]
		marker := ""
		if len(results) > 0 && results[0].HasVariance {
			marker = "*"
		}
		row := []string{marker, attr.Label}
		for _, r := range results {
			row = append(row, formatCell(r))
		}
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatCell(r compare.Result) string {
	cell := orDash(r.Value)
	switch {
	case r.IsBest:
		cell += " ▲"
	case r.IsWorst:
		cell += " ▼"
	}
	return cell
}

func writeComparisonXLSX(path string, cmp *showroom.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "compare: create %s", path)
	}

	headers := make([]string, len(cmp.Vehicles))
	for i, v := range cmp.Vehicles {
		headers[i] = v.Name
	}
	if err := compare.WriteXLSX(f, headers, cmp.Attributes, cmp.Results); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "compare: write %s", path)
	}
	return eris.Wrapf(f.Close(), "compare: close %s", path)
}

func joinIDs(ids []model.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
