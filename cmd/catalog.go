package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pollux-motors/showroom/internal/catalog"
	"github.com/pollux-motors/showroom/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the vehicle catalog",
	Long:  "Commands for importing seed files and listing catalog vehicles.",
}

// -- catalog import --

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import vehicles and pages from a YAML or JSON seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		seed, err := catalog.LoadSeed(args[0])
		if err != nil {
			return err
		}

		_, st, err := initService(ctx, "catalog")
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		nv, err := st.UpsertVehicles(ctx, seed.Vehicles)
		if err != nil {
			return eris.Wrap(err, "catalog import")
		}
		np, err := st.UpsertPages(ctx, seed.Pages)
		if err != nil {
			return eris.Wrap(err, "catalog import")
		}

		zap.L().Info("catalog import complete",
			zap.String("file", args[0]),
			zap.Int("vehicles", nv),
			zap.Int("pages", np),
		)
		fmt.Fprintf(os.Stdout, "Imported %d vehicles and %d pages.\n", nv, np)
		return nil
	},
}

// -- catalog list --

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog vehicles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := initService(ctx, "catalog")
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		category, _ := cmd.Flags().GetString("category")
		featured, _ := cmd.Flags().GetBool("featured")
		limit, _ := cmd.Flags().GetInt("limit")

		vehicles, err := svc.Vehicles(ctx, catalog.VehicleFilter{
			Category: category,
			Featured: featured,
			Limit:    limit,
		})
		if err != nil {
			return eris.Wrap(err, "catalog list")
		}

		if len(vehicles) == 0 {
			fmt.Fprintln(os.Stderr, "No vehicles found.")
			return nil
		}

		formatVehicleList(os.Stdout, vehicles)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("category", "", "filter by category (case-insensitive)")
	catalogListCmd.Flags().Bool("featured", false, "only featured vehicles")
	catalogListCmd.Flags().Int("limit", 100, "max number of vehicles to display")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}

// formatVehicleList writes a tabular list of vehicles to out.
func formatVehicleList(out io.Writer, vehicles []model.Vehicle) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tYEAR\tPRICE\tFEATURED")
	for _, v := range vehicles {
		featured := ""
		if v.Featured {
			featured = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			v.Name,
			orDash(v.DisplayBrand()),
			orDash(v.Category),
			orDash(v.Year),
			orDash(v.Price.Original),
			featured,
		)
	}
	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
