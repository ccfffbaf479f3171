package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"factory_floor/catalog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().Bool("validate", false, "check catalog consistency and exit non-zero on problems")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the factory zones and the guided tour",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	floor := catalog.Default()

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		if err := floor.Validate(); err != nil {
			return fmt.Errorf("catalog is inconsistent:\n%w", err)
		}
		fmt.Println("Catalog OK")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZONE\tTITLE\tCATEGORY\tICON\tAREA")
	for _, z := range floor.Zones() {
		area := "-"
		if a, ok := floor.AreaOf(z.ID); ok {
			area = a.Title
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", z.ID, z.Title, z.Category, z.Icon().Glyph(), z.Icon(), area)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STOP\tZONE\tTITLE")
	for _, s := range floor.Steps() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.StopNumber, s.ZoneID, s.Title)
	}
	return w.Flush()
}
