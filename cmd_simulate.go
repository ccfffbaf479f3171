package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"factory_floor/catalog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().String("scenario", "", "scenario narrative to simulate")
	simulateCmd.Flags().Int("tour-step", 0, "tour stop number; uses its zone and impact narrative")
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [zone-id]",
	Short: "Fetch one simulation report and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	floor := catalog.Default()

	scenario, _ := cmd.Flags().GetString("scenario")
	stop, _ := cmd.Flags().GetInt("tour-step")

	zoneID := ""
	if len(args) == 1 {
		zoneID = args[0]
	}

	if stop != 0 {
		step, ok := floor.Step(stop - 1)
		if !ok {
			return fmt.Errorf("tour has no stop %d", stop)
		}
		if zoneID == "" {
			zoneID = step.ZoneID
		}
		if scenario == "" {
			scenario = step.Impact
		}
	}
	if zoneID == "" {
		return errors.New("a zone id or --tour-step is required")
	}

	zone, ok := floor.Zone(zoneID)
	if !ok {
		return fmt.Errorf("unknown zone %q", zoneID)
	}

	report := newGateway(cfg).FetchSimulation(cmd.Context(), zone.Title, zone.Description, scenario)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
