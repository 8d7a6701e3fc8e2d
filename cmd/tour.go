package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hashboard/internal/config"
	tourctl "github.com/abhisek/hashboard/internal/tour"
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Print the guided tour catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		flagPath, _ := cmd.Flags().GetString("catalog")
		steps, err := loadSteps(conf.TourCatalog, flagPath)
		if err != nil {
			return err
		}
		if steps == nil {
			steps = tourctl.DefaultCatalog()
		}

		out := cmd.OutOrStdout()
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			data, err := tourctl.MarshalCatalog(steps)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		rows := make([][]string, len(steps))
		for i, s := range steps {
			rows[i] = []string{fmt.Sprint(i + 1), s.ID, s.Target, string(s.Position), s.Title}
		}
		printTable(out, []string{"#", "ID", "TARGET", "POSITION", "TITLE"}, rows)
		return nil
	},
}

var tourStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often the tour was started, completed and skipped",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		stats, err := e.store.EventRepo().TourStats(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Started:   %d\n", stats.Started)
		fmt.Fprintf(out, "Completed: %d\n", stats.Completed)
		fmt.Fprintf(out, "Skipped:   %d\n", stats.Skipped)
		return nil
	},
}

func init() {
	tourCmd.Flags().String("catalog", "", "YAML tour catalog to use instead of the built-in one (overrides HASHBOARD_TOUR_CATALOG)")
	tourCmd.Flags().Bool("yaml", false, "Print the catalog as YAML")
	tourCmd.AddCommand(tourStatsCmd)
}

// loadSteps reads the catalog file named by flagPath, or envPath when the
// flag is empty. It returns nil when neither is set. The catalog is checked
// the same way the tour controller checks it.
func loadSteps(envPath, flagPath string) ([]tourctl.Step, error) {
	path := flagPath
	if path == "" {
		path = envPath
	}
	if path == "" {
		return nil, nil
	}
	steps, err := tourctl.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if _, err := tourctl.New(steps, nil, nil); err != nil {
		return nil, fmt.Errorf("tour catalog %s: %w", path, err)
	}
	return steps, nil
}
