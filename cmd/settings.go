package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfg "github.com/abhisek/hashboard/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change saved settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		st, err := e.settings(nil).Load(cmd.Context())
		if err != nil {
			return err
		}

		due := "(14 days from now)"
		if st.Project.DueDate != nil {
			due = st.Project.DueDate.Local().Format("2006-01-02")
		}
		members := "(none)"
		if len(st.Team.Members) > 0 {
			members = strings.Join(st.Team.Members, ", ")
		}
		email := st.Team.UserEmail
		if email == "" {
			email = "(not set)"
		}

		rows := [][]string{
			{"Project", st.Project.Name},
			{"Description", st.Project.Description},
			{"Due date", due},
			{"Budget", fmt.Sprintf("$%.2f", st.Project.Budget)},
			{"Priority", st.Project.Priority.Label()},
			{"Your email", email},
			{"Team", members},
			{"Theme", st.Theme.Label()},
		}
		if !st.Configured {
			rows = append(rows, []string{"", "project settings not saved yet; defaults shown"})
		}
		printTable(cmd.OutOrStdout(), []string{"SETTING", "VALUE"}, rows)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove saved settings and go back to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.settings(nil).Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
		return nil
	},
}

var settingsThemeCmd = &cobra.Command{
	Use:       "theme <dark|light>",
	Short:     "Set the color theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(cfg.ThemeDark), string(cfg.ThemeLight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cfg.ParseTheme(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.settings(e.center()).SaveTheme(cmd.Context(), t); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s theme applied successfully!\n", t.Label())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsResetCmd, settingsThemeCmd)
}
