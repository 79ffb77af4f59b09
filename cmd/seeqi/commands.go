package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonyback0101-cmyk/seeqi/internal/config"
	"github.com/tonyback0101-cmyk/seeqi/internal/report"
)

// --- analyze ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one reading analysis against the local server",
	Long: `Run one reading analysis against the local server.

The input is a JSON file with palm, tongue and dream feature blocks, the
same shape the POST /v1/analyses endpoint accepts:

  seeqi analyze --file reading.json
  seeqi analyze --file reading.json --locale zh --timezone Asia/Shanghai`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		locale, _ := cmd.Flags().GetString("locale")
		timezone, _ := cmd.Flags().GetString("timezone")

		if file == "" {
			return fmt.Errorf("--file is required")
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}

		var req map[string]any
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parsing input file: %w", err)
		}
		if locale != "" {
			req["locale"] = locale
		}
		if timezone != "" {
			req["timezone"] = timezone
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		printStep("Analyzing reading...")
		resp, err := client.post(cmd.Context(), "/v1/analyses", req)
		if err != nil {
			return err
		}

		var result struct {
			ReportID string        `json:"report_id"`
			Report   report.Report `json:"report"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Report %s", result.ReportID)
		printStatus("Constitution", "%s", result.Report.Constitution)
		printStatus("Qi index", "%d (%s, trend %s)", result.Report.Qi.Index, result.Report.Qi.Tag, result.Report.Qi.Trend)
		for _, action := range result.Report.Actions {
			printStatus("Action", "%s", action)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("file", "", "path to a JSON file with palm, tongue and dream features")
	analyzeCmd.Flags().String("locale", "", "report locale (en or zh)")
	analyzeCmd.Flags().String("timezone", "", "IANA timezone for the qi rhythm date")
}

// --- reports ---

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List or show stored reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		metas, err := fetchReports(cmd.Context(), client, limit)
		if err != nil {
			return err
		}

		if len(metas) == 0 {
			printWarning("No reports stored yet")
			return nil
		}
		for _, m := range metas {
			fmt.Printf("  %s  %s  %-12s qi %d\n",
				m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Constitution, m.QiIndex)
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/v1/reports/" + args[0]
		if full {
			path += "?view=full"
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var payload json.RawMessage
		if err := decodeJSON(resp, &payload); err != nil {
			return err
		}

		var pretty map[string]any
		if err := json.Unmarshal(payload, &pretty); err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pretty)
	},
}

func init() {
	reportsListCmd.Flags().Int("limit", 20, "maximum number of reports to list")
	reportsShowCmd.Flags().Bool("full", false, "request the full access tier instead of the preview")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
