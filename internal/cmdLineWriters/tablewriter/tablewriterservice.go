package tablewriterservice

import (
	"fmt"
	"io"

	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
	"github.com/RobsonDevCode/growmate-probe/internal/extensions"
	servicemodels "github.com/RobsonDevCode/growmate-probe/internal/services/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer, maxWidth int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{AutoWrap: tw.WrapNormal},
				Alignment:    tw.CellAlignment{Global: tw.AlignLeft},
				ColMaxWidths: tw.CellWidth{Global: maxWidth},
			},
		}),
	)
}

// DisplayAdvisory renders the decoded advisory in place of the raw body.
func DisplayAdvisory(w io.Writer, response models.AdvisoryResponse) {
	if failure := response.Failure(); failure != "" {
		fmt.Fprintf(w, "%s\n", color.RedString("Advisory API error: %s", failure))
		return
	}

	if response.Meta != nil {
		displaySoilProfile(w, *response.Meta)
	}

	if response.Advisory == nil {
		return
	}

	displayShoppingList(w, response.Advisory.ShoppingList)
	displaySchedule(w, response.Advisory.Schedule)
	displayAlerts(w, response.Advisory)
}

func displaySoilProfile(w io.Writer, meta models.AdvisoryMeta) {
	fmt.Fprintf(w, "\n %s %s | %s | %s | %s\n",
		color.CyanString("%s", meta.Mode), meta.Region, meta.Zone, meta.Topography, meta.Crop)

	profile := meta.SoilProfile
	table := newTable(w, 30)
	table.Header([]string{"Property", "Status", "ಸ್ಥಿತಿ"})

	rows := []struct {
		name  string
		value models.LocalizedText
	}{
		{"Soil Type", profile.Type},
		{"pH", profile.PhStatus},
		{"Nitrogen", profile.Nitrogen},
		{"Phosphorus", profile.Phosphorus},
		{"Potassium", profile.Potassium},
		{"Zinc", profile.Zinc},
		{"Iron", profile.Iron},
		{"Boron", profile.Boron},
		{"Sulphur", profile.Sulphur},
	}
	for _, row := range rows {
		table.Append([]string{row.name, row.value.En, row.value.Kn})
	}
	table.Append([]string{"pH Value", fmt.Sprintf("%.1f", profile.PhValue), ""})

	table.Render()
}

func displayShoppingList(w io.Writer, items []models.ShoppingItem) {
	if len(items) == 0 {
		fmt.Fprint(w, color.GreenString("\n Nothing to buy!\n"))
		return
	}

	fmt.Fprint(w, "\n Shopping List: \n")
	table := newTable(w, 40)
	table.Header([]string{"Product", "Quantity", "Bags", "Loose (kg)"})

	for _, item := range items {
		table.Append([]string{
			item.Name.En,
			item.QtyDisplay.En,
			fmt.Sprintf("%d", item.Bags),
			fmt.Sprintf("%.1f", item.LooseKg),
		})
	}

	table.Render()
}

func displaySchedule(w io.Writer, schedule []models.ScheduleItem) {
	if len(schedule) == 0 {
		return
	}

	fmt.Fprint(w, "\n Schedule: \n")
	table := newTable(w, 40)
	table.Header([]string{"Date", "Activity", "Products", "Instructions"})

	for _, item := range schedule {
		table.Append([]string{
			item.Date,
			item.Activity.En,
			extensions.TruncateString(extensions.FlattenJson(item.Products.En), 120),
			extensions.TruncateString(extensions.FlattenJson(item.Instructions), 120),
		})
	}

	table.Render()
}

func displayAlerts(w io.Writer, advisory *models.Advisory) {
	alerts := extensions.FlattenJsonList(advisory.Alerts)
	alerts = append(alerts, extensions.FlattenJsonList(advisory.QuickDecisions)...)
	for _, warning := range advisory.CropAdvice.Warnings {
		alerts = append(alerts, warning.En)
	}

	if len(alerts) > 0 {
		fmt.Fprintf(w, "%s", color.YellowString("\n Alerts: \n"))
		for _, alert := range alerts {
			fmt.Fprintf(w, "  - %s\n", alert)
		}
	}

	if savings := extensions.FlattenJson(advisory.SavingsMsg); savings != "" {
		fmt.Fprintf(w, "\n %s\n", color.GreenString("%s", savings))
	}
}

func DisplayScenarioTable(w io.Writer, results []servicemodels.ScenarioResult) {
	table := newTable(w, 24)
	table.Header([]string{"Scenario", "Region", "Zone", "Topography", "Soil", "Potassium", "pH", "Potash", "Result"})

	failed := 0
	for _, result := range results {
		status := color.GreenString("MATCH")
		if result.Err != nil {
			status = color.RedString("ERROR")
			failed++
		} else if !result.Passed() {
			status = color.RedString("MISMATCH")
			failed++
		}

		table.Append([]string{
			result.Name,
			result.Region,
			result.Zone,
			result.Topography,
			result.Texture,
			result.Potassium,
			result.PhStatus,
			result.Potash,
			status,
		})
	}

	table.Render()

	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(w, "%s\n", color.RedString(" %s: %s", result.Name, result.Err.Error()))
		}
		for _, mismatch := range result.Mismatches {
			fmt.Fprintf(w, "%s\n", color.RedString(" %s: %s", result.Name, mismatch))
		}
	}

	fmt.Fprintf(w, "\n %d/%d scenarios matched\n", len(results)-failed, len(results))
}

func DisplayBenchmarkTable(w io.Writer, report servicemodels.BenchmarkReport) {
	table := newTable(w, 40)
	table.Header([]string{"Metric", "Value"})

	table.Append([]string{"Target", report.Url})
	table.Append([]string{"Requests", fmt.Sprintf("%d", report.Requests)})
	table.Append([]string{"Concurrency", fmt.Sprintf("%d", report.Concurrency)})
	table.Append([]string{"Failures", fmt.Sprintf("%d", report.Failures)})
	table.Append([]string{"Total Time", fmt.Sprintf("%.2fs", report.TotalTime.Seconds())})
	table.Append([]string{"Avg Latency", fmt.Sprintf("%.4f ms", report.AvgMs)})
	table.Append([]string{"P50 Latency", fmt.Sprintf("%.4f ms", report.P50Ms)})
	table.Append([]string{"P99 Latency", fmt.Sprintf("%.4f ms", report.P99Ms)})

	table.Render()

	verdict := string(report.Verdict)
	if report.Verdict == servicemodels.VerdictSlow {
		verdict = color.RedString("%s", verdict)
	} else {
		verdict = color.GreenString("%s", verdict)
	}
	fmt.Fprintf(w, "\nRESULT: %s\n", verdict)
}
