package excelexportservice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
	"github.com/RobsonDevCode/growmate-probe/internal/extensions"
	"github.com/xuri/excelize/v2"
)

const SaveFileTo = "./export"

const (
	profileSheetName  = "Soil Profile"
	shoppingSheetName = "Shopping List"
	scheduleSheetName = "Schedule"
)

var (
	profileHeaders  = []interface{}{"Property", "Status (en)", "Status (kn)"}
	shoppingHeaders = []interface{}{"Product (en)", "Product (kn)", "Quantity (en)", "Quantity (kn)", "Bags", "Loose (kg)"}
	scheduleHeaders = []interface{}{"Date", "Activity (en)", "Activity (kn)", "Products (en)", "Products (kn)", "Instructions"}
)

// ExportAdvisory writes the advisory to a workbook under dir and returns its
// path.
func ExportAdvisory(response models.AdvisoryResponse, dir string, now time.Time) (string, error) {
	if response.Meta == nil || response.Advisory == nil {
		return "", fmt.Errorf("advisory response has nothing to export")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating directory %s, %w", dir, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", profileSheetName); err != nil {
		return "", fmt.Errorf("error naming sheet: %w", err)
	}
	for _, name := range []string{shoppingSheetName, scheduleSheetName} {
		if _, err := file.NewSheet(name); err != nil {
			return "", fmt.Errorf("error creating sheet %s: %w", name, err)
		}
	}

	if err := writeProfile(file, response.Meta.SoilProfile); err != nil {
		return "", err
	}
	if err := writeShoppingList(file, response.Advisory.ShoppingList); err != nil {
		return "", err
	}
	if err := writeSchedule(file, response.Advisory.Schedule); err != nil {
		return "", err
	}

	crop := strings.ToLower(strings.ReplaceAll(response.Meta.Crop, " ", "_"))
	if crop == "" {
		crop = "unknown"
	}
	fileName := fmt.Sprintf("advisory_%s_%s.xlsx", crop, now.Format("2006-01-02T15-04-05"))
	fullPath := filepath.Join(dir, fileName)

	if err := file.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save excel to %s, %w", fullPath, err)
	}

	return fullPath, nil
}

func writeProfile(file *excelize.File, profile models.SoilProfile) error {
	rows := [][]interface{}{
		profileHeaders,
		{"Soil Type", profile.Type.En, profile.Type.Kn},
		{"pH", profile.PhStatus.En, profile.PhStatus.Kn},
		{"pH Value", profile.PhValue, ""},
		{"Nitrogen", profile.Nitrogen.En, profile.Nitrogen.Kn},
		{"Phosphorus", profile.Phosphorus.En, profile.Phosphorus.Kn},
		{"Potassium", profile.Potassium.En, profile.Potassium.Kn},
		{"Zinc", profile.Zinc.En, profile.Zinc.Kn},
		{"Iron", profile.Iron.En, profile.Iron.Kn},
		{"Boron", profile.Boron.En, profile.Boron.Kn},
		{"Sulphur", profile.Sulphur.En, profile.Sulphur.Kn},
	}

	return writeRows(file, profileSheetName, rows)
}

func writeShoppingList(file *excelize.File, items []models.ShoppingItem) error {
	rows := [][]interface{}{shoppingHeaders}
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.Name.En,
			item.Name.Kn,
			item.QtyDisplay.En,
			item.QtyDisplay.Kn,
			item.Bags,
			item.LooseKg,
		})
	}

	return writeRows(file, shoppingSheetName, rows)
}

func writeSchedule(file *excelize.File, schedule []models.ScheduleItem) error {
	rows := [][]interface{}{scheduleHeaders}
	for _, item := range schedule {
		rows = append(rows, []interface{}{
			item.Date,
			item.Activity.En,
			item.Activity.Kn,
			extensions.FlattenJson(item.Products.En),
			extensions.FlattenJson(item.Products.Kn),
			extensions.FlattenJson(item.Instructions),
		})
	}

	return writeRows(file, scheduleSheetName, rows)
}

func writeRows(file *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1) // excel is 1 indexed
		if err != nil {
			return fmt.Errorf("error resolving cell for row %d: %w", i+1, err)
		}

		rowData := row
		if err := file.SetSheetRow(sheet, cell, &rowData); err != nil {
			return fmt.Errorf("error writing row %d to %s: %w", i+1, sheet, err)
		}
	}

	return nil
}
