package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/4zj9/pairbench/internal/models"
)

const sheet = "Comparison"

// WriteWorkbook writes the comparison table to an XLSX workbook at path, with
// bar charts for accuracy, F1, training time, and precision/recall. Failed
// variants are excluded from the charts but listed below the table.
func WriteWorkbook(path string, run *models.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	header := []interface{}{"Model", "Accuracy", "Precision", "Recall", "F1", "Training Time (s)"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	succeeded := run.Table.Succeeded()
	for i, r := range succeeded {
		m := r.Metrics
		row := []interface{}{r.Variant, m.Accuracy, m.Precision, m.Recall, m.F1, m.TrainingTimeSeconds}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	failedRow := len(succeeded) + 3
	for _, r := range run.Table.Results {
		if !r.Failed {
			continue
		}
		row := []interface{}{r.Variant, "failed: " + r.Error}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", failedRow), &row); err != nil {
			return err
		}
		failedRow++
	}

	if len(succeeded) > 0 {
		lastRow := len(succeeded) + 1
		charts := []struct {
			cell    string
			title   string
			columns []string
			names   []string
		}{
			{"H1", "Accuracy Comparison", []string{"B"}, []string{"Accuracy"}},
			{"H17", "F1 Score Comparison", []string{"E"}, []string{"F1"}},
			{"P1", "Training Time Comparison (seconds)", []string{"F"}, []string{"Training Time (s)"}},
			{"P17", "Precision and Recall Comparison", []string{"C", "D"}, []string{"Precision", "Recall"}},
		}
		for _, c := range charts {
			series := make([]excelize.ChartSeries, len(c.columns))
			for i, col := range c.columns {
				series[i] = excelize.ChartSeries{
					Name:       c.names[i],
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow),
					Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, col, col, lastRow),
				}
			}
			chart := &excelize.Chart{
				Type:   excelize.Col,
				Series: series,
				Title:  []excelize.RichTextRun{{Text: c.title}},
			}
			if err := f.AddChart(sheet, c.cell, chart); err != nil {
				return fmt.Errorf("add chart %q: %w", c.title, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
