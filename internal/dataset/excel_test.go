package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/4zj9/pairbench/internal/models"
)

func TestLoad_ExcelWorkbook(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"question1", "question2", "is_duplicate"},
		{"How old are you?", "What is your age?", 1},
		{"Where is Paris?", "Who wrote Hamlet?", 0},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "pairs.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	res, err := NewLoader().Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Provenance != models.ProvenanceReal {
		t.Errorf("provenance = %s", res.Provenance)
	}
	if res.Dataset.Count() != 2 {
		t.Fatalf("count = %d", res.Dataset.Count())
	}
	if res.Dataset.Records[0].Text != "How old are you? [SEP] What is your age?" {
		t.Errorf("text = %q", res.Dataset.Records[0].Text)
	}
}
