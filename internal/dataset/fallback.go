package dataset

import "github.com/4zj9/pairbench/internal/models"

// fallbackRecords is the built-in sample substituted when a source cannot be
// read. It spans both labels so every downstream component can still run.
var fallbackRecords = []models.Record{
	{Text: "How do I improve my English?" + models.Separator + "What are some ways to improve my English?", Label: 1.0},
	{Text: "What is the capital of France?" + models.Separator + "What is the population of Germany?", Label: 0.0},
	{Text: "How to lose weight fast?" + models.Separator + "What are some effective ways to lose weight quickly?", Label: 1.0},
}

// Fallback returns a fresh copy of the built-in sample dataset.
func Fallback() *models.Dataset {
	records := make([]models.Record, len(fallbackRecords))
	copy(records, fallbackRecords)
	return &models.Dataset{Records: records}
}

func fallbackResult() *LoadResult {
	return &LoadResult{Dataset: Fallback(), Provenance: models.ProvenanceFallback}
}
