package ingest

// Result holds the outcome of ingesting one report document.
type Result struct {
	ParticipantsFound  int   `json:"participants_found"`
	RecordsParsed      int   `json:"records_parsed"`
	PlaceholdersParsed int   `json:"placeholders_parsed"`
	RecordsInserted    int64 `json:"records_inserted"`
	RecordsUpdated     int64 `json:"records_updated"`
	FieldsDegraded     int   `json:"fields_degraded,omitempty"`
}
