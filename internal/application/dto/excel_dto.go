package dto

// ExcelImportResult resultado del import masivo de componentes.
type ExcelImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
