package queue

const (
	TypeVocabularyImport = "vocabulary:import"
)

// VocabularyImportPayload carries words to append to the stored vocabulary.
type VocabularyImportPayload struct {
	Words  []string `json:"words"`
	Source string   `json:"source"` // file name or other origin, for logs
}
