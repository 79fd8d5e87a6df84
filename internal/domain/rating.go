package domain

// RatingRecord is one row of a secondary rating dataset (rum or whiskey
// reviews). Loaded read-only from a static file; never persisted here.
type RatingRecord struct {
	SubjectName string `json:"subjectName"`
	Score       float64 `json:"score"`
	ReviewCount *int    `json:"reviewCount,omitempty"`
	SourceLabel string  `json:"sourceLabel,omitempty"`
}

// ReconciledProduct is a Product augmented with the fields of at most one
// matched RatingRecord. All rating fields are nil/empty when no candidate
// met the acceptance threshold.
type ReconciledProduct struct {
	Product

	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"reviewCount"`
	Source      string   `json:"source,omitempty"`

	// PersonalRating is the user's own 0-100 score, merged from the
	// preference store. Independent of the fuzzy match.
	PersonalRating *int `json:"personalRating,omitempty"`
}

// DatasetSchema maps a rating dataset's column names onto RatingRecord
// fields. Resolved once at load time; per-dataset configuration, never
// probed per row.
type DatasetSchema struct {
	NameColumn        string   `mapstructure:"name_column"`
	ScoreColumn       string   `mapstructure:"score_column"`
	ReviewCountColumn string   `mapstructure:"review_count_column"`
	SourceColumns     []string `mapstructure:"source_columns"` // first present column wins
}
