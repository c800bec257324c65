package ir

// NOTE: These are store-layer records, not part of the project file.
// Seq is the SQLite autoincrement key and orders records per project.

// DerivationRecord summarizes one successful derivation run.
type DerivationRecord struct {
	Seq       int64  `json:"seq"`
	ProjectID string `json:"project_id"`
	Language  int    `json:"language"`
	Ancestor  int    `json:"ancestor"`
	Fused     int    `json:"fused"`     // existing single-parent words refreshed
	Inherited int    `json:"inherited"` // new words appended
	Preserved int    `json:"preserved"` // coinages, loans and blends left untouched
	Digest    string `json:"digest"`    // VocabularyDigest after the run
}

// Snapshot is a stored copy of a whole project.
type Snapshot struct {
	Seq       int64  `json:"seq"`
	ProjectID string `json:"project_id"`
	Digest    string `json:"digest"`
	Body      []byte `json:"-"`
}
