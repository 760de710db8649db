package generator

// Result is the outcome of one creation attempt. When Success is false only
// ErrorMessage and Err are meaningful.
type Result struct {
	Success      bool   `json:"success"`
	FilePath     string `json:"file_path,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
	UsedTemplate bool   `json:"used_template"`
	FileSize     int64  `json:"file_size"`
	SnapshotID   string `json:"snapshot_id,omitempty"`

	// Err wraps one of the package sentinels on failure.
	Err error `json:"-"`
}

func failure(err error) *Result {
	err = wrap(err)
	return &Result{ErrorMessage: err.Error(), Err: err}
}
