package mediacore

// ProcessRequest is the body of POST /api/process. Convert reuses it with only
// Format set.
type ProcessRequest struct {
	Input      string `json:"input"`
	Output     string `json:"output,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Bitrate    string `json:"bitrate,omitempty"`
	Format     string `json:"format,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// ProcessResponse is returned by POST /api/process. In dry-run mode the backend
// puts the command string in Output.
type ProcessResponse struct {
	Output string `json:"output"`
}

// CompareRequest is the body of POST /api/compare.
type CompareRequest struct {
	Original  string `json:"original"`
	Processed string `json:"processed"`
}

// CompressRequest is the body of POST /api/compress.
type CompressRequest struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Bitrate string `json:"bitrate"`
	DryRun  bool   `json:"-"`
}

// CompressResponse is returned by POST /api/compress.
type CompressResponse struct {
	Output  string `json:"output"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MediaInfo describes a media file as reported by the backend.
type MediaInfo struct {
	Filename   string `json:"filename"`
	Format     string `json:"format"`
	Duration   string `json:"duration"`
	Resolution string `json:"resolution"`
	Bitrate    string `json:"bitrate"`
	Size       uint64 `json:"size"`
	Codec      string `json:"codec,omitempty"`
	FrameRate  string `json:"frame_rate,omitempty"`
}

// CompareResult holds both sides of a comparison. SizeDiffPercent is positive
// when the processed file is smaller than the original.
type CompareResult struct {
	Original          MediaInfo `json:"original"`
	Processed         MediaInfo `json:"processed"`
	SizeDiffPercent   float64   `json:"size_diff_percent"`
	ResolutionChanged bool      `json:"resolution_changed,omitempty"`
	FormatChanged     bool      `json:"format_changed,omitempty"`
	CodecChanged      bool      `json:"codec_changed,omitempty"`
	BitrateReduction  float64   `json:"bitrate_reduction_percent,omitempty"`
}

// HealthResponse is the optional body of GET /health.
type HealthResponse struct {
	Status          string            `json:"status"`
	Version         string            `json:"version"`
	FFmpegAvailable bool              `json:"ffmpeg_available"`
	FFmpegVersion   string            `json:"ffmpeg_version,omitempty"`
	Components      map[string]string `json:"components,omitempty"`
}
