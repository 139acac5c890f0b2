package pipeline

import (
	"image-analysis/internal/sink"
)

// ManifestEntry represents one item in the output manifest.
type ManifestEntry struct {
	Name       string      `json:"name"`
	Source     string      `json:"source"`
	Width      int         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Stages     []StageFile `json:"stages,omitempty"`
	Components int         `json:"components"`
	Centers    []int       `json:"centers,omitempty"`
	Converged  bool        `json:"converged"`
	Error      string      `json:"error,omitempty"`
}

// Summary counts the successes and failures of a run.
func Summary(results []Result) (success, failed int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
	}
	return success, failed
}

// WriteManifest writes one entry per result, in order, to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:       r.Name,
			Source:     r.Path,
			Width:      r.Width,
			Height:     r.Height,
			Stages:     r.Stages,
			Components: r.Components,
			Centers:    r.Centers,
			Converged:  r.Converged,
			Error:      r.Error,
		}
	}
	return sink.WriteJSON(path, entries)
}
