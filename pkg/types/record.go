package types

import (
	"crypto/sha1"
	"encoding/hex"
)

// DescriptionRecord is the stored metadata for one automaton description.
type DescriptionRecord struct {
	ID     DescID `json:"id"`
	Source string `json:"source"` // file path, or "-" for stdin
	Size   int64  `json:"size"`   // description size in bytes
	States int    `json:"states"`
	Rules  int    `json:"rules"`
}

// RunRecord is one recorded simulation outcome.
type RunRecord struct {
	StructuralID string `json:"structural_id"` // SHA-1(desc_id + '\0' + input), the dedup key
	DescID       DescID `json:"desc_id"`
	Source       string `json:"source"`
	Input        string `json:"input"`
	Accepted     bool   `json:"accepted"`
	Output       string `json:"output"` // canonical outcome text (path wire form or Reject)
	Steps        int    `json:"steps"`  // transitions in the witness path, 0 on reject
}

// ComputeRunStructuralID computes the content-based dedup ID for a run.
// Format: SHA-1(desc_id + '\0' + input)
func ComputeRunStructuralID(descID DescID, input string) string {
	h := sha1.New()

	h.Write(descID[:])
	h.Write([]byte{0}) // null byte separator

	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}
