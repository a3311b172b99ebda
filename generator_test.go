package testdataset

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"
)

func TestGenerateDocument_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := generateDocument(i)
		b := generateDocument(i)
		if a.ID != b.ID || !bytes.Equal(a.Body, b.Body) {
			t.Fatalf("document %d differs between calls: %s vs %s", i, a.Body, b.Body)
		}
	}
}

func TestGenerateDocument_Content(t *testing.T) {
	for i := 0; i < 25; i++ {
		doc := generateDocument(i)

		if doc.ID != strconv.Itoa(i) {
			t.Errorf("document %d: ID = %q", i, doc.ID)
		}

		var parsed struct {
			Scientist string `json:"scientist"`
			ID        int    `json:"id"`
		}
		if err := json.Unmarshal(doc.Body, &parsed); err != nil {
			t.Fatalf("document %d is not valid JSON: %v", i, err)
		}
		if parsed.ID != i {
			t.Errorf("document %d: id field = %d", i, parsed.ID)
		}
		if want := scientists[i%len(scientists)]; parsed.Scientist != want {
			t.Errorf("document %d: scientist = %q, want %q", i, parsed.Scientist, want)
		}
	}
}

// The byte-range contract must hold across the full default data set, where
// ids reach five digits and the longest corpus names cycle through.
func TestGenerateDocument_SizeRangeAtDefaultCount(t *testing.T) {
	var total int
	for i := 0; i < DefaultNumDocs; i++ {
		n := len(generateDocument(i).Body)
		if n > MaxDocSize {
			t.Fatalf("document %d is %d bytes, above the %d byte cap", i, n, MaxDocSize)
		}
		total += n
	}

	avg := total / DefaultNumDocs
	if avg < AverageDocSize || avg > MaxDocSize {
		t.Errorf("average document size %d outside [%d, %d]", avg, AverageDocSize, MaxDocSize)
	}
}
