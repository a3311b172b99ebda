package testdataset

import (
	"fmt"
	"strconv"
)

// document is a single synthetic document destined for the bulk indexer.
type document struct {
	ID   string
	Body []byte
}

// scientists is the corpus the generator cycles through. Keeping it fixed
// makes document contents a pure function of position, so re-seeding an
// index is idempotent and tests can assert on exact field values. Names are
// at most eight bytes so generated documents honor the MaxDocSize cap.
var scientists = [...]string{
	"Einstein",
	"Darwin",
	"Kepler",
	"Pasteur",
	"Curie",
	"Faraday",
	"Newton",
	"Bohr",
	"Galilei",
	"Maxwell",
}

// generateDocument produces the synthetic document at position i, of the
// form {"scientist":"<name>","id":<i>}. The document ID equals the position
// so repeated seeding overwrites rather than duplicates. Bodies stay within
// MaxDocSize for positions up to five digits (99999), which covers the
// default document count.
func generateDocument(i int) document {
	return document{
		ID:   strconv.Itoa(i),
		Body: fmt.Appendf(nil, `{"scientist":"%s","id":%d}`, scientists[i%len(scientists)], i),
	}
}
