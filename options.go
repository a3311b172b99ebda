package testdataset

import "errors"

// Option configures a DataSet.
type Option func(*DataSet) error

// WithReadIndex overrides the read index name.
func WithReadIndex(name string) Option {
	return func(d *DataSet) error {
		if name == "" {
			return errors.New("read index name must not be empty")
		}
		d.readIndex = name
		return nil
	}
}

// WithWriteIndexBase overrides the base name the run identifier is appended
// to. Defaults to the read index name.
func WithWriteIndexBase(name string) Option {
	return func(d *DataSet) error {
		if name == "" {
			return errors.New("write index base must not be empty")
		}
		d.writeBase = name
		return nil
	}
}

// WithRunID sets an explicit run identifier instead of the default
// epoch-millisecond suffix. Useful when several processes may start within
// the same millisecond.
func WithRunID(id string) Option {
	return func(d *DataSet) error {
		if id == "" {
			return errors.New("run id must not be empty")
		}
		d.runID = id
		return nil
	}
}

// WithDocumentCount overrides the number of documents to seed.
func WithDocumentCount(n int) Option {
	return func(d *DataSet) error {
		if n <= 0 {
			return errors.New("document count must be positive")
		}
		d.numDocs = n
		return nil
	}
}

// WithDocumentType overrides the document type label.
func WithDocumentType(t string) Option {
	return func(d *DataSet) error {
		if t == "" {
			return errors.New("document type must not be empty")
		}
		d.docType = t
		return nil
	}
}
