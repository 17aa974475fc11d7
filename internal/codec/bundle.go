package codec

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/oyin-bo/lexigen/internal/words"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// BundleVersion is the current bundle format version.
const BundleVersion = 1

// Bundle is the on-disk record of a run: the word table and, optionally,
// the encoded sequence. It lets a table be reused and lets the decode
// contract be checked offline.
type Bundle struct {
	Version int      `cbor:"1,keyasint"`
	Words   []string `cbor:"2,keyasint"`
	Encoded []string `cbor:"3,keyasint,omitempty"`
}

// NewBundle captures table and encoded (which may be nil).
func NewBundle(table *words.Table, encoded []string) *Bundle {
	return &Bundle{
		Version: BundleVersion,
		Words:   table.Words(),
		Encoded: encoded,
	}
}

// Table validates and returns the bundle's word table.
func (b *Bundle) Table() (*words.Table, error) {
	table, err := words.NewTable(b.Words)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "bundle holds an invalid word table")
	}
	return table, nil
}

// MarshalBundle encodes b as canonical CBOR.
func MarshalBundle(b *Bundle) ([]byte, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "cannot create CBOR encoder")
	}
	data, err := em.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "cannot encode bundle")
	}
	return data, nil
}

// UnmarshalBundle decodes and version-checks a bundle.
func UnmarshalBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "cannot decode bundle")
	}
	if b.Version != BundleVersion {
		return nil, errors.Newf(errors.InvalidInput, "unsupported bundle version %d", b.Version)
	}
	return &b, nil
}

// ReadBundle loads a bundle from path.
func ReadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.IOError, fmt.Sprintf("cannot read bundle %s", path))
	}
	return UnmarshalBundle(data)
}
