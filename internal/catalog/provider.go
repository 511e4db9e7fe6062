// Package catalog supplies the election records shown by the app.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/elections/internal/election"
)

// ErrRetrieval is the single failure surfaced when the catalog cannot be
// obtained. Callers never receive partial data alongside it.
var ErrRetrieval = errors.New("election data retrieval failed")

// Provider loads the full catalog.
type Provider interface {
	Load(ctx context.Context) ([]election.Record, error)
}

// DecodeRecords reads a JSON array of records. Records without an id get
// a stable one derived from their content.
func DecodeRecords(r io.Reader) ([]election.Record, error) {
	var records []election.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range records {
		if strings.TrimSpace(records[i].ID) == "" {
			records[i].ID = DeriveID(records[i])
		}
	}
	return records, nil
}

// DeriveID returns a UUIDv5 built from type, name and first-round date.
func DeriveID(r election.Record) string {
	key := "election:" + r.Type + "|" + r.Name
	if first, ok := r.FirstRound(); ok {
		key += "|" + first.Date.String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// FileProvider reads the catalog from a JSON file with the fixture's shape.
type FileProvider struct {
	Path string
}

func (p FileProvider) Load(ctx context.Context) ([]election.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Path, err)
	}
	defer f.Close()
	return DecodeRecords(f)
}
