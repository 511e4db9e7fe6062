package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"time"

	"github.com/jask/elections/internal/election"
)

// DefaultDelay simulates the latency of a remote catalog.
const DefaultDelay = time.Second

//go:embed fixture/elections.json
var fixtureJSON []byte

// Fixture returns a fresh copy of the built-in catalog.
func Fixture() ([]election.Record, error) {
	return DecodeRecords(bytes.NewReader(fixtureJSON))
}

// FixtureProvider serves the built-in catalog after Delay.
type FixtureProvider struct {
	Delay time.Duration
}

func (p FixtureProvider) Load(ctx context.Context) ([]election.Record, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return Fixture()
}
