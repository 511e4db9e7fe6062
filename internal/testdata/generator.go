// Package testdata builds election catalogs for tests.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/elections/internal/election"
)

// Types is the label vocabulary used by Catalog.
var Types = []string{
	"Départementales",
	"Européennes",
	"Législatives",
	"Municipales",
	"Présidentielle",
	"Régionales",
	"Sénatoriales",
}

// Fixed is a round whose day is officially known.
func Fixed(date string) election.RoundDate {
	return election.RoundDate{Date: election.MustCivilDate(date), IsDateFixed: true}
}

// Approx is a round only known to the month; the day is stored as 1.
func Approx(month string) election.RoundDate {
	return election.RoundDate{Date: election.MustCivilDate(month + "-01")}
}

// Election builds a record with one round per date, numbered in order.
func Election(id, typ string, dates ...election.RoundDate) election.Record {
	rounds := make([]election.RoundDate, len(dates))
	for i, rd := range dates {
		rd.Round = i + 1
		rounds[i] = rd
	}
	return election.Record{
		ID:          id,
		Type:        typ,
		Name:        "Élections " + typ,
		Description: "Election " + id,
		Rounds:      len(rounds),
		Dates:       rounds,
	}
}

// Catalog creates n valid records with random types and dates between
// 2024 and 2029. Collisions on first-round dates are frequent on purpose.
func Catalog(rng *rand.Rand, n int) []election.Record {
	out := make([]election.Record, 0, n)
	for i := 0; i < n; i++ {
		typ := Types[rng.Intn(len(Types))]
		fixed := rng.Intn(2) == 0
		day := 1
		if fixed {
			day = 1 + rng.Intn(28)
		}
		first := time.Date(2024+rng.Intn(6), time.Month(1+rng.Intn(12)), day, 0, 0, 0, 0, time.UTC)

		dates := []election.RoundDate{{Date: election.DateOf(first), IsDateFixed: fixed}}
		if rng.Intn(3) > 0 {
			second := first.AddDate(0, 0, 7*(1+rng.Intn(2)))
			dates = append(dates, election.RoundDate{Date: election.DateOf(second), IsDateFixed: fixed})
		}
		out = append(out, Election(fmt.Sprintf("gen-%d", i+1), typ, dates...))
	}
	return out
}
