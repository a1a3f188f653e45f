// Package registry defines the crew data source contract and the validated
// in-memory snapshot the scheduling computations run against.
package registry

import (
	"context"
	"fmt"

	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// Source delivers the crew and mutation tables. Implementations fetch from
// the live registry, a local cache, or a composition of both.
type Source interface {
	FetchCrew(ctx context.Context) ([]model.CrewRecord, error)
	FetchMutations(ctx context.Context) ([]model.MutationRecord, error)
}

// Snapshot is a fully materialized, referentially consistent pair of tables.
// Every mutation in the snapshot refers to a crew record present in it.
type Snapshot struct {
	Crew      []model.CrewRecord
	Mutations []model.MutationRecord

	byCode map[int]int // seaman code -> index into Crew
}

// OrphanReport lists mutation rows rejected at ingestion because no crew
// record carries their seaman code.
type OrphanReport struct {
	Orphans []model.MutationRecord
}

// Empty reports whether ingestion rejected nothing.
func (r OrphanReport) Empty() bool { return len(r.Orphans) == 0 }

// Ingest validates the raw tables into a Snapshot. Orphaned mutation rows
// never enter the snapshot; they are collected in the report and logged, but
// do not fail the ingestion.
func Ingest(crew []model.CrewRecord, mutations []model.MutationRecord, log logger.Logger) (*Snapshot, OrphanReport) {
	s := &Snapshot{
		Crew:   crew,
		byCode: make(map[int]int, len(crew)),
	}
	for i, rec := range crew {
		s.byCode[rec.SeamanCode] = i
	}

	var report OrphanReport
	for _, m := range mutations {
		if _, ok := s.byCode[m.SeamanCode]; !ok {
			report.Orphans = append(report.Orphans, m)
			continue
		}
		s.Mutations = append(s.Mutations, m)
	}
	if !report.Empty() && log != nil {
		log.Warnf("rejected %d orphaned mutation rows at ingestion", len(report.Orphans))
	}
	return s, report
}

// Load fetches both tables from the source and ingests them.
func Load(ctx context.Context, src Source, log logger.Logger) (*Snapshot, OrphanReport, error) {
	crew, err := src.FetchCrew(ctx)
	if err != nil {
		return nil, OrphanReport{}, fmt.Errorf("fetch crew: %w", err)
	}
	mutations, err := src.FetchMutations(ctx)
	if err != nil {
		return nil, OrphanReport{}, fmt.Errorf("fetch mutations: %w", err)
	}
	snap, report := Ingest(crew, mutations, log)
	return snap, report, nil
}

// CrewByCode looks up a crew record by seaman code.
func (s *Snapshot) CrewByCode(code int) (model.CrewRecord, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return model.CrewRecord{}, false
	}
	return s.Crew[i], true
}

// MutationsFor returns the snapshot's mutations for one crew member, in
// table order.
func (s *Snapshot) MutationsFor(code int) []model.MutationRecord {
	var out []model.MutationRecord
	for _, m := range s.Mutations {
		if m.SeamanCode == code {
			out = append(out, m)
		}
	}
	return out
}
