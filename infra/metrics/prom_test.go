package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/fawsd/crewrotation/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSchedule(coremetrics.ScheduleEvent{
		Rank: "MASTER", GroupID: "D1", Vessels: 3, Candidates: 4,
		Duration: 20 * time.Millisecond,
	}))
	require.NoError(t, sink.RecordRelief(coremetrics.ReliefEvent{
		Kind: "relief", Rank: "MASTER", GroupID: "D1", Candidates: 2,
	}))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["rotation_schedules_total"])
	assert.True(t, names["rotation_schedule_seconds"])
	assert.True(t, names["relief_queries_total"])
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSink(reg)
	require.NoError(t, err)
	second, err := NewPromSink(reg)
	require.NoError(t, err)
	assert.Equal(t, first.schedules, second.schedules)
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSink(reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})

	require.NoError(t, multi.RecordSchedule(coremetrics.ScheduleEvent{Rank: "KKM", GroupID: "E1"}))
	require.NoError(t, multi.RecordRelief(coremetrics.ReliefEvent{Kind: "summary", Rank: "KKM"}))
}
