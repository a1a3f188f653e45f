package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/model"
	"github.com/fawsd/crewrotation/infra/logger"
)

func testIndex(t *testing.T) *fleet.Index {
	t.Helper()
	cfg := fleet.Config{
		ContainerDeck: []fleet.Group{
			{Name: "group 1", Vessels: []string{"MV ONE", "MV TWO", "MV THREE"}},
			{Name: "group 2", Vessels: []string{"MV FOUR"}},
		},
	}
	ix, err := fleet.Build(cfg, fleet.FleetContainer, fleet.CategoryDeck, logger.NopLogger{})
	require.NoError(t, err)
	return ix
}

func rec(code int, name, rank, location, end string) model.CrewRecord {
	return model.CrewRecord{
		SeamanCode: code,
		Name:       name,
		Rank:       rank,
		Location:   location,
		EndDate:    end,
	}
}

func TestBuildCandidateListOrdering(t *testing.T) {
	ix := testIndex(t)
	crew := []model.CrewRecord{
		rec(1, "LATE", "MASTER", "MV ONE", "01/12/2026"),
		rec(2, "SOON", "MASTER", "MV TWO", "01/06/2026"),
		rec(3, "MID", "MASTER", "MV THREE", "01/09/2026"),
		rec(4, "OTHER GROUP", "MASTER", "MV FOUR", "01/01/2026"),
		rec(5, "OTHER RANK", "CH.OFFICER", "MV ONE", "01/01/2026"),
		rec(6, "NO DATE", "MASTER", "MV ONE", "soon"),
	}
	pool := Pool{Logger: logger.NopLogger{}}
	got := pool.BuildCandidateList(crew, ix, "MASTER", "D1", nil)

	require.Len(t, got, 4)
	assert.Equal(t, "SOON", got[0].Name)
	assert.Equal(t, "MID", got[1].Name)
	assert.Equal(t, "LATE", got[2].Name)
	assert.Equal(t, "NO DATE", got[3].Name, "unparseable end date sorts last")
	for i, c := range got {
		assert.Equal(t, SlotID(i+1), c.Slot)
	}
}

func TestBuildCandidateListReserves(t *testing.T) {
	ix := testIndex(t)
	crew := []model.CrewRecord{
		rec(1, "ONBOARD", "MASTER", "MV ONE", "01/06/2026"),
		rec(9, "RESERVE", "MASTER", "DARAT", ""),
	}
	pool := Pool{Logger: logger.NopLogger{}}
	got := pool.BuildCandidateList(crew, ix, "MASTER", "D1", []int{9, 404})

	require.Len(t, got, 2, "unknown reserve code is skipped, not fatal")
	assert.Equal(t, "RESERVE", got[0].Name)
	assert.True(t, got[0].Reserve)
	assert.Equal(t, "ONBOARD", got[1].Name)
	assert.False(t, got[1].Reserve)
}

func TestVesselOrder(t *testing.T) {
	candidates := []Candidate{
		{Name: "R", Vessel: "DARAT", Reserve: true},
		{Name: "A", Vessel: "MV TWO"},
		{Name: "B", Vessel: "MV ONE"},
		{Name: "C", Vessel: "MV TWO"},
	}
	assert.Equal(t, []string{"MV TWO", "MV ONE"}, VesselOrder(candidates))
}
