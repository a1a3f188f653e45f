package promotion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fawsd/crewrotation/core/model"
	corepromotion "github.com/fawsd/crewrotation/core/promotion"
	"github.com/fawsd/crewrotation/infra/logger"
)

type stubSource struct {
	crew      []model.CrewRecord
	mutations []model.MutationRecord
	err       error
}

func (s stubSource) FetchCrew(context.Context) ([]model.CrewRecord, error) {
	return s.crew, s.err
}

func (s stubSource) FetchMutations(context.Context) ([]model.MutationRecord, error) {
	return s.mutations, s.err
}

func testDeps(src stubSource) Deps {
	return Deps{Source: src, Log: logger.NopLogger{}}
}

func TestCandidatesHandler(t *testing.T) {
	old := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	src := stubSource{
		crew: []model.CrewRecord{
			{SeamanCode: 1, Name: "BUDI", Rank: "MUALIM I", Certificate: "ANT-I"},
			{SeamanCode: 2, Name: "AGUS", Rank: "MUALIM I", Certificate: "ANT-II"},
		},
		mutations: []model.MutationRecord{
			{SeamanCode: 1, TransactionDate: old, FromVessel: "MV ONE", ToVessel: "MV TWO"},
			{SeamanCode: 2, TransactionDate: old, FromVessel: "MV ONE", ToVessel: "MV TWO"},
		},
	}
	h := NewCandidatesHandler(testDeps(src))

	req := httptest.NewRequest(http.MethodGet,
		"/api/promotion?rank=MUALIM+I&certificate=ANT-I&tenure_years=3", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Candidates []corepromotion.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, 1, resp.Candidates[0].SeamanCode)
}

func TestCandidatesHandlerVesselDiversity(t *testing.T) {
	old := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	src := stubSource{
		crew: []model.CrewRecord{
			{SeamanCode: 1, Name: "BUDI", Rank: "MUALIM I", Certificate: "ANT-I"},
			{SeamanCode: 2, Name: "AGUS", Rank: "MUALIM I", Certificate: "ANT-I"},
		},
		mutations: []model.MutationRecord{
			// code 1 served on two listed vessels, code 2 on one.
			{SeamanCode: 1, TransactionDate: old, FromVessel: "MV ONE", ToVessel: "MV TWO"},
			{SeamanCode: 2, TransactionDate: old, FromVessel: "MV ONE", ToVessel: "MV ONE"},
		},
	}
	h := NewCandidatesHandler(testDeps(src))

	req := httptest.NewRequest(http.MethodGet,
		"/api/promotion?rank=MUALIM+I&certificate=ANT-I&vessels=MV+ONE,MV+TWO", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Candidates []corepromotion.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, 1, resp.Candidates[0].SeamanCode)
}

func TestCandidatesHandlerMissingParams(t *testing.T) {
	h := NewCandidatesHandler(testDeps(stubSource{}))
	req := httptest.NewRequest(http.MethodGet, "/api/promotion?rank=MUALIM+I", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCandidatesHandlerBadTenure(t *testing.T) {
	h := NewCandidatesHandler(testDeps(stubSource{}))
	req := httptest.NewRequest(http.MethodGet,
		"/api/promotion?rank=MUALIM+I&certificate=ANT-I&tenure_years=soon", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCandidatesHandlerSourceFailure(t *testing.T) {
	h := NewCandidatesHandler(testDeps(stubSource{err: errors.New("registry down")}))
	req := httptest.NewRequest(http.MethodGet,
		"/api/promotion?rank=MUALIM+I&certificate=ANT-I", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestCandidatesHandlerMethodNotAllowed(t *testing.T) {
	h := NewCandidatesHandler(testDeps(stubSource{}))
	req := httptest.NewRequest(http.MethodPost, "/api/promotion", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
