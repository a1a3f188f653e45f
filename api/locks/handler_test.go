package locks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fawsd/crewrotation/core/lock"
	"github.com/fawsd/crewrotation/infra/logger"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	store, err := lock.NewSQLiteStore(filepath.Join(t.TempDir(), "locks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return Deps{Store: store, Log: logger.NopLogger{}}
}

func saveBody() string {
	return `{
		"group_key": "D1",
		"rank": "NAKHODA",
		"schedule": {"columns": ["Ship"], "data": [{"Ship": "MV ONE"}]},
		"crew": {"columns": ["Index"], "data": []},
		"locked_codes": [101, 102],
		"locked_by": "planner"
	}`
}

func TestSaveAndList(t *testing.T) {
	deps := testDeps(t)

	rr := httptest.NewRecorder()
	NewSaveHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks", strings.NewReader(saveBody())))
	require.Equal(t, http.StatusOK, rr.Code)
	var saved map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved["id"])

	rr = httptest.NewRecorder()
	NewListHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodGet, "/api/locks?rank=NAKHODA", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var locks []lock.LockedRotation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &locks))
	require.Len(t, locks, 1)
	assert.Equal(t, "D1", locks[0].GroupKey)
	assert.Equal(t, []int{101, 102}, locks[0].LockedCodes)
}

func TestSaveRejectsIncompleteBody(t *testing.T) {
	deps := testDeps(t)
	rr := httptest.NewRecorder()
	NewSaveHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks", strings.NewReader(`{"rank": "NAKHODA"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnlock(t *testing.T) {
	deps := testDeps(t)
	rr := httptest.NewRecorder()
	NewSaveHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks", strings.NewReader(saveBody())))
	require.Equal(t, http.StatusOK, rr.Code)

	body := `{"group_key": "D1", "rank": "NAKHODA"}`
	rr = httptest.NewRecorder()
	NewUnlockHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks/unlock", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rr.Code)

	// A second unlock finds nothing.
	rr = httptest.NewRecorder()
	NewUnlockHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks/unlock", strings.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCodes(t *testing.T) {
	deps := testDeps(t)
	rr := httptest.NewRecorder()
	NewSaveHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/locks", strings.NewReader(saveBody())))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewCodesHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodGet, "/api/locks/codes?rank=NAKHODA", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string][]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []int{101, 102}, resp["locked_codes"])
}

func TestCodesEmpty(t *testing.T) {
	deps := testDeps(t)
	rr := httptest.NewRecorder()
	NewCodesHandler(deps).ServeHTTP(rr,
		httptest.NewRequest(http.MethodGet, "/api/locks/codes", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"locked_codes": []}`, rr.Body.String())
}
