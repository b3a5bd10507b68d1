package service

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pettzin/ProjetoAstracode/internal/logbook"
)

// setupTestLogbook points the action log at a temporary directory and removes
// it again when the test is done.
func setupTestLogbook(t *testing.T) *logbook.Logbook {
	lb, err := logbook.New(t.TempDir())
	if err != nil {
		t.Fatalf("could not create logbook: %s", err)
	}
	SetupLogbook(lb)
	t.Cleanup(func() { SetupLogbook(nil) })
	return lb
}

// TestRecordLog executes a POST request against the client logging endpoint. It expects that the
// entry lands in the log file with action, user and data.
func TestRecordLog(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	lb := setupTestLogbook(t)

	expectPreparedStatements(mock)

	recorder := runTest(db, "POST", "/api/log", strings.NewReader(`
		{
			"action": "createGroup",
			"userId": "system",
			"data": {"groupName": "amigos"}
		}
	`))
	assert.Equal(t, http.StatusCreated, recorder.Code)

	lines, err := lb.Tail(10)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
	assert.Contains(t, lines[0], "[CREATEGROUP]")
	assert.Contains(t, lines[0], "[User: system]")
	assert.Contains(t, lines[0], `"groupName":"amigos"`)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestRecordLogMissingAction executes a POST request without an action. It expects that the HTTP
// request is answered with the BAD REQUEST status code.
func TestRecordLogMissingAction(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	setupTestLogbook(t)

	expectPreparedStatements(mock)

	recorder := runTest(db, "POST", "/api/log", strings.NewReader(`{"userId": "system"}`))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestReadLogs executes a GET request for the last log lines. It expects a JSON array with the
// recorded entries, newest last.
func TestReadLogs(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	lb := setupTestLogbook(t)

	expectPreparedStatements(mock)

	lb.Record("create", "system", map[string]any{"id": 1})
	lb.Record("delete", "system", map[string]any{"id": 1})

	recorder := runTest(db, "GET", "/logs?limit=1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var lines []string
	json.Unmarshal(recorder.Body.Bytes(), &lines)
	assert.Equal(t, 1, len(lines))
	assert.Contains(t, lines[0], "[DELETE]")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestReadLogsInvalidLimit executes a GET request with a limit that is not a positive number. It
// expects that the HTTP request is answered with the BAD REQUEST status code.
func TestReadLogsInvalidLimit(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	setupTestLogbook(t)

	expectPreparedStatements(mock)

	recorder := runTest(db, "GET", "/logs?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestDownloadLogs executes a GET request for the raw log file. It expects the file content as an
// attachment.
func TestDownloadLogs(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	lb := setupTestLogbook(t)

	expectPreparedStatements(mock)

	lb.Record("create", "system", map[string]any{"id": 1})

	recorder := runTest(db, "GET", "/logs/download", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), logbook.FileName)
	assert.Contains(t, recorder.Body.String(), "[CREATE]")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
