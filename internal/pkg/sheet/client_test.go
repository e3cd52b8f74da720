package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetData_DecodesSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getData", r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"branches": [{"id": "b1", "name": "HQ", "latitude": 30.0444, "longitude": 31.2357, "radius": 100}],
			"jobs": [{"id": "j1", "title": "Engineer"}],
			"users": [{"id": "u1", "fullName": "Test User", "nationalId": "29801011234567", "role": "employee"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	snapshot, err := client.GetData(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, snapshot.Branches, 1)
	assert.Equal(t, "HQ", snapshot.Branches[0].Name)
	assert.Equal(t, 100, snapshot.Branches[0].Radius)
	require.Len(t, snapshot.Jobs, 1)
	assert.Equal(t, "Engineer", snapshot.Jobs[0].Title)
	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, "29801011234567", snapshot.Users[0].NationalID)
}

func TestGetData_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.GetData(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestGetData_UnreachableEndpoint(t *testing.T) {
	client := NewClient(500 * time.Millisecond)
	_, err := client.GetData(context.Background(), "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestPost_SendsJSONBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	err := client.Post(context.Background(), server.URL, map[string]string{
		"action":     "updateUserDevice",
		"nationalId": "29801011234567",
		"deviceId":   "dev_abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "updateUserDevice", received["action"])
}

func TestPost_ErrorStatusIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	err := client.Post(context.Background(), server.URL, map[string]string{"action": "saveAttendance"})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	assert.NoError(t, client.Ping(context.Background(), server.URL))
	assert.Error(t, client.Ping(context.Background(), "http://127.0.0.1:1"))
}
