package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetadmin/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// setup points the CLI at a fake backend and a throwaway session file.
func setup(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	sessionFile := filepath.Join(t.TempDir(), "session.yaml")
	t.Setenv("BASE_URL", backend.URL)
	t.Setenv("SESSION_FILE", sessionFile)
	t.Setenv("LOG_LEVEL", "disabled")
	return sessionFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fleetadmin version "+version+"\n", out)
}

func TestMissingBaseURL(t *testing.T) {
	t.Setenv("BASE_URL", "")
	_, err := run(t, "status")
	assert.EqualError(t, err, "BASE_URL is not set")
}

func TestLoginStatusLogout(t *testing.T) {
	sessionFile := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/loginAdmin" {
			http.NotFound(w, r)
			return
		}
		envelope(w, http.StatusOK, map[string]any{
			"success": true, "statusCode": 200,
			"data": map[string]any{"accessToken": "cli-token", "user": map[string]any{"id": 1, "name": "Root"}},
		})
	})

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")

	out, err = run(t, "login", "--number", "9876543210", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Root")

	token, ok := session.NewFileStore(sessionFile).Get()
	require.True(t, ok)
	assert.Equal(t, "cli-token", token)

	out, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")

	_, err = run(t, "logout")
	require.NoError(t, err)
	_, statErr := os.Stat(sessionFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoginRequiresFlags(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := run(t, "login", "--number", "1")
	assert.EqualError(t, err, "--number and --password are required")
}

func TestNoTokenFails(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := run(t, "bookings", "list")
	assert.EqualError(t, err, "No access token found")
}

func TestCarsList(t *testing.T) {
	sessionFile := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored", r.Header.Get("Authorization"))
		envelope(w, http.StatusOK, map[string]any{
			"success": true, "statusCode": 200,
			"data": []map[string]any{
				{"id": 1, "name": "Swift", "maker": "Maruti", "isavailable": true},
				{"id": 2, "name": "Creta", "maker": "Hyundai"},
			},
		})
	})
	require.NoError(t, session.NewManager(session.NewFileStore(sessionFile)).SetToken("stored"))

	out, err := run(t, "cars", "list", "--availability", "available")
	require.NoError(t, err)
	assert.Contains(t, out, "Swift")
	assert.NotContains(t, out, "Creta")

	out, err = run(t, "cars", "list", "--json")
	require.NoError(t, err)
	var decoded struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Success)
	assert.Len(t, decoded.Data, 2)
}

func TestCarsListBookedBetween(t *testing.T) {
	sessionFile := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cars/getcar":
			envelope(w, http.StatusOK, map[string]any{
				"success": true, "statusCode": 200,
				"data": []map[string]any{{"id": 1, "name": "Swift"}, {"id": 2, "name": "Creta"}},
			})
		case "/booking/bd":
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "2026-02-01T00:00:00Z", req["startDate"])
			assert.Equal(t, "2026-02-10T00:00:00Z", req["endDate"])
			envelope(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"id": 9, "carId": 2}}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})
	require.NoError(t, session.NewManager(session.NewFileStore(sessionFile)).SetToken("stored"))

	out, err := run(t, "cars", "list", "--from", "2026-02-01", "--to", "2026-02-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Creta")
	assert.NotContains(t, out, "Swift")

	_, err = run(t, "cars", "list", "--from", "2026-02-01", "--to", "tomorrow")
	assert.EqualError(t, err, `--to: invalid date "tomorrow": want YYYY-MM-DD or RFC 3339`)
}

func TestDashboard(t *testing.T) {
	sessionFile := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/booking/getallbookings":
			envelope(w, http.StatusOK, map[string]any{
				"success": true,
				"data": []map[string]any{
					{"id": 1, "status": "active", "totalAmount": "1200", "createdAt": time.Now(), "car": map[string]any{"type": "suv"}},
				},
			})
		case "/cars/getcar":
			envelope(w, http.StatusOK, map[string]any{
				"success": true, "statusCode": 200,
				"data": []map[string]any{{"id": 1, "isavailable": true, "parkingid": 4}, {"id": 2}},
			})
		case "/user/getallusers":
			envelope(w, http.StatusOK, map[string]any{"success": true, "statusCode": 200, "data": []map[string]any{{"id": 1}}})
		case "/parking/get":
			envelope(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"id": 4, "name": "Central", "capacity": "4"}}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})
	require.NoError(t, session.NewManager(session.NewFileStore(sessionFile)).SetToken("stored"))

	out, err := run(t, "dashboard", "--period", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "Revenue:          1200.00 (1 bookings)")
	assert.Contains(t, out, "Active bookings:  1")
	assert.Contains(t, out, "2 total, 1 available, 1 booked, 0 maintenance (50.0% available)")
	assert.Regexp(t, `Central\s+1\s+4\s+25\.0%`, out)
	assert.Regexp(t, `Suv\s+1\s+1200\.00`, out)

	out, err = run(t, "dashboard", "--json")
	require.NoError(t, err)
	var decoded struct {
		Data struct {
			Period     string `json:"period"`
			TotalUsers int    `json:"totalUsers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "month", decoded.Data.Period)
	assert.Equal(t, 1, decoded.Data.TotalUsers)
}

func TestDeleteCar(t *testing.T) {
	sessionFile := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cars/delete/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, session.NewManager(session.NewFileStore(sessionFile)).SetToken("stored"))

	out, err := run(t, "cars", "delete", "7")
	require.NoError(t, err)
	assert.Equal(t, "Car deleted successfully\n", out)

	_, err = run(t, "cars", "delete", "seven")
	assert.EqualError(t, err, `invalid id "seven"`)
}

func TestUpload(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {})
	assets := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		assert.Equal(t, "car-rental/main", r.FormValue("folder"))
		json.NewEncoder(w).Encode(map[string]any{"secure_url": "https://assets.test/front.png"})
	}))
	t.Cleanup(assets.Close)
	t.Setenv("ASSET_BASE_URL", assets.URL)
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")

	dir := t.TempDir()
	good := filepath.Join(dir, "front.png")
	require.NoError(t, os.WriteFile(good, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("hello"), 0o600))

	out, err := run(t, "upload", "--folder", "car-rental/main", good)
	require.NoError(t, err)
	assert.Contains(t, out, "https://assets.test/front.png")

	out, err = run(t, "upload", "--folder", "car-rental/main", good, bad)
	assert.EqualError(t, err, "1 of 2 uploads failed")
	assert.Contains(t, out, "notes.txt\tFAILED")
}
