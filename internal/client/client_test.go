package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *DashboardClient {
	return New(ClientConfig{BaseURL: url, APIKey: "test-key"})
}

func TestGetOrganizations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":"100","name":"Acme","url":"https://n1.meraki.com"}]`)
	}))
	defer srv.Close()

	orgs, err := newTestClient(srv.URL).GetOrganizations()
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "100", orgs[0].ID)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestGetOrganizationsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":["Invalid API key"]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetOrganizations()
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid API key", apiErr.Message)
}

func TestGetOrganizationDevicesFiltersToCameras(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/100/devices", r.URL.Path)
		assert.Equal(t, "camera", r.URL.Query().Get("productTypes[]"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"serial":"Q2AB-0001","name":"Front Door","model":"MV12","productType":"camera"}]`)
	}))
	defer srv.Close()

	cams, err := newTestClient(srv.URL).GetOrganizationDevices("100")
	require.NoError(t, err)
	require.Len(t, cams, 1)
	assert.Equal(t, "Q2AB-0001", cams[0].Serial)
	assert.Equal(t, "MV12", cams[0].Model)
}

func TestGetOrganizationDevicesFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("startingAfter") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/organizations/100/devices?startingAfter=Q2AB-0001>; rel=next`, srv.URL))
			fmt.Fprint(w, `[{"serial":"Q2AB-0001","name":"One"}]`)
			return
		}
		fmt.Fprint(w, `[{"serial":"Q2AB-0002","name":"Two"}]`)
	}))
	defer srv.Close()

	cams, err := newTestClient(srv.URL).GetOrganizationDevices("100")
	require.NoError(t, err)
	require.Len(t, cams, 2)
	assert.Equal(t, "Q2AB-0001", cams[0].Serial)
	assert.Equal(t, "Q2AB-0002", cams[1].Serial)
}

func TestGenerateSnapshotNow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/devices/Q2AB-0001/camera/generateSnapshot", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"url":"https://img.example/abc","expiry":"Access to image will expire."}`)
	}))
	defer srv.Close()

	snap, err := newTestClient(srv.URL).GenerateSnapshot("Q2AB-0001", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/abc", snap.URL)
}

func TestGenerateSnapshotWithTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ts.Format(time.RFC3339), body["timestamp"])
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"url":"https://img.example/abc"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateSnapshot("Q2AB-0001", &ts)
	require.NoError(t, err)
}

func TestGenerateSnapshotRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errors":["Device is offline"]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateSnapshot("Q2AB-0001", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Device is offline")
}

func TestGenerateSnapshotMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateSnapshot("Q2AB-0001", nil)
	require.Error(t, err)
}

func TestFetchImage(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Pre-signed URLs must not receive the dashboard auth header.
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write(payload)
	}))
	defer srv.Close()

	data, err := newTestClient("https://api.example").FetchImage(srv.URL + "/snap.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchImageExpiredURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient("https://api.example").FetchImage(srv.URL + "/snap.jpg")
	require.Error(t, err)
}

func TestNextPageURL(t *testing.T) {
	link := `<https://api.meraki.com/api/v1/organizations/100/devices?startingAfter=X>; rel=next, <https://api.meraki.com/api/v1/organizations/100/devices?endingBefore=Y>; rel=prev`
	assert.Equal(t, "https://api.meraki.com/api/v1/organizations/100/devices?startingAfter=X", nextPageURL(link))
	assert.Equal(t, "", nextPageURL(""))
	assert.Equal(t, "", nextPageURL(`<https://x>; rel=prev`))
}
