package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urmzd/zcl-harness/pkg/coordinator"
	"github.com/urmzd/zcl-harness/pkg/transport"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

func testSchema(t *testing.T) *zcl.Schema {
	t.Helper()
	const doc = `<?xml version="1.0"?>
<configurator>
  <cluster>
    <name>Door Lock</name>
    <define>DOOR_LOCK_CLUSTER</define>
    <code>0x0101</code>
    <command name="SetPin" code="0x00">
      <arg name="user_id" type="INT16U"/>
      <arg name="pin" type="CHAR_STRING"/>
    </command>
    <attribute code="0x0000" type="ENUM8">Lock State</attribute>
  </cluster>
</configurator>`
	s, err := zcl.LoadSchemaReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

func TestHealthzDegradedWithoutSession(t *testing.T) {
	router := NewRouter(testSchema(t), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want 503", w.Code)
	}
}

func TestHealthzHealthyWithSession(t *testing.T) {
	m := transport.NewMockTransport()
	defer m.Close()
	session := coordinator.NewSession(coordinator.NewController(m))

	router := NewRouter(testSchema(t), session, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", w.Code)
	}
}

func TestListClusters(t *testing.T) {
	router := NewRouter(testSchema(t), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schema/clusters", nil)
	router.Handler().ServeHTTP(w, req)

	var clusters []ClusterSummary
	if err := json.Unmarshal(w.Body.Bytes(), &clusters); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(clusters) != 1 || clusters[0].Name != "Door Lock" {
		t.Errorf("unexpected clusters: %+v", clusters)
	}
}

func TestGetClusterDetail(t *testing.T) {
	router := NewRouter(testSchema(t), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schema/clusters/Door%20Lock", nil)
	router.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}

	var detail ClusterDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(detail.Commands) != 1 || detail.Commands[0].Name != "SetPin" {
		t.Errorf("unexpected commands: %+v", detail.Commands)
	}
	if len(detail.Attributes) != 1 {
		t.Errorf("unexpected attributes: %+v", detail.Attributes)
	}
}

func TestGetClusterNotFound(t *testing.T) {
	router := NewRouter(testSchema(t), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schema/clusters/Nonexistent", nil)
	router.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
}

func TestGetStateWithoutPersistence(t *testing.T) {
	m := transport.NewMockTransport()
	defer m.Close()
	session := coordinator.NewSession(coordinator.NewController(m))

	router := NewRouter(testSchema(t), session, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	router.Handler().ServeHTTP(w, req)

	var resp StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ControllerState == nil || resp.ControllerState.NetworkState != "OFFLINE" {
		t.Errorf("unexpected controller state: %+v", resp.ControllerState)
	}
	if resp.PersistedConfigSet {
		t.Error("expected no persisted config without a store")
	}
}
