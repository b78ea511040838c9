package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/freelance-tracker-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ScenarioTestSuite struct {
	suite.Suite
	dataFile string
	app      *App
	token    string
	userID   json.Number
}

func (suite *ScenarioTestSuite) newConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		GinMode:        "test",
		ClientURL:      "*",
		StoreDriver:    config.DriverFile,
		DataFile:       suite.dataFile,
		MetricsEnabled: true,
	}
}

func (suite *ScenarioTestSuite) SetupTest() {
	suite.dataFile = filepath.Join(suite.T().TempDir(), "db.json")

	a, err := New(context.Background(), suite.newConfig(), zap.NewNop())
	suite.Require().NoError(err)
	suite.app = a

	w := suite.do(http.MethodPost, "/register", "", `{"name":"Alice","email":"a@x.com","password":"p1"}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.token = body["token"].(string)
	suite.userID = body["user"].(map[string]any)["id"].(json.Number)
}

func (suite *ScenarioTestSuite) TearDownTest() {
	suite.NoError(suite.app.Close())
}

func (suite *ScenarioTestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.app.Handler().ServeHTTP(w, req)
	return w
}

func (suite *ScenarioTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	dec.UseNumber()
	suite.Require().NoError(dec.Decode(&out))
	return out
}

func (suite *ScenarioTestSuite) TestRegisterLoginProfile() {
	w := suite.do(http.MethodPost, "/login", "", `{"email":"a@x.com","password":"p1"}`)
	suite.Require().Equal(http.StatusOK, w.Code)
	login := suite.decode(w)
	suite.Equal(suite.token, login["token"])
	suite.Equal(suite.userID, login["user"].(map[string]any)["id"])

	w = suite.do(http.MethodGet, "/user/profile", suite.token, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	profile := suite.decode(w)
	suite.Equal(json.Number("75"), profile["hourlyRate"])
	suite.Equal("USD", profile["currency"])
	suite.NotContains(profile, "password")
}

func (suite *ScenarioTestSuite) TestDuplicateEmail() {
	w := suite.do(http.MethodPost, "/register", "", `{"name":"Someone","email":"a@x.com","password":"other"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("User already exists", suite.decode(w)["message"])
}

func (suite *ScenarioTestSuite) TestClientLifecycle() {
	w := suite.do(http.MethodPost, "/clients", suite.token, `{"name":"Acme"}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := suite.decode(w)
	suite.Equal(suite.userID, created["userId"])
	id := string(created["id"].(json.Number))

	w = suite.do(http.MethodGet, "/clients/"+id, "", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(created, suite.decode(w))

	w = suite.do(http.MethodDelete, "/clients/"+id, suite.token, "")
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/clients/"+id, "", "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/clients/"+id, suite.token, "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ScenarioTestSuite) TestProjectDefaultStatus() {
	w := suite.do(http.MethodPost, "/projects", suite.token, `{"name":"Website"}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("In Progress", suite.decode(w)["status"])

	w = suite.do(http.MethodGet, "/projects/abc", "", "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Project not found", suite.decode(w)["message"])
}

func (suite *ScenarioTestSuite) TestTimeEntryDurationVerbatim() {
	w := suite.do(http.MethodPost, "/timeEntries", suite.token,
		`{"startTime":"2024-01-01T09:00:00Z","endTime":"2024-01-01T11:00:00Z","duration":7}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal(json.Number("7"), suite.decode(w)["duration"])

	w = suite.do(http.MethodDelete, "/timeEntries/1", suite.token, "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Time entry not found", suite.decode(w)["message"])
}

func (suite *ScenarioTestSuite) TestInvoices() {
	w := suite.do(http.MethodPost, "/invoices", suite.token, `{"amount":300}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	invoice := suite.decode(w)
	suite.Equal("INV-"+string(invoice["id"].(json.Number)), invoice["number"])

	w = suite.do(http.MethodGet, "/invoices", "", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var list []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Len(list, 1)

	w = suite.do(http.MethodPost, "/invoices", "", `{"amount":1}`)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ScenarioTestSuite) TestUniqueIDs() {
	seen := map[json.Number]bool{}
	for i := 0; i < 20; i++ {
		w := suite.do(http.MethodPost, "/clients", suite.token, `{"name":"c"}`)
		suite.Require().Equal(http.StatusCreated, w.Code)
		id := suite.decode(w)["id"].(json.Number)
		suite.False(seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func (suite *ScenarioTestSuite) TestDocumentSurvivesRestart() {
	w := suite.do(http.MethodPost, "/clients", suite.token, `{"name":"Acme"}`)
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := string(suite.decode(w)["id"].(json.Number))

	data, err := os.ReadFile(suite.dataFile)
	suite.Require().NoError(err)
	suite.Contains(string(data), "\n  \"clients\": [")

	restarted, err := New(context.Background(), suite.newConfig(), zap.NewNop())
	suite.Require().NoError(err)
	suite.app = restarted

	w = suite.do(http.MethodGet, "/clients/"+id, "", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Acme", suite.decode(w)["name"])

	w = suite.do(http.MethodPost, "/login", "", `{"email":"a@x.com","password":"p1"}`)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *ScenarioTestSuite) TestHealthAndMetrics() {
	w := suite.do(http.MethodGet, "/health", "", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("ok", suite.decode(w)["status"])

	w = suite.do(http.MethodGet, "/metrics", "", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "freelance_http_requests_total")
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func TestOpenBackend_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		DBPath:      filepath.Join(t.TempDir(), "freelance.db"),
	}

	backend, closeBackend, err := OpenBackend(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeBackend() })

	require.Equal(t, "sql", backend.Name())
	require.NoError(t, backend.Write(context.Background(), []byte(`{"users":[]}`)))

	data, err := backend.Read(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"users":[]}`, string(data))
}

func TestSQLBackend_ClosesConnectionWhenMigrationFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// No query is expected, so the first migration statement fails.
	mock.ExpectClose()

	backend, closeBackend, err := sqlBackend(db)
	require.Error(t, err)
	require.Nil(t, backend)
	require.Nil(t, closeBackend)
	require.NoError(t, mock.ExpectationsWereMet())
}
