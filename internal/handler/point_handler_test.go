package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/latlong-terrain/internal/database"
	"github.com/jengzang/latlong-terrain/internal/models"
	"github.com/jengzang/latlong-terrain/internal/repository"
	"github.com/jengzang/latlong-terrain/internal/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "handler.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.ResetSchema(ctx, db); err != nil {
		t.Fatal(err)
	}

	repo := repository.NewLatLongRepository(db)
	for i, label := range []string{"start", "main road", "road near civil station"} {
		id, err := repo.InsertRecord(ctx, &models.DistanceRecord{Latitude: 1, Longitude: float64(i), Distance: 1, CumulativeDistance: float64(i + 1)})
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.UpdateTerrain(ctx, id, label); err != nil {
			t.Fatal(err)
		}
	}

	h := NewPointHandler(service.NewPointService(repo), service.NewReportService(repo, "%road%", "%civil station%"))
	r := gin.New()
	r.GET("/points", h.ListPoints)
	r.GET("/points/road", h.RoadPoints)
	r.GET("/points/summary", h.Summary)
	r.GET("/points/:id", h.GetPointByID)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, w.Body.String())
	}
	return w.Code, body
}

func TestGetPointByID(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/points/2", http.StatusOK},
		{"/points/99", http.StatusNotFound},
		{"/points/abc", http.StatusBadRequest},
		{"/points/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		wantCode := tt.want
		if tt.want == http.StatusOK {
			wantCode = 0
		}
		code, body := get(t, r, tt.path)
		if code != tt.want || body.Code != wantCode {
			t.Errorf("%s: status %d code %d, want %d", tt.path, code, body.Code, tt.want)
		}
	}

	_, body := get(t, r, "/points/2")
	var point models.DistanceRecord
	if err := json.Unmarshal(body.Data, &point); err != nil {
		t.Fatal(err)
	}
	if point.ID != 2 || point.TerrainLabel() != "main road" {
		t.Errorf("unexpected point: %+v", point)
	}
}

func TestListAndRoadPoints(t *testing.T) {
	r := newTestRouter(t)

	var list struct {
		Points []models.DistanceRecord `json:"points"`
		Count  int                     `json:"count"`
	}

	_, body := get(t, r, "/points")
	if err := json.Unmarshal(body.Data, &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 3 || len(list.Points) != 3 {
		t.Errorf("list: got %d points", list.Count)
	}

	_, body = get(t, r, "/points/road")
	if err := json.Unmarshal(body.Data, &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || list.Points[0].TerrainLabel() != "main road" {
		t.Errorf("road: got %+v", list.Points)
	}
}

func TestSummary(t *testing.T) {
	r := newTestRouter(t)

	code, body := get(t, r, "/points/summary")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	var summary models.PointSummary
	if err := json.Unmarshal(body.Data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Records != 3 || summary.Labelled != 3 || summary.TotalDistance != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
