package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/catalog"
	"github.com/Jhoney47/GameCodeBase/internal/config"
	"github.com/Jhoney47/GameCodeBase/internal/database"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/scoring"
	"github.com/Jhoney47/GameCodeBase/internal/testutil"
)

func newTestIngester(t *testing.T) (*Ingester, *database.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewIngester(db.Conn, scoring.NewEngine(catalog.Default()), zaptest.NewLogger(t)), db
}

func TestIngestDeduplicates(t *testing.T) {
	ing, db := newTestIngester(t)
	testutil.CreateTestCode(t, db, "铃兰之剑", "EXISTING")

	result, err := ing.Ingest(context.Background(), []model.CandidateCode{
		{GameName: "铃兰之剑", Code: "EXISTING"},
		{GameName: " 铃兰之剑 ", Code: " NEW1 ", SourcePlatform: "TapTap"},
		{GameName: "铃兰之剑", Code: "NEW1"},
		{GameName: "杖剑传说", Code: "NEW1", CodeType: model.CodeLimited},
		{GameName: "", Code: "NOGAME"},
		{GameName: "铃兰之剑", Code: "BADTYPE", CodeType: model.CodeType("forever")},
	}, "crawler")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if result.Created != 2 || result.Duplicates != 2 || result.Invalid != 2 {
		t.Errorf("Expected 2 created, 2 duplicates, 2 invalid, got %+v", result)
	}
	if len(result.CreatedIDs) != 2 || len(result.Rejected) != 2 {
		t.Errorf("Unexpected ids or rejections %+v", result)
	}

	got, err := repository.NewCodeRepository().FindByKey(context.Background(), db.Conn, "铃兰之剑", "NEW1")
	if err != nil || got == nil {
		t.Fatalf("Expected trimmed code to be stored, got %v %v", got, err)
	}
	if got.ReviewStatus != model.ReviewPending || got.Status != model.StatusActive || got.IsPublished {
		t.Errorf("New code must be pending and unpublished, got %+v", got)
	}
	if got.CodeType != model.CodePermanent || got.SourcePlatform != "TapTap" || got.CredibilityScore == 0 {
		t.Errorf("Unexpected defaults %+v", got)
	}

	other, err := repository.NewCodeRepository().FindByKey(context.Background(), db.Conn, "杖剑传说", "NEW1")
	if err != nil || other == nil || other.SourcePlatform != "crawler" || other.CodeType != model.CodeLimited {
		t.Errorf("Expected default source and limited type, got %+v %v", other, err)
	}
}

func TestIngestStoreFailureCreatesNothing(t *testing.T) {
	ing, db := newTestIngester(t)
	db.Close()

	_, err := ing.Ingest(context.Background(), []model.CandidateCode{{GameName: "X", Code: "A"}}, "crawler")
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Errorf("Expected ErrPersistence, got %v", err)
	}
}

const legacyDoc = `{
  "version": "2.0.0",
  "lastUpdated": "2026-01-21T00:00:00.000Z",
  "totalCodes": 4,
  "games": [
    {
      "gameName": "铃兰之剑",
      "codeCount": 3,
      "codes": [
        {"code": "OLD1", "rewardDescription": "金币", "sourcePlatform": "官方", "sourceUrl": null, "expireDate": null,
         "status": "active", "codeType": "permanent", "publishDate": "2026-01-20T00:00:00.000Z", "verificationCount": 5},
        {"code": "OLD2", "rewardDescription": "", "sourcePlatform": "", "sourceUrl": "https://example.com/p/2", "expireDate": "not a date",
         "status": "active", "codeType": "limited", "publishDate": null, "verificationCount": 1, "reviewStatus": "approved"},
        {"code": "OLD3", "status": "active", "codeType": "permanent", "reviewStatus": "escalated"}
      ]
    },
    {
      "gameName": "杖剑传说",
      "codeCount": 1,
      "codes": [
        {"code": "OLD4", "status": "invalid", "codeType": "permanent", "reviewStatus": "approved", "verificationCount": 0}
      ]
    }
  ]
}`

func TestParseLegacySnapshot(t *testing.T) {
	records, rejected, err := ParseLegacySnapshot([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("ParseLegacySnapshot: %v", err)
	}
	if len(records) != 3 || len(rejected) != 1 {
		t.Fatalf("Expected 3 records and 1 rejection, got %d and %v", len(records), rejected)
	}

	missing := records[0]
	if missing.ReviewStatus != model.ReviewPending || missing.IsPublished {
		t.Errorf("Missing reviewStatus must import as pending and unpublished, got %+v", missing)
	}
	if missing.PublishDate == nil || !missing.PublishDate.Equal(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected publish date %v", missing.PublishDate)
	}

	approved := records[1]
	if !approved.Eligible() || approved.ExpireDate != nil || approved.SourceURL == nil {
		t.Errorf("Expected approved code to be published with a dropped bad date, got %+v", approved)
	}

	invalid := records[2]
	if invalid.Status != model.StatusInvalid || invalid.IsPublished {
		t.Errorf("Invalid legacy code must not be published, got %+v", invalid)
	}
}

func TestImportLegacy(t *testing.T) {
	ing, db := newTestIngester(t)
	testutil.CreateTestCode(t, db, "杖剑传说", "OLD4")

	result, err := ing.ImportLegacy(context.Background(), []byte(legacyDoc))
	if err != nil {
		t.Fatalf("ImportLegacy: %v", err)
	}
	if result.Created != 2 || result.Duplicates != 1 || result.Invalid != 1 {
		t.Errorf("Unexpected result %+v", result)
	}

	if _, err := ing.ImportLegacy(context.Background(), []byte("{not json")); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected ErrValidation for malformed document, got %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	var gotGame string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGame = r.URL.Query().Get("game")
		if gotGame == "broken" {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]model.CandidateCode{
			{GameName: gotGame, Code: "FEED1", SourcePlatform: "NGA"},
		})
	}))
	defer server.Close()

	src := NewHTTPSource(config.CrawlerConfig{URL: server.URL + "/codes", Timeout: time.Second})

	candidates, err := src.Fetch(context.Background(), "植物大战僵尸2")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotGame != "植物大战僵尸2" || len(candidates) != 1 || candidates[0].Code != "FEED1" {
		t.Errorf("Unexpected feed result %v (game=%q)", candidates, gotGame)
	}

	if _, err := src.Fetch(context.Background(), "broken"); err == nil {
		t.Error("Expected non-200 to fail")
	}

	if _, err := NewHTTPSource(config.CrawlerConfig{}).Fetch(context.Background(), ""); err == nil {
		t.Error("Expected missing url to fail")
	}
}
