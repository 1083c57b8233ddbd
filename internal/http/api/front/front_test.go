package front

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/brandbridge/bridgeboard/internal/config"
	dbutil "github.com/brandbridge/bridgeboard/internal/db"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/security"
	internalsettings "github.com/brandbridge/bridgeboard/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	prevCost := security.SetBcryptCost(bcrypt.MinCost)
	t.Cleanup(func() { security.SetBcryptCost(prevCost) })

	dsn := fmt.Sprintf("file:front_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		t.Fatalf("sql db: %v", errDB)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterFrontRoutes(router, conn, testJWT, bridge.NewService(conn))
	return router, conn
}

func createUser(t *testing.T, conn *gorm.DB, username string) string {
	t.Helper()
	hash, errHash := security.HashPassword("password123")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	user := models.User{Username: username, Password: hash}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	token, _, errToken := security.GenerateToken(testJWT.Secret, user.ID, user.Username, testJWT.Expiry)
	if errToken != nil {
		t.Fatalf("token: %v", errToken)
	}
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, errMarshal := json.Marshal(v)
		if errMarshal != nil {
			t.Fatalf("marshal: %v", errMarshal)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if errUnmarshal := json.Unmarshal(rec.Body.Bytes(), out); errUnmarshal != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), errUnmarshal)
	}
}

type bridgeEnvelope struct {
	Bridge models.Bridge `json:"bridge"`
}

func TestRegisterLoginAndCreateBridge(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice", "password": "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, rec, &login)
	if login.Token == "" {
		t.Fatalf("missing token")
	}

	if rec = doJSON(t, router, http.MethodGet, "/api/v1/bridges", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/bridges", login.Token, gin.H{"name": "Acme"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var created bridgeEnvelope
	decode(t, rec, &created)
	if created.Bridge.Slug != "acme" || created.Bridge.Name != "Acme" {
		t.Fatalf("unexpected bridge %+v", created.Bridge)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/bridges/%d", created.Bridge.ID), login.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("show status %d", rec.Code)
	}
	var detail struct {
		Bridge       models.Bridge           `json:"bridge"`
		SectionTypes []bridge.SectionTypeRow `json:"section_types"`
	}
	decode(t, rec, &detail)
	if len(detail.SectionTypes) != 4 || detail.SectionTypes[0].GroupID == nil {
		t.Fatalf("unexpected section types %+v", detail.SectionTypes)
	}
	var raw struct {
		Bridge map[string]json.RawMessage `json:"bridge"`
	}
	decode(t, rec, &raw)
	if _, ok := raw.Bridge["section_groups"]; ok {
		t.Fatalf("bridge payload exposes section_groups: %s", rec.Body.String())
	}
	for _, key := range []string{"sections", "icons", "images", "fonts", "colors"} {
		if _, ok := raw.Bridge[key]; !ok {
			t.Fatalf("bridge payload missing %s: %s", key, rec.Body.String())
		}
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/bridges", login.Token, nil)
	var list struct {
		Bridges      []models.Bridge      `json:"bridges"`
		SectionTypes []models.SectionType `json:"section_types"`
	}
	decode(t, rec, &list)
	if len(list.Bridges) != 1 || len(list.SectionTypes) != 4 {
		t.Fatalf("unexpected list: %d bridges, %d types", len(list.Bridges), len(list.SectionTypes))
	}
}

func TestOtherUsersBridgeLooksMissing(t *testing.T) {
	router, conn := newTestRouter(t)
	owner := createUser(t, conn, "owner")
	intruder := createUser(t, conn, "intruder")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/bridges", owner, gin.H{"name": "Secret"})
	var created bridgeEnvelope
	decode(t, rec, &created)

	for _, id := range []string{fmt.Sprint(created.Bridge.ID), "99999", "not-a-number"} {
		base := "/api/v1/bridges/" + id
		requests := []struct {
			method string
			path   string
			body   any
		}{
			{http.MethodGet, base, nil},
			{http.MethodPut, base, gin.H{"name": "Mine"}},
			{http.MethodPut, base + "/name", gin.H{"name": "Mine"}},
			{http.MethodPut, base + "/slug", gin.H{"slug": "mine"}},
			{http.MethodDelete, base, nil},
			{http.MethodPost, base + "/colors", gin.H{"hex": "#000"}},
		}
		for _, r := range requests {
			rec := doJSON(t, router, r.method, r.path, intruder, r.body)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("%s %s status %d", r.method, r.path, rec.Code)
			}
			var body map[string]string
			decode(t, rec, &body)
			if body["error"] != "Entry not found" {
				t.Fatalf("%s %s body %v", r.method, r.path, body)
			}
		}
	}
}

func TestUpdateAndDeleteBridge(t *testing.T) {
	router, conn := newTestRouter(t)
	token := createUser(t, conn, "bob")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/bridges", token, gin.H{"name": "Acme"})
	var created bridgeEnvelope
	decode(t, rec, &created)
	base := fmt.Sprintf("/api/v1/bridges/%d", created.Bridge.ID)

	rec = doJSON(t, router, http.MethodPut, base+"/name", token, gin.H{"name": "Acme Renamed"})
	var renamed bridgeEnvelope
	decode(t, rec, &renamed)
	if rec.Code != http.StatusOK || renamed.Bridge.Name != "Acme Renamed" || renamed.Bridge.Slug != "acme" {
		t.Fatalf("rename: %d %+v", rec.Code, renamed.Bridge)
	}

	rec = doJSON(t, router, http.MethodPut, base+"/slug", token, gin.H{"slug": "Acme Brand Book"})
	var reslugged bridgeEnvelope
	decode(t, rec, &reslugged)
	if rec.Code != http.StatusOK || reslugged.Bridge.Slug != "acme-brand-book" {
		t.Fatalf("slug: %d %+v", rec.Code, reslugged.Bridge)
	}

	rec = doJSON(t, router, http.MethodDelete, base, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}
	var remaining struct {
		Bridges []models.Bridge `json:"bridges"`
	}
	decode(t, rec, &remaining)
	if len(remaining.Bridges) != 0 {
		t.Fatalf("expected no bridges left, got %d", len(remaining.Bridges))
	}
}

func TestCreateBridgeRejectsBadInput(t *testing.T) {
	router, conn := newTestRouter(t)
	token := createUser(t, conn, "carol")

	if rec := doJSON(t, router, http.MethodPost, "/api/v1/bridges", token, "{not json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid json status %d", rec.Code)
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/bridges", token, gin.H{"name": "  "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank name status %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "name is required" {
		t.Fatalf("unexpected error %v", body)
	}
}

func TestColorRoutes(t *testing.T) {
	router, conn := newTestRouter(t)
	token := createUser(t, conn, "dana")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/bridges", token, gin.H{"name": "Palette"})
	var created bridgeEnvelope
	decode(t, rec, &created)
	base := fmt.Sprintf("/api/v1/bridges/%d/colors", created.Bridge.ID)

	var withColors bridgeEnvelope
	for _, hex := range []string{"#000000", "#ffffff"} {
		rec = doJSON(t, router, http.MethodPost, base, token, gin.H{"hex": hex, "name": hex})
		if rec.Code != http.StatusOK {
			t.Fatalf("add %s status %d: %s", hex, rec.Code, rec.Body.String())
		}
		decode(t, rec, &withColors)
	}
	black, white := withColors.Bridge.Colors[0], withColors.Bridge.Colors[1]
	if black.InfoColor != "#FFF" || white.InfoColor != "#000" || black.RGB != "0 0 0" {
		t.Fatalf("unexpected colors %+v", withColors.Bridge.Colors)
	}

	rec = doJSON(t, router, http.MethodPut, base+"/order", token, gin.H{"ids": []uint64{white.ID, black.ID}})
	var reordered bridgeEnvelope
	decode(t, rec, &reordered)
	if rec.Code != http.StatusOK || reordered.Bridge.Colors[0].ID != white.ID {
		t.Fatalf("reorder: %d %+v", rec.Code, reordered.Bridge.Colors)
	}

	if rec = doJSON(t, router, http.MethodPost, base, token, gin.H{"hex": "zzz"}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad hex status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", base, black.ID), token, nil)
	var afterDelete bridgeEnvelope
	decode(t, rec, &afterDelete)
	if rec.Code != http.StatusOK || len(afterDelete.Bridge.Colors) != 1 {
		t.Fatalf("delete color: %d %+v", rec.Code, afterDelete.Bridge.Colors)
	}
}

func TestRegistrationCanBeClosed(t *testing.T) {
	router, _ := newTestRouter(t)
	internalsettings.StoreDBConfig(time.Now(), map[string]json.RawMessage{
		internalsettings.RegistrationOpenKey: json.RawMessage(`false`),
	})
	t.Cleanup(func() { internalsettings.StoreDBConfig(time.Time{}, nil) })

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "eve", "password": "password123"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("register status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/config", "", nil)
	var cfg struct {
		SiteName         string `json:"site_name"`
		RegistrationOpen bool   `json:"registration_open"`
	}
	decode(t, rec, &cfg)
	if cfg.SiteName != internalsettings.DefaultSiteName || cfg.RegistrationOpen {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestDisabledUserAndBadTokens(t *testing.T) {
	router, conn := newTestRouter(t)
	token := createUser(t, conn, "frank")

	if rec := doJSON(t, router, http.MethodGet, "/api/v1/bridges", "garbage", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status %d", rec.Code)
	}
	if errUpdate := conn.Model(&models.User{}).Where("username = ?", "frank").Update("disabled", true).Error; errUpdate != nil {
		t.Fatalf("disable: %v", errUpdate)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/v1/bridges", token, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("disabled user status %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("healthz: %d %s", rec.Code, rec.Body.String())
	}
}
