// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"internship-assistant/internal/assistant"
	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/database"
	"internship-assistant/internal/common/genai"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/store"
	answerquestion "internship-assistant/internal/workers/ai-conversation/answer-question"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateway is a stand-in for the GenAI gateway that records system instructions.
type gateway struct {
	mu      sync.Mutex
	systems []string
	reply   string
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		System string `json:"system"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	g.mu.Lock()
	g.systems = append(g.systems, body.System)
	reply := g.reply
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"text": reply})
}

func (g *gateway) lastSystem() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.systems) == 0 {
		return ""
	}
	return g.systems[len(g.systems)-1]
}

func (g *gateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.systems)
}

func (g *gateway) setReply(s string) {
	g.mu.Lock()
	g.reply = s
	g.mu.Unlock()
}

func TestAssistantE2E(t *testing.T) {
	if os.Getenv("E2E") == "" {
		t.Skip("set E2E=1 to run against a live PostgreSQL")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db := openSchema(t, cfg.Database.Postgres)
	seed(t, db)

	gw := &gateway{}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	log := logger.NewTestLogger(t)
	stores := store.NewPostgresStores(db)

	if cfg.Database.Redis.Address != "" {
		if rdb, err := database.NewRedis(cfg.Database.Redis); err == nil && rdb.Ping(context.Background()) == nil {
			t.Log("redis reachable, enabling record cache")
			stores = stores.WithCache(rdb.GetClient(), time.Minute, log)
			defer rdb.Close()
		}
	}

	svc := assistant.NewService(stores, genai.NewHTTPGenerator(genai.HTTPConfig{BaseURL: srv.URL}),
		assistant.OptionsFromConfig(cfg.Assistant), nil, log)

	handler, err := answerquestion.NewHandler(answerquestion.HandlerOptions{
		AppConfig: cfg,
		Service:   svc,
		Logger:    log,
	})
	require.NoError(t, err)

	ask := func(question, lang string) *answerquestion.Output {
		t.Helper()
		out, err := handler.Execute(context.Background(), &answerquestion.Input{Question: question, Language: lang})
		require.NoError(t, err)
		return out
	}

	t.Run("greeting", func(t *testing.T) {
		out := ask("Bonjour", "")
		assert.Equal(t, "GREETING", out.QueryType)
		assert.Equal(t, "fr", out.Language)
		assert.Equal(t, 0, gw.calls())
	})

	t.Run("count", func(t *testing.T) {
		out := ask("How many offers and pending applications?", "")
		assert.Equal(t, "COUNT", out.QueryType)
		assert.Equal(t, "There are 2 offers. There are 2 pending applications.", out.Answer)
	})

	t.Run("detail", func(t *testing.T) {
		gw.setReply("Backend internship at Acme.")
		for i := 0; i < 2; i++ {
			out := ask("Show me offer #1", "en")
			assert.Equal(t, "DETAIL", out.QueryType)
			assert.Equal(t, "Entity details:\nBackend internship at Acme.", out.Answer)
			assert.Equal(t, 1, out.ContextBlocks)
		}
		assert.Contains(t, gw.lastSystem(), `"type": "offer", "id": 1`)
	})

	t.Run("detail not found", func(t *testing.T) {
		before := gw.calls()
		out := ask("Détails de l'offre 999", "")
		assert.Equal(t, "Aucune entité trouvée pour cette référence.", out.Answer)
		assert.Equal(t, before, gw.calls())
	})

	t.Run("list", func(t *testing.T) {
		gw.setReply("Stage backend\nStage data")
		out := ask("Liste des offres", "")
		assert.Equal(t, "LIST", out.QueryType)
		assert.Equal(t, 2, out.ContextBlocks)
		assert.Equal(t, "- Stage backend\n- Stage data", out.Answer)
		assert.Contains(t, gw.lastSystem(), "Réponds uniquement en français.")
	})
}

// openSchema creates a throwaway schema and returns a pool whose connections default to it.
func openSchema(t *testing.T, pg config.PostgresConfig) *sql.DB {
	t.Helper()

	admin, err := database.NewPostgres(pg)
	require.NoError(t, err)
	t.Cleanup(func() { admin.Close() })
	require.NoError(t, admin.Ping(context.Background()), "PostgreSQL ping failed")

	schema := fmt.Sprintf("assistant_e2e_%d", time.Now().UnixNano())
	_, err = admin.GetDB().Exec("CREATE SCHEMA " + schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.GetDB().Exec("DROP SCHEMA " + schema + " CASCADE")
	})

	db, err := sql.Open("postgres", pg.GetDSN()+" search_path="+schema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var ddl = []string{
	`CREATE TABLE offers (id BIGINT PRIMARY KEY, title TEXT, company TEXT, location TEXT, description TEXT,
		start_date TIMESTAMPTZ, end_date TIMESTAMPTZ, weekly_hours INT, salary DOUBLE PRECISION, status TEXT, session TEXT)`,
	`CREATE TABLE applications (id BIGINT PRIMARY KEY, offer_id BIGINT, student_name TEXT, student_email TEXT,
		cover_letter TEXT, status TEXT, submitted_at TIMESTAMPTZ)`,
	`CREATE TABLE agreements (id BIGINT PRIMARY KEY, offer_id BIGINT, application_id BIGINT, student_name TEXT,
		company_name TEXT, supervisor_name TEXT, start_date TIMESTAMPTZ, end_date TIMESTAMPTZ, status TEXT, terms TEXT, signed_at TIMESTAMPTZ)`,
	`CREATE TABLE interview_invitations (id BIGINT PRIMARY KEY, application_id BIGINT, scheduled_at TIMESTAMPTZ,
		location TEXT, mode TEXT, message TEXT, status TEXT)`,
	`CREATE TABLE student_evaluations (id BIGINT PRIMARY KEY, agreement_id BIGINT, student_name TEXT, evaluator_name TEXT,
		rating INT, strengths TEXT, improvements TEXT, comments TEXT, recommended BOOLEAN, evaluated_at TIMESTAMPTZ)`,
	`CREATE TABLE workplace_evaluations (id BIGINT PRIMARY KEY, agreement_id BIGINT, company_name TEXT, rating INT,
		supervision TEXT, environment TEXT, comments TEXT, would_return BOOLEAN, evaluated_at TIMESTAMPTZ)`,
	`CREATE TABLE notifications (id BIGINT PRIMARY KEY, recipient_email TEXT, message TEXT, is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ)`,
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		require.NoError(t, err, strings.SplitN(stmt, "(", 2)[0])
	}

	start := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	_, err := db.Exec(`INSERT INTO offers (id, title, company, location, start_date, weekly_hours, status, session)
		VALUES (1, 'Backend intern', 'Acme', 'Montréal', $1, 35, 'APPROVED', 'Summer 2026'),
		       (2, 'Data intern', 'Globex', 'Québec', $1, 30, 'PENDING', 'Summer 2026')`, start)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO applications (id, offer_id, student_name, student_email, status, submitted_at)
		VALUES (1, 1, 'Jane Roy', 'jane@example.com', 'PENDING', $1),
		       (2, 1, 'Marc Roy', 'marc@example.com', 'ACCEPTED', $1),
		       (3, 2, 'Lea Tran', 'lea@example.com', 'UNDER_REVIEW', $1)`, start)
	require.NoError(t, err)
}
