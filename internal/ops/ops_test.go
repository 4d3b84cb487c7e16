package ops_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convergencelab/sabius/internal/config"
	"github.com/convergencelab/sabius/internal/ops"
	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Helpers ─────────────────────────────────────────────────────────────────

// newTestContext lays out a small knowledge base in a temp dir and
// loads it.
func newTestContext(t *testing.T) (*session.Context, *session.Manager) {
	t.Helper()

	root := t.TempDir()
	knowledgeDir := filepath.Join(root, "modules")
	catalogDir := filepath.Join(root, "catalogs")
	for _, dir := range []string{knowledgeDir, catalogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	files := map[string]string{
		filepath.Join(knowledgeDir, "core.json"):           `{"id":"core","title":"Convergence Lab","keywords":["lab","reserva"],"content":"Edificio Ad Portas, Eje 17.","size_estimate":100}`,
		filepath.Join(knowledgeDir, "emprendimiento.json"): `{"id":"emprendimiento","title":"Emprendimiento","keywords":["startup","mentor"],"content":"Centro de Emprendimiento.","size_estimate":200}`,
		filepath.Join(catalogDir, "faculty_professors.json"): `{"professors":[
			{"nombre":"CARVAJAL CARRASCAL GLORIA","categoria_institucional":"Profesor Titular","grupo":"Cuidado de Enfermería"},
			{"nombre":"PEREZ GOMEZ JUAN","grupo":"Sistemas Inteligentes"}]}`,
		filepath.Join(catalogDir, "research_publications.json"): `{"by_unit":{
			"Facultad de Ingeniería":[{"titulo":"Aprendizaje profundo aplicado","revista":"IEEE Access"}],
			"Facultad de Enfermería":[{"titulo":"Cuidado paliativo en casa"}]}}`,
		filepath.Join(catalogDir, "research_units.json"): `{"units":[
			{"name":"Sistemas Inteligentes","category":"Grupo de investigación","faculty":"Facultad de Ingeniería"}]}`,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	cfg := config.Default()
	cfg.KnowledgeDir = knowledgeDir
	cfg.CatalogDir = catalogDir

	kctx, err := session.NewContext(cfg)
	if err != nil {
		t.Fatalf("NewContext() error: %v", err)
	}
	return kctx, session.NewManager(kctx)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── context_build ───────────────────────────────────────────────────────────

func TestContextBuild_ReturnsInstructionsPayload(t *testing.T) {
	_, sessions := newTestContext(t)
	op := ops.NewContextBuildOp(sessions)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "quiero hacer una startup con mentores",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	var payload struct {
		SessionID    string   `json:"session_id"`
		Text         string   `json:"text"`
		SizeEstimate int      `json:"size_estimate"`
		ModuleIDs    []string `json:"module_ids"`
	}
	if err := json.Unmarshal([]byte(resultText(res)), &payload); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}

	if payload.SessionID == "" {
		t.Error("payload has no session_id")
	}
	if len(payload.ModuleIDs) != 2 || payload.ModuleIDs[0] != "core" || payload.ModuleIDs[1] != "emprendimiento" {
		t.Errorf("module_ids = %v, want [core emprendimiento]", payload.ModuleIDs)
	}
	if !strings.Contains(payload.Text, "## Emprendimiento") {
		t.Error("instruction text missing the selected module section")
	}
	if payload.SizeEstimate <= 0 {
		t.Errorf("size_estimate = %d, want positive", payload.SizeEstimate)
	}
}

func TestContextBuild_EmptyQueryIsCoreOnly(t *testing.T) {
	_, sessions := newTestContext(t)
	op := ops.NewContextBuildOp(sessions)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	var payload struct {
		ModuleIDs []string `json:"module_ids"`
	}
	if err := json.Unmarshal([]byte(resultText(res)), &payload); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(payload.ModuleIDs) != 1 || payload.ModuleIDs[0] != "core" {
		t.Errorf("module_ids = %v, want [core]", payload.ModuleIDs)
	}
}

func TestContextBuild_ReusesNamedSession(t *testing.T) {
	_, sessions := newTestContext(t)
	op := ops.NewContextBuildOp(sessions)

	for i := 0; i < 2; i++ {
		if _, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
			"query":      "startup",
			"session_id": "room-1",
		})); err != nil {
			t.Fatalf("Handle() error: %v", err)
		}
	}

	if sessions.Len() != 1 {
		t.Errorf("sessions.Len() = %d, want 1", sessions.Len())
	}
}

// ─── conversation_record / conversation_history ──────────────────────────────

func TestConversationRoundTrip(t *testing.T) {
	_, sessions := newTestContext(t)
	sessions.GetOrCreate("room-1")

	record := ops.NewConversationRecordOp(sessions)
	history := ops.NewConversationHistoryOp(sessions)

	for _, turn := range []map[string]interface{}{
		{"session_id": "room-1", "role": "user", "text": "hola"},
		{"session_id": "room-1", "role": "assistant", "text": "¡Hola! Soy Sabius."},
	} {
		res, err := record.Handle(context.Background(), makeReq(turn))
		if err != nil {
			t.Fatalf("record Handle() error: %v", err)
		}
		if res.IsError {
			t.Fatalf("record failed: %s", resultText(res))
		}
	}

	res, err := history.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "room-1",
	}))
	if err != nil {
		t.Fatalf("history Handle() error: %v", err)
	}

	text := resultText(res)
	if !strings.Contains(text, "1. [user] hola") {
		t.Errorf("history missing the user turn:\n%s", text)
	}
	if !strings.Contains(text, "2. [assistant] ¡Hola! Soy Sabius.") {
		t.Errorf("history missing the assistant turn:\n%s", text)
	}
}

func TestConversationRecord_UnknownSessionIsToolError(t *testing.T) {
	_, sessions := newTestContext(t)
	op := ops.NewConversationRecordOp(sessions)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "ghost",
		"role":       "user",
		"text":       "hola",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected a tool error for an unknown session")
	}
}

func TestConversationRecord_RejectsInvalidRole(t *testing.T) {
	_, sessions := newTestContext(t)
	sessions.GetOrCreate("room-1")
	op := ops.NewConversationRecordOp(sessions)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "room-1",
		"role":       "system",
		"text":       "hola",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected a tool error for an invalid role")
	}
}

func TestConversationHistory_EmptyTranscript(t *testing.T) {
	_, sessions := newTestContext(t)
	sessions.GetOrCreate("room-1")
	op := ops.NewConversationHistoryOp(sessions)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "room-1",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if got := resultText(res); got != "The transcript is empty." {
		t.Errorf("result = %q", got)
	}
}

// ─── Catalog operations ──────────────────────────────────────────────────────

func TestSearchProfessors_PartialName(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewSearchProfessorsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "Gloria",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	text := resultText(res)
	if !strings.Contains(text, "CARVAJAL CARRASCAL GLORIA") {
		t.Errorf("result missing the matched professor:\n%s", text)
	}
	if strings.Contains(text, "PEREZ GOMEZ JUAN") {
		t.Errorf("result contains an unmatched professor:\n%s", text)
	}
}

func TestSearchProfessors_RequiresQuery(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewSearchProfessorsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected a tool error without a query")
	}
}

func TestSearchProfessors_NoMatchIsFriendlyText(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewSearchProfessorsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "astrofísica",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if res.IsError {
		t.Fatal("an empty result must not be a tool error")
	}
	if got := resultText(res); got != "No se encontraron resultados." {
		t.Errorf("result = %q", got)
	}
}

func TestSearchPublications_UnitFilter(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewSearchPublicationsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "cuidado",
		"unit":  "Facultad de Ingeniería",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	// "cuidado" only matches the nursing publication, which the unit
	// filter excludes.
	if got := resultText(res); got != "No se encontraron resultados." {
		t.Errorf("result = %q, want no results under the filtered unit", got)
	}
}

func TestPublicationsByUnit_ExactName(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewPublicationsByUnitOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"unit": "Facultad de Ingeniería",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	text := resultText(res)
	if !strings.Contains(text, "Aprendizaje profundo aplicado") {
		t.Errorf("result missing the unit's publication:\n%s", text)
	}
	if strings.Contains(text, "Cuidado paliativo") {
		t.Errorf("result contains another unit's publication:\n%s", text)
	}
}

func TestSearchUnits_ByFaculty(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewSearchUnitsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "ingeniería",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(res), "Sistemas Inteligentes") {
		t.Errorf("result missing the matched unit:\n%s", resultText(res))
	}
}

// ─── kb_stats ────────────────────────────────────────────────────────────────

func TestStats_ReportsCounts(t *testing.T) {
	kctx, _ := newTestContext(t)
	op := ops.NewStatsOp(kctx)

	res, err := op.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	var stats struct {
		Modules      int `json:"modules"`
		Professors   int `json:"professors"`
		Publications int `json:"publications"`
		Units        int `json:"units"`
	}
	if err := json.Unmarshal([]byte(resultText(res)), &stats); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if stats.Modules != 2 || stats.Professors != 2 || stats.Publications != 2 || stats.Units != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

// ─── Table ───────────────────────────────────────────────────────────────────

func TestTable_DeclaresEveryOperationOnce(t *testing.T) {
	kctx, sessions := newTestContext(t)

	want := []string{
		"context_build",
		"conversation_record",
		"conversation_history",
		"search_professors",
		"search_publications",
		"publications_by_unit",
		"search_units",
		"kb_stats",
	}

	table := ops.Table(kctx, sessions)
	if len(table) != len(want) {
		t.Fatalf("Table() has %d operations, want %d", len(table), len(want))
	}

	seen := make(map[string]bool)
	for _, op := range table {
		name := op.Definition().Name
		if seen[name] {
			t.Errorf("operation %q declared twice", name)
		}
		seen[name] = true
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("operation %q missing from the table", name)
		}
	}
}
