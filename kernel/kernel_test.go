package kernel_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tailored-agentic-units/dataagent/agent/mock"
	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
	"github.com/tailored-agentic-units/dataagent/dataset"
	"github.com/tailored-agentic-units/dataagent/kernel"
	"github.com/tailored-agentic-units/dataagent/memory"
	"github.com/tailored-agentic-units/dataagent/observability"
	"github.com/tailored-agentic-units/dataagent/session"
	"github.com/tailored-agentic-units/dataagent/tools"
)

// --- Test helpers ---

type backendCall struct {
	Name string
	Args map[string]any
}

// fakeBackend implements tools.Backend with a fixed result.
type fakeBackend struct {
	result response.ToolResult
	calls  []backendCall
	mu     sync.Mutex
}

func (b *fakeBackend) List() []protocol.Tool {
	return tools.Catalog()
}

func (b *fakeBackend) Invoke(ctx context.Context, name string, args map[string]any) response.ToolResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, backendCall{Name: name, Args: args})
	return b.result
}

func (b *fakeBackend) Calls() []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backendCall{}, b.calls...)
}

// failingStore implements memory.Store and fails every List.
type failingStore struct{}

func (failingStore) List(context.Context) ([]string, error) {
	return nil, errors.New("disk unavailable")
}
func (failingStore) Load(context.Context, ...string) ([]memory.Entry, error) { return nil, nil }
func (failingStore) Save(context.Context, ...memory.Entry) error              { return nil }
func (failingStore) Delete(context.Context, ...string) error                  { return nil }

func minimalConfig(t *testing.T) *kernel.Config {
	t.Helper()
	cfg := kernel.DefaultConfig()
	cfg.Observer = "noop"
	cfg.Dataset.DSN = "file:" + filepath.Join(t.TempDir(), "unused.db") + "?mode=ro"
	return &cfg
}

func newKernel(t *testing.T, a *mock.MockAgent, b tools.Backend, opts ...kernel.Option) *kernel.Kernel {
	t.Helper()
	opts = append([]kernel.Option{kernel.WithAgent(a), kernel.WithToolBackend(b)}, opts...)

	k, err := kernel.New(minimalConfig(t), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { k.Close() })
	return k
}

func roles(msgs []protocol.Message) []protocol.Role {
	out := make([]protocol.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func equalRoles(got []protocol.Message, want ...protocol.Role) bool {
	r := roles(got)
	if len(r) != len(want) {
		return false
	}
	for i := range r {
		if r[i] != want[i] {
			return false
		}
	}
	return true
}

func equalStates(got []kernel.State, want ...kernel.State) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// --- Tests ---

func TestRun_DirectAnswer(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("We sell laptops and phones."))
	b := &fakeBackend{}
	k := newKernel(t, a, b)

	result := k.Run(context.Background(), "What products do we have?")

	if result.Response != "We sell laptops and phones." {
		t.Errorf("got response %q, want verbatim model text", result.Response)
	}
	if result.Decision.IsToolCall() {
		t.Error("decision should be a direct answer")
	}
	if len(b.Calls()) != 0 {
		t.Errorf("got %d tool invocations, want 0", len(b.Calls()))
	}
	if result.InferenceCalls != 1 {
		t.Errorf("got %d inference calls, want 1", result.InferenceCalls)
	}

	transcript := k.Transcript()
	if !equalRoles(transcript, protocol.RoleSystem, protocol.RoleUser, protocol.RoleAssistant) {
		t.Fatalf("got roles %v, want [system user assistant]", roles(transcript))
	}
	if transcript[2].Content != "We sell laptops and phones." {
		t.Errorf("got assistant turn %q", transcript[2].Content)
	}

	if !equalStates(result.States,
		kernel.StateAwaitingUserInput,
		kernel.StateAwaitingModelResponse,
		kernel.StateClassifyingResponse,
		kernel.StateDone,
	) {
		t.Errorf("got states %v", result.States)
	}
}

func TestRun_TopProductsScenario(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses(
		"TOOL_CALL: execute_query | SELECT product, SUM(revenue) AS revenue FROM sales GROUP BY product ORDER BY revenue DESC LIMIT 5",
		"Product A leads with $500.",
	))
	b := &fakeBackend{result: response.Succeeded([]response.Record{
		{"product": "A", "revenue": 500},
		{"product": "B", "revenue": 400},
		{"product": "C", "revenue": 300},
		{"product": "D", "revenue": 200},
		{"product": "E", "revenue": 100},
	})}
	k := newKernel(t, a, b)

	result := k.Run(context.Background(), "What are the top 5 products by revenue?")

	if result.Response != "Product A leads with $500." {
		t.Errorf("got response %q, want %q", result.Response, "Product A leads with $500.")
	}
	if result.ToolResult == nil || len(result.ToolResult.Results) != 5 {
		t.Fatalf("got tool result %+v, want 5 rows", result.ToolResult)
	}

	wantQuery := "SELECT product, SUM(revenue) AS revenue FROM sales GROUP BY product ORDER BY revenue DESC LIMIT 5"
	if result.Query != wantQuery {
		t.Errorf("got query %q, want %q", result.Query, wantQuery)
	}
	if result.Decision.Tool != tools.ExecuteQuery {
		t.Errorf("got tool %q, want %q", result.Decision.Tool, tools.ExecuteQuery)
	}

	calls := b.Calls()
	if len(calls) != 1 {
		t.Fatalf("got %d tool invocations, want 1", len(calls))
	}
	if calls[0].Name != tools.ExecuteQuery {
		t.Errorf("got tool %q, want %q", calls[0].Name, tools.ExecuteQuery)
	}
	if calls[0].Args["query"] != wantQuery {
		t.Errorf("got query arg %v, want %q", calls[0].Args["query"], wantQuery)
	}

	if result.InferenceCalls != 2 || a.CallCount() != 2 {
		t.Errorf("got %d inference calls (agent saw %d), want 2", result.InferenceCalls, a.CallCount())
	}

	transcript := k.Transcript()
	if !equalRoles(transcript,
		protocol.RoleSystem, protocol.RoleUser, protocol.RoleAssistant, protocol.RoleUser, protocol.RoleAssistant,
	) {
		t.Fatalf("got roles %v, want 5 turns", roles(transcript))
	}
	if transcript[0].Content != kernel.DefaultSystemPrompt {
		t.Errorf("got system turn %q", transcript[0].Content)
	}
	if transcript[2].Content != "I queried the database with: "+wantQuery {
		t.Errorf("got assistant turn %q", transcript[2].Content)
	}

	var rows strings.Builder
	for i, p := range []string{"A", "B", "C", "D", "E"} {
		if i > 0 {
			rows.WriteString(",\n")
		}
		fmt.Fprintf(&rows, "  {\n    \"product\": %q,\n    \"revenue\": %d\n  }", p, 500-100*i)
	}
	wantResults := "Here are the query results:\n[\n" + rows.String() + "\n]\n\nPlease analyze these results and provide insights."
	if transcript[3].Content != wantResults {
		t.Errorf("got results turn %q, want %q", transcript[3].Content, wantResults)
	}
	if transcript[4].Content != "Product A leads with $500." {
		t.Errorf("got final turn %q", transcript[4].Content)
	}

	agentCalls := a.Calls()
	if len(agentCalls[0].Tools) != len(tools.Catalog()) {
		t.Errorf("first call got %d tools, want catalog", len(agentCalls[0].Tools))
	}
	if len(agentCalls[1].Tools) != 0 {
		t.Errorf("second call got %d tools, want none", len(agentCalls[1].Tools))
	}
	if len(agentCalls[1].Messages) != 4 {
		t.Errorf("second call got %d messages, want 4", len(agentCalls[1].Messages))
	}

	if !equalStates(result.States,
		kernel.StateAwaitingUserInput,
		kernel.StateAwaitingModelResponse,
		kernel.StateClassifyingResponse,
		kernel.StateExecutingTool,
		kernel.StateAwaitingFinalResponse,
		kernel.StateDone,
	) {
		t.Errorf("got states %v", result.States)
	}
}

func TestRun_BareSelectLine(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("Let me check.\nSELECT x FROM y;\n", "Done."))
	b := &fakeBackend{result: response.Succeeded(nil)}
	k := newKernel(t, a, b)

	result := k.Run(context.Background(), "question")

	if result.Query != "SELECT x FROM y" {
		t.Errorf("got query %q, want %q", result.Query, "SELECT x FROM y")
	}
	if !strings.Contains(k.Transcript()[3].Content, "Here are the query results:\n[]") {
		t.Errorf("empty results should serialize as [], got %q", k.Transcript()[3].Content)
	}
}

func TestRun_ToolFailure(t *testing.T) {
	tests := []struct {
		name   string
		result response.ToolResult
		want   string
	}{
		{"backend error", response.Failure("db locked"), "Tool call failed: db locked"},
		{"timeout", response.Timeout(), "Tool call failed: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mock.NewMockAgent(mock.WithResponses("TOOL_CALL: execute_query | SELECT * FROM sales", "unused"))
			b := &fakeBackend{result: tt.result}
			k := newKernel(t, a, b)

			result := k.Run(context.Background(), "Show me sales")

			if result.Response != tt.want {
				t.Errorf("got response %q, want %q", result.Response, tt.want)
			}
			if a.CallCount() != 1 {
				t.Errorf("got %d inference calls, want 1", a.CallCount())
			}
			if result.ToolResult == nil || result.ToolResult.Success {
				t.Errorf("got tool result %+v, want failure", result.ToolResult)
			}
			if !equalRoles(k.Transcript(), protocol.RoleSystem, protocol.RoleUser) {
				t.Errorf("got roles %v, want [system user]", roles(k.Transcript()))
			}
		})
	}
}

func TestRun_EmptyQuestion(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("unused"))
	b := &fakeBackend{}
	k := newKernel(t, a, b)

	for _, q := range []string{"", "   ", "\n\t"} {
		result := k.Run(context.Background(), q)
		if result.Response != kernel.ErrEmptyQuestion.Error() {
			t.Errorf("Run(%q) got %q, want %q", q, result.Response, kernel.ErrEmptyQuestion.Error())
		}
	}

	if a.CallCount() != 0 || len(b.Calls()) != 0 {
		t.Errorf("backends should not be called, got agent=%d tools=%d", a.CallCount(), len(b.Calls()))
	}
	if len(k.Transcript()) != 1 {
		t.Errorf("got %d turns, want system turn only", len(k.Transcript()))
	}
}

func TestRun_ModelError(t *testing.T) {
	a := mock.NewMockAgent(mock.WithCompletions(response.Failed("Error calling model: connection refused")))
	b := &fakeBackend{}
	rec := observability.NewRecorder()
	k := newKernel(t, a, b, kernel.WithObserver(rec))

	result := k.Run(context.Background(), "question")

	if result.Response != "Error calling model: connection refused" {
		t.Errorf("got response %q", result.Response)
	}
	if len(b.Calls()) != 0 {
		t.Errorf("got %d tool invocations, want 0", len(b.Calls()))
	}
	if !equalRoles(k.Transcript(), protocol.RoleSystem, protocol.RoleUser) {
		t.Errorf("error completion should not be appended, got roles %v", roles(k.Transcript()))
	}

	found := false
	for _, typ := range rec.Types() {
		if typ == kernel.EventError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s event, got %v", kernel.EventError, rec.Types())
	}
}

func TestRun_FinalModelError(t *testing.T) {
	a := mock.NewMockAgent(mock.WithCompletions(
		response.Stop("TOOL_CALL: execute_query | SELECT 1"),
		response.Failed("Error: model timed out"),
	))
	b := &fakeBackend{result: response.Succeeded([]response.Record{{"1": 1}})}
	k := newKernel(t, a, b)

	result := k.Run(context.Background(), "question")

	if result.Response != "Error: model timed out" {
		t.Errorf("got response %q", result.Response)
	}
	if len(k.Transcript()) != 4 {
		t.Errorf("got %d turns, want 4 (no final assistant turn)", len(k.Transcript()))
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("unused"))
	b := &fakeBackend{}
	k := newKernel(t, a, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := k.Run(ctx, "question")

	if result.Response != context.Canceled.Error() {
		t.Errorf("got response %q, want %q", result.Response, context.Canceled.Error())
	}
	if a.CallCount() != 0 {
		t.Errorf("got %d inference calls, want 0", a.CallCount())
	}
	if result.States[len(result.States)-1] != kernel.StateDone {
		t.Errorf("last state %q, want %q", result.States[len(result.States)-1], kernel.StateDone)
	}
}

func TestRun_FreshKernelsIndependent(t *testing.T) {
	run := func() (*kernel.Kernel, *kernel.Result) {
		a := mock.NewMockAgent(mock.WithResponses("TOOL_CALL: execute_query | SELECT 1", "one"))
		b := &fakeBackend{result: response.Succeeded([]response.Record{{"n": 1}})}
		k := newKernel(t, a, b)
		return k, k.Run(context.Background(), "question")
	}

	k1, r1 := run()
	k2, r2 := run()

	if r1.Response != r2.Response {
		t.Errorf("responses differ: %q and %q", r1.Response, r2.Response)
	}
	if k1.SessionID() == k2.SessionID() {
		t.Error("fresh kernels should not share a session")
	}

	t1, t2 := k1.Transcript(), k2.Transcript()
	if len(t1) != 5 || len(t2) != 5 {
		t.Fatalf("got %d and %d turns, want 5 each", len(t1), len(t2))
	}
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Errorf("turn %d differs: %+v vs %+v", i, t1[i], t2[i])
		}
	}
}

func TestRun_ConversationAccumulates(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("first answer", "second answer"))
	k := newKernel(t, a, &fakeBackend{})
	ctx := context.Background()

	k.Ask(ctx, "first question")
	if got := k.Ask(ctx, "second question"); got != "second answer" {
		t.Errorf("got %q, want %q", got, "second answer")
	}

	second := a.Calls()[1].Messages
	if !equalRoles(second, protocol.RoleSystem, protocol.RoleUser, protocol.RoleAssistant, protocol.RoleUser) {
		t.Errorf("second call got roles %v", roles(second))
	}
}

func TestRun_Serialized(t *testing.T) {
	const n = 10
	responses := make([]string, n)
	for i := range responses {
		responses[i] = "answer"
	}
	a := mock.NewMockAgent(mock.WithResponses(responses...))
	k := newKernel(t, a, &fakeBackend{})

	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			k.Run(context.Background(), "question")
		}()
	}
	wg.Wait()

	transcript := k.Transcript()
	if len(transcript) != 1+2*n {
		t.Fatalf("got %d turns, want %d", len(transcript), 1+2*n)
	}
	for i := 1; i < len(transcript); i += 2 {
		if transcript[i].Role != protocol.RoleUser || transcript[i+1].Role != protocol.RoleAssistant {
			t.Fatalf("turns %d-%d interleaved: %v", i, i+1, roles(transcript[i:i+2]))
		}
	}
}

func TestRun_ContextNotes(t *testing.T) {
	root := t.TempDir()
	store := memory.NewFileStore(root)
	if err := store.Save(context.Background(), memory.NewEntry("glossary/revenue.md", "Revenue is in USD.")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	a := mock.NewMockAgent(mock.WithResponses("ok"))
	k := newKernel(t, a, &fakeBackend{}, kernel.WithMemoryStore(store))

	k.Run(context.Background(), "question")

	system := a.Calls()[0].Messages[0]
	if system.Role != protocol.RoleSystem {
		t.Fatalf("first message role %q, want system", system.Role)
	}
	if !strings.HasPrefix(system.Content, kernel.DefaultSystemPrompt) {
		t.Errorf("system turn should start with the prompt, got %q", system.Content)
	}
	if !strings.Contains(system.Content, "[glossary/revenue.md]\nRevenue is in USD.") {
		t.Errorf("system turn missing notes: %q", system.Content)
	}

	count := 0
	for _, m := range k.Transcript() {
		if m.Role == protocol.RoleSystem {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d system turns, want 1", count)
	}
}

func TestRun_ContextNotesUnavailable(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("ok"))
	rec := observability.NewRecorder()
	k := newKernel(t, a, &fakeBackend{}, kernel.WithMemoryStore(failingStore{}), kernel.WithObserver(rec))

	result := k.Run(context.Background(), "question")

	if result.Response != "ok" {
		t.Errorf("got response %q, want %q", result.Response, "ok")
	}
	if got := a.Calls()[0].Messages[0].Content; got != kernel.DefaultSystemPrompt {
		t.Errorf("got system turn %q, want bare prompt", got)
	}
	if rec.Types()[0] != kernel.EventError {
		t.Errorf("first event %q, want %q", rec.Types()[0], kernel.EventError)
	}
}

func TestRun_Events(t *testing.T) {
	a := mock.NewMockAgent(mock.WithResponses("TOOL_CALL: execute_query | SELECT 1", "done"))
	b := &fakeBackend{result: response.Succeeded(nil)}
	rec := observability.NewRecorder()
	k := newKernel(t, a, b, kernel.WithObserver(rec))

	k.Run(context.Background(), "question")

	want := []observability.EventType{
		kernel.EventRunStart,
		kernel.EventModelRequest,
		kernel.EventModelResponse,
		kernel.EventClassify,
		kernel.EventToolCall,
		kernel.EventToolComplete,
		kernel.EventModelRequest,
		kernel.EventModelResponse,
		kernel.EventResponse,
	}
	got := rec.Types()
	if len(got) != len(want) {
		t.Fatalf("got events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, got[i], want[i])
		}
	}

	for _, e := range rec.Events() {
		if e.Source != "kernel.Run" {
			t.Errorf("event %s source %q, want kernel.Run", e.Type, e.Source)
		}
	}
}

func TestRun_MaxMessagesKeepsCurrentQuestion(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Session.MaxMessages = 2

	a := mock.NewMockAgent(mock.WithResponses(
		"SELECT 1", "first final",
		"SELECT 2", "second final",
		"third answer",
	))
	b := &fakeBackend{result: response.Succeeded([]response.Record{{"n": 1}})}
	k, err := kernel.New(cfg,
		kernel.WithAgent(a),
		kernel.WithToolBackend(b),
		kernel.WithSession(session.NewMemorySession()),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer k.Close()
	ctx := context.Background()

	k.Run(ctx, "first question")

	calls := a.Calls()
	second := calls[1].Messages
	if !equalRoles(second, protocol.RoleSystem, protocol.RoleUser, protocol.RoleAssistant, protocol.RoleUser) {
		t.Fatalf("follow-up call got roles %v", roles(second))
	}
	if second[1].Content != "first question" {
		t.Errorf("follow-up call lost the question: got %q", second[1].Content)
	}
	if len(k.Transcript()) != 5 {
		t.Errorf("got %d turns, want the whole exchange kept", len(k.Transcript()))
	}

	k.Run(ctx, "second question")

	calls = a.Calls()
	for _, i := range []int{2, 3} {
		msgs := calls[i].Messages
		if msgs[1].Role != protocol.RoleUser || msgs[1].Content != "second question" {
			t.Errorf("call %d should open with the new question after pruning, got %+v", i, msgs[1])
		}
		for _, m := range msgs {
			if m.Content == "first question" {
				t.Errorf("call %d still carries the pruned exchange", i)
			}
		}
	}

	k.Run(ctx, "third question")

	transcript := k.Transcript()
	if !equalRoles(transcript, protocol.RoleSystem, protocol.RoleUser, protocol.RoleAssistant) {
		t.Errorf("got roles %v, want only the third exchange", roles(transcript))
	}
	if transcript[1].Content != "third question" {
		t.Errorf("got first turn %q, want %q", transcript[1].Content, "third question")
	}
}

func TestWithCatalog(t *testing.T) {
	catalog := []protocol.Tool{{Name: tools.ExecuteQuery, Description: "run sql"}}
	a := mock.NewMockAgent(mock.WithResponses("ok"))
	k := newKernel(t, a, &fakeBackend{}, kernel.WithCatalog(catalog))

	k.Run(context.Background(), "question")

	got := a.Calls()[0].Tools
	if len(got) != 1 || got[0].Description != "run sql" {
		t.Errorf("got tools %+v, want custom catalog", got)
	}
}

func TestGetSchema_GetTableSummary(t *testing.T) {
	b := &fakeBackend{result: response.ToolResult{Success: true, Data: "payload"}}
	k := newKernel(t, mock.NewMockAgent(), b)
	ctx := context.Background()

	if r := k.GetSchema(ctx); !r.Success {
		t.Errorf("GetSchema got %+v", r)
	}
	k.GetTableSummary(ctx, "")
	k.GetTableSummary(ctx, "regions")

	calls := b.Calls()
	if len(calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(calls))
	}
	if calls[0].Name != tools.GetSchema {
		t.Errorf("got %q, want %q", calls[0].Name, tools.GetSchema)
	}
	if calls[1].Name != tools.GetTableSummary || calls[1].Args["table_name"] != tools.DefaultTable {
		t.Errorf("got %+v, want default table summary", calls[1])
	}
	if calls[2].Args["table_name"] != "regions" {
		t.Errorf("got table %v, want regions", calls[2].Args["table_name"])
	}
	if len(k.Transcript()) != 1 {
		t.Errorf("auxiliary calls should not touch the transcript")
	}
}

func TestNew_DatasetBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")
	if _, err := dataset.SeedSales(context.Background(), path); err != nil {
		t.Fatalf("SeedSales failed: %v", err)
	}

	cfg := minimalConfig(t)
	cfg.Dataset.DSN = "file:" + path + "?mode=ro"

	a := mock.NewMockAgent(mock.WithResponses(
		"TOOL_CALL: execute_query | SELECT region, SUM(revenue) AS total FROM sales GROUP BY region ORDER BY total DESC LIMIT 1",
		"East has the highest total sales.",
	))
	k, err := kernel.New(cfg, kernel.WithAgent(a))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer k.Close()

	ctx := context.Background()
	result := k.Run(ctx, "Which region has the highest total sales?")

	if result.ToolResult == nil || !result.ToolResult.Success {
		t.Fatalf("got tool result %+v, want success", result.ToolResult)
	}
	if len(result.ToolResult.Results) != 1 {
		t.Fatalf("got %d rows, want 1", len(result.ToolResult.Results))
	}
	if result.Response != "East has the highest total sales." {
		t.Errorf("got response %q", result.Response)
	}

	summary := k.GetTableSummary(ctx, "")
	if !summary.Success {
		t.Errorf("GetTableSummary failed: %s", summary.Error)
	}

	schema := k.GetSchema(ctx)
	if !schema.Success {
		t.Errorf("GetSchema failed: %s", schema.Error)
	}
}

func TestNew_DatasetRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")
	if _, err := dataset.SeedSales(context.Background(), path); err != nil {
		t.Fatalf("SeedSales failed: %v", err)
	}

	cfg := minimalConfig(t)
	cfg.Dataset.DSN = "file:" + path + "?mode=ro"

	a := mock.NewMockAgent(mock.WithResponses("TOOL_CALL: execute_query | DROP TABLE sales"))
	k, err := kernel.New(cfg, kernel.WithAgent(a))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer k.Close()

	result := k.Run(context.Background(), "drop it")

	if !strings.HasPrefix(result.Response, "Tool call failed: ") {
		t.Errorf("got response %q, want tool failure", result.Response)
	}
	if !strings.Contains(result.Response, dataset.ErrNotSelect.Error()) {
		t.Errorf("got response %q, want %q", result.Response, dataset.ErrNotSelect.Error())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*kernel.Config)
	}{
		{"unknown provider", func(c *kernel.Config) { c.Agent.Provider = "carrier-pigeon" }},
		{"unknown tool backend", func(c *kernel.Config) { c.Tools.Backend = "ftp" }},
		{"process without command", func(c *kernel.Config) { c.Tools.Backend = tools.KindProcess }},
		{"unsupported driver", func(c *kernel.Config) { c.Dataset.Driver = "mysql" }},
		{"unknown observer", func(c *kernel.Config) { c.Observer = "nonexistent" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig(t)
			tt.mutate(cfg)

			if _, err := kernel.New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_ProcessBackend(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Tools.Backend = tools.KindProcess
	cfg.Tools.Process.Command = "data-server"

	k, err := kernel.New(cfg, kernel.WithAgent(mock.NewMockAgent()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
