// Package kernel implements the question-answering loop of the data agent.
//
// A question is sent to the model with the tool catalog. When the reply
// asks for a query, the query runs once against the tool backend and the
// results are handed back to the model for a final answer.
//
//	k, err := kernel.New(&cfg)
//	result := k.Run(ctx, "What are the top 5 products by revenue?")
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/dataagent/agent"
	"github.com/tailored-agentic-units/dataagent/classify"
	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
	"github.com/tailored-agentic-units/dataagent/memory"
	"github.com/tailored-agentic-units/dataagent/observability"
	"github.com/tailored-agentic-units/dataagent/session"
	"github.com/tailored-agentic-units/dataagent/tools"
)

// Transcript turn templates.
const (
	queriedFormat  = "I queried the database with: %s"
	resultsFormat  = "Here are the query results:\n%s\n\nPlease analyze these results and provide insights."
	toolFailFormat = "Tool call failed: %s"
)

// Result holds the outcome of a Run.
type Result struct {
	Response       string               // Final answer text.
	Decision       classify.Decision    // Classification of the first model reply.
	Query          string               // Query sent to the tool backend, if any.
	ToolResult     *response.ToolResult // Tool backend outcome, if a tool ran.
	InferenceCalls int                  // Number of model calls made.
	States         []State              // States visited, in order.
}

func (r *Result) enter(s State) {
	r.States = append(r.States, s)
}

// Option configures a Kernel after config-driven initialization.
type Option func(*Kernel)

// WithAgent overrides the config-created inference backend.
func WithAgent(a agent.Agent) Option {
	return func(k *Kernel) { k.agent = a }
}

// WithToolBackend overrides the config-created tool backend.
func WithToolBackend(b tools.Backend) Option {
	return func(k *Kernel) { k.tools = b }
}

// WithSession overrides the config-created session.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithMemoryStore overrides the config-created note store.
func WithMemoryStore(s memory.Store) Option {
	return func(k *Kernel) { k.store = s }
}

// WithObserver overrides the configured observer.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// WithCatalog overrides the tool catalog offered on the first model call.
func WithCatalog(catalog []protocol.Tool) Option {
	return func(k *Kernel) { k.catalog = catalog }
}

// Kernel answers questions one at a time against a dataset.
type Kernel struct {
	agent        agent.Agent
	tools        tools.Backend
	catalog      []protocol.Tool
	session      session.Session
	store        memory.Store
	observer     observability.Observer
	systemPrompt string
	system       string
	maxMessages  int
	exchanges    []int // turn counts of the questions held in session, oldest first
	closers      []io.Closer
	mu           sync.Mutex
}

// New creates a Kernel from configuration. Subsystems are initialized from
// their config sections; options applied afterwards override any of them.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	a, err := agent.New(&cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	backend, closer, err := newToolBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool backend: %w", err)
	}

	closeBackend := func() {
		if closer != nil {
			closer.Close()
		}
	}

	sesh, err := session.New(&cfg.Session)
	if err != nil {
		closeBackend()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	store, err := memory.NewStore(&cfg.Memory)
	if err != nil {
		closeBackend()
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}

	observerName := cfg.Observer
	if observerName == "" {
		observerName = defaultObserver
	}
	observer, err := observability.GetObserver(observerName)
	if err != nil {
		closeBackend()
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	k := &Kernel{
		agent:        a,
		tools:        backend,
		catalog:      tools.Catalog(),
		session:      sesh,
		store:        store,
		observer:     observer,
		systemPrompt: cfg.SystemPrompt,
		system:       cfg.SystemPrompt,
		maxMessages:  cfg.Session.MaxMessages,
	}
	if closer != nil {
		k.closers = append(k.closers, closer)
	}

	for _, opt := range opts {
		opt(k)
	}

	return k, nil
}

// Run answers question. It never fails: backend and tool errors are
// reported through Result.Response.
func (k *Kernel) Run(ctx context.Context, question string) *Result {
	k.mu.Lock()
	defer k.mu.Unlock()

	result := &Result{}
	result.enter(StateAwaitingUserInput)

	if strings.TrimSpace(question) == "" {
		return k.finish(ctx, result, ErrEmptyQuestion.Error())
	}

	k.system = k.buildSystemContent(ctx)
	k.pruneHistory()

	start := k.session.Len()
	defer func() {
		k.exchanges = append(k.exchanges, k.session.Len()-start)
	}()
	k.session.AddMessage(protocol.NewMessage(protocol.RoleUser, question))

	k.emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"session":         k.session.ID(),
		"question_length": len(question),
		"tools":           len(k.catalog),
	})

	result.enter(StateAwaitingModelResponse)
	completion, err := k.complete(ctx, result, k.catalog)
	if err != nil {
		return k.fail(ctx, result, err.Error())
	}
	if completion.IsError() {
		return k.fail(ctx, result, completion.Content)
	}

	result.enter(StateClassifyingResponse)
	decision := classify.Classify(completion.Content)
	result.Decision = decision

	k.emit(ctx, EventClassify, observability.LevelVerbose, map[string]any{
		"kind":  decision.Kind.String(),
		"tool":  decision.Tool,
		"query": decision.Query,
	})

	if !decision.IsToolCall() {
		k.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, completion.Content))
		return k.finish(ctx, result, completion.Content)
	}

	result.enter(StateExecutingTool)
	result.Query = decision.Query
	toolResult, err := k.executeQuery(ctx, decision.Query)
	if err != nil {
		return k.fail(ctx, result, err.Error())
	}
	result.ToolResult = &toolResult

	if !toolResult.Success {
		return k.fail(ctx, result, fmt.Sprintf(toolFailFormat, toolResult.Error))
	}

	body, err := toolResult.MarshalResults()
	if err != nil {
		return k.fail(ctx, result, fmt.Sprintf(toolFailFormat, err))
	}

	k.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, fmt.Sprintf(queriedFormat, decision.Query)))
	k.session.AddMessage(protocol.NewMessage(protocol.RoleUser, fmt.Sprintf(resultsFormat, body)))

	result.enter(StateAwaitingFinalResponse)
	final, err := k.complete(ctx, result, nil)
	if err != nil {
		return k.fail(ctx, result, err.Error())
	}
	if final.IsError() {
		return k.fail(ctx, result, final.Content)
	}

	k.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, final.Content))
	return k.finish(ctx, result, final.Content)
}

// Ask answers question and returns only the final text.
func (k *Kernel) Ask(ctx context.Context, question string) string {
	return k.Run(ctx, question).Response
}

// GetSchema asks the tool backend for the dataset schema.
func (k *Kernel) GetSchema(ctx context.Context) response.ToolResult {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tools.Invoke(ctx, tools.GetSchema, map[string]any{})
}

// GetTableSummary asks the tool backend to summarize table, defaulting to
// tools.DefaultTable when table is empty.
func (k *Kernel) GetTableSummary(ctx context.Context, table string) response.ToolResult {
	if table == "" {
		table = tools.DefaultTable
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tools.Invoke(ctx, tools.GetTableSummary, map[string]any{"table_name": table})
}

// Transcript returns the system turn followed by the conversation turns.
func (k *Kernel) Transcript() []protocol.Message {
	k.mu.Lock()
	system := k.system
	k.mu.Unlock()

	return k.buildMessages(system)
}

// SessionID returns the identifier of the kernel's session.
func (k *Kernel) SessionID() string {
	return k.session.ID()
}

// Close releases resources held by config-created backends.
func (k *Kernel) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var errs []error
	for _, c := range k.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	k.closers = nil
	return errors.Join(errs...)
}

// complete sends the transcript to the model. The only error returned is
// the context's; model failures come back as error completions.
func (k *Kernel) complete(ctx context.Context, result *Result, catalog []protocol.Tool) (response.Completion, error) {
	if err := ctx.Err(); err != nil {
		return response.Completion{}, err
	}

	messages := k.buildMessages(k.system)
	result.InferenceCalls++

	k.emit(ctx, EventModelRequest, observability.LevelVerbose, map[string]any{
		"agent":    k.agent.Name(),
		"call":     result.InferenceCalls,
		"messages": len(messages),
		"tools":    len(catalog),
	})

	completion := k.agent.Complete(ctx, messages, catalog)

	k.emit(ctx, EventModelResponse, observability.LevelVerbose, map[string]any{
		"call":           result.InferenceCalls,
		"finish_reason":  string(completion.FinishReason),
		"content_length": len(completion.Content),
	})
	return completion, nil
}

func (k *Kernel) executeQuery(ctx context.Context, query string) (response.ToolResult, error) {
	if err := ctx.Err(); err != nil {
		return response.ToolResult{}, err
	}

	k.emit(ctx, EventToolCall, observability.LevelInfo, map[string]any{
		"tool":  tools.ExecuteQuery,
		"query": query,
	})

	call := protocol.NewToolCall(tools.ExecuteQuery, map[string]any{"query": query})
	result := k.tools.Invoke(ctx, call.Name, call.Arguments)

	data := map[string]any{
		"tool":    call.Name,
		"success": result.Success,
		"rows":    len(result.Results),
	}
	if !result.Success {
		data["error"] = result.Error
	}
	k.emit(ctx, EventToolComplete, observability.LevelInfo, data)

	return result, nil
}

func (k *Kernel) finish(ctx context.Context, result *Result, text string) *Result {
	result.Response = text
	result.enter(StateDone)

	k.emit(ctx, EventResponse, observability.LevelInfo, map[string]any{
		"kind":            result.Decision.Kind.String(),
		"inference_calls": result.InferenceCalls,
		"response_length": len(text),
	})
	return result
}

func (k *Kernel) fail(ctx context.Context, result *Result, text string) *Result {
	k.emit(ctx, EventError, observability.LevelWarning, map[string]any{
		"state": string(result.States[len(result.States)-1]),
		"error": text,
	})
	return k.finish(ctx, result, text)
}

// pruneHistory discards whole exchanges, oldest first, until the session
// fits the MaxMessages cap. Turns of the question about to be asked are
// never touched.
func (k *Kernel) pruneHistory() {
	if k.maxMessages <= 0 {
		return
	}

	// turns added or cleared outside Run count as one leading exchange
	tracked := 0
	for _, n := range k.exchanges {
		tracked += n
	}
	switch held := k.session.Len(); {
	case held < tracked:
		k.exchanges = nil
		if held > 0 {
			k.exchanges = []int{held}
		}
	case held > tracked:
		k.exchanges = append([]int{held - tracked}, k.exchanges...)
	}

	for len(k.exchanges) > 0 && k.session.Len() > k.maxMessages {
		k.session.DropOldest(k.exchanges[0])
		k.exchanges = k.exchanges[1:]
	}
}

func (k *Kernel) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	k.observer.OnEvent(ctx, observability.NewEvent(typ, level, "kernel.Run", data))
}

func (k *Kernel) buildMessages(system string) []protocol.Message {
	turns := k.session.Messages()

	messages := make([]protocol.Message, 0, len(turns)+1)
	messages = append(messages, protocol.NewMessage(protocol.RoleSystem, system))
	messages = append(messages, turns...)
	return messages
}

// buildSystemContent appends composed notes to the system prompt. A note
// store that cannot be read is reported and skipped.
func (k *Kernel) buildSystemContent(ctx context.Context) string {
	notes, err := memory.Compose(ctx, k.store)
	if err != nil {
		k.emit(ctx, EventError, observability.LevelWarning, map[string]any{
			"error": fmt.Sprintf("failed to load context notes: %v", err),
		})
		return k.systemPrompt
	}
	if notes == "" {
		return k.systemPrompt
	}
	return k.systemPrompt + "\n\n" + notes
}
