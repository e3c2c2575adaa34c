package graphdb

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/envgov/feedback-api/logger"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	resetMetricsForTesting()
	os.Exit(m.Run())
}

type executorCall struct {
	kind   string
	cypher string
	params map[string]any
}

// fakeExecutor answers queries from canned rows keyed by a substring of the Cypher text.
type fakeExecutor struct {
	mu        sync.Mutex
	calls     []executorCall
	rows      map[string][]map[string]any
	err       error
	schemaErr error
	pingErr   error
	closeErr  error
	closes    int
	panicOn   string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{rows: map[string][]map[string]any{}}
}

func (f *fakeExecutor) record(kind, cypher string, params map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, executorCall{kind: kind, cypher: cypher, params: params})
}

func (f *fakeExecutor) answer(cypher string) ([]map[string]any, error) {
	if f.panicOn != "" && strings.Contains(cypher, f.panicOn) {
		panic("driver exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	for key, rows := range f.rows {
		if strings.Contains(cypher, key) {
			return rows, nil
		}
	}
	return []map[string]any{}, nil
}

func (f *fakeExecutor) write(_ context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.record("write", cypher, params)
	return f.answer(cypher)
}

func (f *fakeExecutor) read(_ context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.record("read", cypher, params)
	return f.answer(cypher)
}

func (f *fakeExecutor) schema(_ context.Context, cypher string) error {
	f.record("schema", cypher, nil)
	return f.schemaErr
}

func (f *fakeExecutor) ping(_ context.Context) error {
	f.record("ping", pingQuery, nil)
	return f.pingErr
}

func (f *fakeExecutor) close(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return f.closeErr
}

func (f *fakeExecutor) callsOf(kind string) []executorCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []executorCall
	for _, c := range f.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func newTestGateway(exec *fakeExecutor) *Gateway {
	return newGateway(exec, "neo4j", logger.GetLogger().Named("graphdb-test"))
}
