package ybapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

var (
	listTasksOp = ybapi.MustOperation(ybapi.OperationSpec{
		Name:        "ListTasksAll",
		Path:        "/private/accounts/{accountId}/tasks",
		PathParams:  []string{"accountId"},
		QueryParams: []string{"projectId", "task_type", "locking", "limit", "continuation_token"},
	})

	getReleaseOp = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "GetRelease",
		Path:       "/public/accounts/{accountId}/software/tracks/{trackId}/releases/{releaseId}",
		PathParams: []string{"accountId", "trackId", "releaseId"},
	})

	getPITROp = ybapi.MustOperation(ybapi.OperationSpec{
		Name: "GetPITRSchedules",
		Path: "/pitr",
	})

	runTaskOp = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "RunScheduledTask",
		Method:     http.MethodPost,
		Path:       "/private/scheduled_tasks/{task}",
		PathParams: []string{"task"},
	})
)

// gatedTransport blocks every call until release is closed, unless the
// gate is nil.
type gatedTransport struct {
	calls   atomic.Int32
	started chan *ybapi.Request
	release chan struct{}
	respond func(req *ybapi.Request) (json.RawMessage, error)
}

func newGatedTransport(respond func(req *ybapi.Request) (json.RawMessage, error)) *gatedTransport {
	return &gatedTransport{
		started: make(chan *ybapi.Request, 64),
		release: make(chan struct{}),
		respond: respond,
	}
}

func (g *gatedTransport) Execute(ctx context.Context, req *ybapi.Request) (json.RawMessage, error) {
	g.calls.Add(1)
	g.started <- req

	if g.release != nil {
		<-g.release
	}

	return g.respond(req)
}

// staticTransport counts calls and answers with a fixed payload.
type staticTransport struct {
	calls   atomic.Int32
	mu      sync.Mutex
	reqs    []*ybapi.Request
	payload json.RawMessage
	err     error
}

func (s *staticTransport) Execute(_ context.Context, req *ybapi.Request) (json.RawMessage, error) {
	s.calls.Add(1)

	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()

	return s.payload, s.err
}

func (s *staticTransport) requests() []*ybapi.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*ybapi.Request(nil), s.reqs...)
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger captures log calls.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *recordingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, entry := range l.entries {
		if entry.msg == msg {
			n++
		}
	}

	return n
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

const (
	timeout = time.Second
	tick    = time.Millisecond
)
