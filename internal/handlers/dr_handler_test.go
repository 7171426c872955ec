package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"dr-failover-lambda/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedBody = `"DR Lambda executed"`

func newTestHandler(t *testing.T) *DRHandler {
	t.Helper()
	h, err := NewDRHandler(nil)
	require.NoError(t, err)
	return h
}

func assertAck(t *testing.T, resp lambda.Response) {
	t.Helper()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, expectedBody, resp.Body)

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	assert.Equal(t, "DR Lambda executed", decoded)
}

func scheduledEvent(t *testing.T) lambda.Event {
	t.Helper()
	raw, err := json.Marshal(events.CloudWatchEvent{
		Version:    "0",
		ID:         "89d1a02d-5ec7-412e-82f5-13505f849b41",
		DetailType: "Scheduled Event",
		Source:     "aws.events",
		AccountID:  "123456789012",
		Time:       time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
		Region:     "us-east-1",
		Resources:  []string{"arn:aws:events:us-east-1:123456789012:rule/dr-failover"},
		Detail:     json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	return raw
}

func TestDRHandler_Handle(t *testing.T) {
	h := newTestHandler(t)
	lambdaCtx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID:       "req-1",
		InvokedFunctionArn: "arn:aws:lambda:us-east-1:123456789012:function:dr-failover",
	})

	tests := []struct {
		name  string
		ctx   context.Context
		event lambda.Event
	}{
		{name: "empty object without context", ctx: nil, event: lambda.Event(`{}`)},
		{name: "detail type only", ctx: lambdaCtx, event: lambda.Event(`{"detail-type": "Scheduled Event"}`)},
		{name: "full scheduled event", ctx: lambdaCtx, event: scheduledEvent(t)},
		{name: "unexpected nested payload", ctx: context.Background(), event: lambda.Event(`{"unexpected": [1,2,3], "nested": {"a": null}}`)},
		{name: "null event", ctx: context.Background(), event: lambda.Event(`null`)},
		{name: "no event", ctx: context.Background(), event: nil},
		{name: "array event", ctx: context.Background(), event: lambda.Event(`[{"a":1},"b",3.5,true,null]`)},
		{name: "scalar event", ctx: context.Background(), event: lambda.Event(`"alarm"`)},
		{name: "not json", ctx: context.Background(), event: lambda.Event(`{{{`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(tt.ctx, tt.event)
			require.NoError(t, err)
			assertAck(t, resp)
		})
	}
}

func TestDRHandler_ResponseShape(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.Handle(context.Background(), lambda.Event(`{}`))
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode": 200, "body": "\"DR Lambda executed\""}`, string(raw))

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 2)
	assert.IsType(t, float64(0), fields["statusCode"])
}

func TestDRHandler_LargeEvent(t *testing.T) {
	h := newTestHandler(t)

	items := make([]string, 100000)
	for i := range items {
		items[i] = `{"record":"value"}`
	}
	event := lambda.Event("[" + strings.Join(items, ",") + "]")

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	assertAck(t, resp)
}

func TestDRHandler_Idempotent(t *testing.T) {
	h := newTestHandler(t)

	first, err := h.Handle(context.Background(), lambda.Event(`{}`))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		resp, err := h.Handle(context.Background(), lambda.Event(`{"attempt":`+strconv.Itoa(i)+`}`))
		require.NoError(t, err)
		assert.Equal(t, first, resp)
	}
}

func TestDRHandler_Concurrent(t *testing.T) {
	h := newTestHandler(t)
	event := scheduledEvent(t)

	var wg sync.WaitGroup
	responses := make([]lambda.Response, 64)
	errs := make([]error, 64)
	for i := range responses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i], errs[i] = h.Handle(context.Background(), event)
		}(i)
	}
	wg.Wait()

	for i := range responses {
		require.NoError(t, errs[i])
		assertAck(t, responses[i])
	}
}

func TestDRHandler_LogsInvocation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h, err := NewDRHandler(logger)
	require.NoError(t, err)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID:       "req-42",
		InvokedFunctionArn: "arn:aws:lambda:us-east-1:123456789012:function:dr-failover",
	})
	_, err = h.Handle(ctx, lambda.Event(`{"a":1}`))
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-42", entry.Data["invocation_id"])
	assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:function:dr-failover", entry.Data["function_arn"])
	assert.Equal(t, 7, entry.Data["event_bytes"])
}

func TestDRHandler_Invoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)

	router := gin.New()
	router.POST("/invoke", h.Invoke)

	for _, body := range []string{`{}`, `{"detail-type": "Scheduled Event"}`, ``, `[1,2,3]`} {
		req := httptest.NewRequest(http.MethodPost, "/invoke", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"statusCode": 200, "body": "\"DR Lambda executed\""}`, rec.Body.String())
	}
}

func FuzzDRHandler_Handle(f *testing.F) {
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"detail-type": "Scheduled Event"}`))
	f.Add([]byte(`{"unexpected": [1,2,3], "nested": {"a": null}}`))
	f.Add([]byte(`[[[[[]]]]]`))
	f.Add([]byte{0xff, 0x00, 0x7b})

	h, err := NewDRHandler(nil)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, event []byte) {
		resp, err := h.Handle(context.Background(), event)
		if err != nil {
			t.Fatalf("Handle() returned error: %v", err)
		}
		if resp.StatusCode != 200 || resp.Body != expectedBody {
			t.Fatalf("Handle() = %+v, want fixed acknowledgment", resp)
		}
	})
}
