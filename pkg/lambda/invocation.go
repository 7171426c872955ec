package lambda

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

// Invocation carries the metadata of a single invocation used for log annotation
type Invocation struct {
	ID          string
	FunctionARN string
	Deadline    time.Time
}

// InvocationFromContext extracts invocation metadata from the Lambda context.
// Outside Lambda a fresh UUID stands in for the AWS request ID.
func InvocationFromContext(ctx context.Context) Invocation {
	if ctx == nil {
		ctx = context.Background()
	}

	inv := Invocation{}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		inv.ID = lc.AwsRequestID
		inv.FunctionARN = lc.InvokedFunctionArn
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if deadline, ok := ctx.Deadline(); ok {
		inv.Deadline = deadline
	}

	return inv
}

// RemainingTime returns the time left before the invocation deadline, or zero if none is set
func (i Invocation) RemainingTime() time.Duration {
	if i.Deadline.IsZero() {
		return 0
	}
	if remaining := time.Until(i.Deadline); remaining > 0 {
		return remaining
	}
	return 0
}
