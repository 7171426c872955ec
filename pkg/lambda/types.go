package lambda

import "encoding/json"

// Acknowledgment returned by the DR handler on every invocation
const (
	AckStatusCode = 200
	AckMessage    = "DR Lambda executed"
)

// Event is the raw payload of a triggering occurrence. Any JSON value is accepted.
type Event = json.RawMessage

// Response is the API Gateway style result of a DR invocation
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
