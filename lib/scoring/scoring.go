// Package scoring turns an assignment context plus a submitted answer
// into a numeric score with a short justification, by delegating to an
// external structured-generation service.
package scoring

import (
	"context"
	"fmt"
)

type Request struct {
	Title        string `json:"title"`
	Requirements string `json:"requirements"`
	Answer       string `json:"answer"`
}

type Result struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type Scorer interface {
	Score(ctx context.Context, req Request) (Result, error)
}

// FallbackReason is reported when a submission has no eligible answer
// file. It is the only case that short-circuits the service call.
const FallbackReason = "No answer submitted or Wrong file format"

func Fallback() Result {
	return Result{Score: 0, Reason: FallbackReason}
}

// ServiceError means the scoring service call failed or returned output
// that does not conform to the score/reason schema. It always
// propagates, it is never folded into the fallback result.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("scoring service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
