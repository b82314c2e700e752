// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws Zeebe jobs from worker errors.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decision is what HandleJobError does with a failed job.
type Decision struct {
	BPMN    *BPMNError
	Retry   bool
	Retries int32
}

// Decide normalizes err and picks between failing the job with retries and
// throwing a BPMN error. jobRetries is the job's remaining retry count.
func Decide(err error, jobRetries int32) Decision {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	if bpmnErr.Retries > 0 && jobRetries > 0 {
		retries := int32(bpmnErr.Retries)
		if jobRetries < retries {
			retries = jobRetries
		}
		return Decision{BPMN: bpmnErr, Retry: true, Retries: retries}
	}
	return Decision{BPMN: bpmnErr}
}

// Normalize unwraps err to a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HandleJobError handles any error in a worker job.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	decision := Decide(err, job.Retries)
	h.logError(job, Normalize(err), decision)

	varsJSON, marshalErr := json.Marshal(decision.BPMN.ToErrorVariables())

	if decision.Retry {
		cmd := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(decision.Retries).
			ErrorMessage(decision.BPMN.Message)
		if marshalErr == nil {
			if withVars, varErr := cmd.VariablesFromString(string(varsJSON)); varErr == nil {
				_, _ = withVars.Send(ctx)
				return
			}
		}
		_, _ = cmd.Send(ctx)
		return
	}

	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(decision.BPMN.Code).
		ErrorMessage(decision.BPMN.Message)
	if marshalErr == nil {
		if withVars, varErr := cmd.VariablesFromString(string(varsJSON)); varErr == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, decision Decision) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    decision.BPMN.Code,
		"message":          decision.BPMN.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retry":            decision.Retry,
		"retries":          decision.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
