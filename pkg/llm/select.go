package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoWorkingModel is returned by SelectModel when every candidate failed.
var ErrNoWorkingModel = errors.New("no working model found")

// Builder constructs a provider bound to one model identifier.
type Builder func(model string) (LLMProvider, error)

// Handle is the provider chosen at startup together with its model name.
type Handle struct {
	Model    string
	Provider LLMProvider
}

// CandidateError records why one candidate was rejected.
type CandidateError struct {
	Model string
	Err   error
}

// SelectionError lists every rejected candidate. It matches ErrNoWorkingModel.
type SelectionError struct {
	Failures []CandidateError
}

func (e *SelectionError) Error() string {
	if len(e.Failures) == 0 {
		return ErrNoWorkingModel.Error() + ": no candidates configured"
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Model, f.Err)
	}
	return ErrNoWorkingModel.Error() + ": " + strings.Join(parts, "; ")
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrNoWorkingModel
}

// SelectModel tries candidates in order, sending probe to each, and returns
// the first one that answers without error. onFailure (optional) is invoked
// for each rejected candidate before moving to the next.
func SelectModel(
	ctx context.Context,
	candidates []string,
	build Builder,
	probe string,
	onFailure func(model string, err error),
) (*Handle, error) {
	selErr := &SelectionError{}

	for _, model := range candidates {
		provider, err := build(model)
		if err == nil {
			_, err = provider.Generate(ctx, probe)
		}
		if err != nil {
			selErr.Failures = append(selErr.Failures, CandidateError{Model: model, Err: err})
			if onFailure != nil {
				onFailure(model, err)
			}
			continue
		}
		return &Handle{Model: model, Provider: provider}, nil
	}

	return nil, selErr
}
