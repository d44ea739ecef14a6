package service

import (
	"context"
	"errors"
	"testing"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistant(p *fakeProvider, pub IPublisherService) IAssistantService {
	var handle *llm.Handle
	if p != nil {
		handle = &llm.Handle{Model: "gemini-2.5-flash", Provider: p}
	}
	return NewAssistantService(handle, pub, logger.NewNopLogger())
}

func TestAskWrapsQuestionInStudyPrompt(t *testing.T) {
	p := &fakeProvider{reply: "Photosynthesis is..."}
	pub := &recordingPublisher{}
	svc := newAssistant(p, pub)

	res, err := svc.Ask(context.Background(), &dto.StudyRequest{Message: "What is photosynthesis?"})
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis is...", res.Response)
	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "What is photosynthesis?")
	assert.Contains(t, p.prompts[0], "Study tips")
	assert.Equal(t, []string{events.TypeQuestionAnswered}, pub.types())
}

func TestAskBlankMessageMakesNoCall(t *testing.T) {
	p := &fakeProvider{reply: "unused"}
	svc := newAssistant(p, nil)

	for _, msg := range []string{"", "   "} {
		_, err := svc.Ask(context.Background(), &dto.StudyRequest{Message: msg})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "Please enter a question", err.Error())
	}
	assert.Equal(t, 0, p.calls())
}

func TestQuizPrompt(t *testing.T) {
	p := &fakeProvider{reply: "Q1..."}
	svc := newAssistant(p, nil)

	res, err := svc.Quiz(context.Background(), &dto.QuizRequest{Material: "cells"})
	require.NoError(t, err)

	assert.Equal(t, "Q1...", res.Quiz)
	assert.Equal(t, []string{"Create a quiz based on this study material: cells"}, p.prompts)
}

func TestQuizBlankMaterial(t *testing.T) {
	p := &fakeProvider{}
	svc := newAssistant(p, nil)

	_, err := svc.Quiz(context.Background(), &dto.QuizRequest{})
	require.Error(t, err)
	assert.Equal(t, "Please enter study material", err.Error())
	assert.Equal(t, 0, p.calls())
}

func TestGenerateWithoutHandleIsUnavailable(t *testing.T) {
	svc := newAssistant(nil, nil)

	_, err := svc.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, apperror.ErrProviderUnavailable)
	assert.Equal(t, "AI service is not available. Please check the model configuration.", err.Error())
	assert.Equal(t, "", svc.Model())
}

func TestGenerateProviderErrorKeepsDetail(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}
	pub := &recordingPublisher{}
	svc := newAssistant(p, pub)

	_, err := svc.Ask(context.Background(), &dto.StudyRequest{Message: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrProvider)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Equal(t, 1, p.calls())
	assert.Empty(t, pub.types())
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := newAssistant(p, pub)

	res, err := svc.Ask(context.Background(), &dto.StudyRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Response)
}
