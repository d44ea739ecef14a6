package service

import (
	"context"
	"sync"

	"study-assistant-be/pkg/catalog/archive"
	"study-assistant-be/pkg/catalog/openlibrary"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/llm"
)

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type fakeBooks struct {
	books []openlibrary.Book
	err   error
	calls int
}

func (f *fakeBooks) Search(_ context.Context, _ string) ([]openlibrary.Book, error) {
	f.calls++
	return f.books, f.err
}

type fakeResearch struct {
	papers []archive.Paper
	source archive.Source
	calls  int
}

func (f *fakeResearch) Search(_ context.Context, _ string) ([]archive.Paper, archive.Source) {
	f.calls++
	return f.papers, f.source
}
