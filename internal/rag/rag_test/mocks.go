package rag_test

import (
	"context"
	"sync"
)

// MockExtractor implements ingest.Extractor
type MockExtractor struct {
	OnExtract func(ctx context.Context, fileName string, data []byte) (string, error)
}

func (m *MockExtractor) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	if m.OnExtract != nil {
		return m.OnExtract(ctx, fileName, data)
	}
	return "extracted text", nil
}

// MockLLM implements llm.Provider and records the prompts it receives
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) Name() string {
	return "mock"
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
