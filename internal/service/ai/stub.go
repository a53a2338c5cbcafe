package ai

import (
	"context"
	"fmt"
	"sync"
)

var stubTemplates = []string{
	"I see you said: %q. Here's a simple explanation: NLP is how computers understand human language.",
	"You asked: %q. NLP allows machines to read, understand, and respond to text!",
	"Hello! About %q: NLP is a way for machines to learn human language.",
}

// Stub answers without network access. It stands in for Gemini when no
// API key is configured and throughout the test suite.
type Stub struct {
	mu   sync.Mutex
	next int
}

// NewStub returns a Generator cycling through canned replies.
func NewStub() *Stub {
	return &Stub{}
}

// Generate returns a canned reply embedding the prompt. It never fails.
func (s *Stub) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	template := stubTemplates[s.next%len(stubTemplates)]
	s.next++
	s.mu.Unlock()

	return fmt.Sprintf(template, prompt), nil
}
