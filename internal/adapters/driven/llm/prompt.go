// Package llm holds helpers shared by the language model adapters.
// Each provider lives in its own subpackage.
package llm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Prompts renders prompt templates, preferring a PromptStore when one is set.
// Embed it in an adapter to satisfy driven.PromptStoreAware.
type Prompts struct {
	mu    sync.RWMutex
	store driven.PromptStore
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (p *Prompts) SetPromptStore(store driven.PromptStore) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = store
}

// Summarise renders the summarisation prompt for content within opts' bounds.
func (p *Prompts) Summarise(content string, opts driven.GenerateOptions) string {
	template := p.load(driven.PromptSummarise, driven.DefaultSummarisePrompt)
	if !validSummariseTemplate(template) {
		template = driven.DefaultSummarisePrompt
	}
	return fmt.Sprintf(template, opts.MinTokens, opts.MaxTokens, content)
}

// validSummariseTemplate reports whether the template's verbs are exactly
// %d %d %s in that order. %% is a literal percent sign.
func validSummariseTemplate(template string) bool {
	var verbs strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 == len(template) {
			return false
		}
		i++
		if template[i] == '%' {
			continue
		}
		verbs.WriteByte(template[i])
	}
	return verbs.String() == "dds"
}

// load loads a prompt from the store, falling back to the default if unavailable.
func (p *Prompts) load(name, fallback string) string {
	p.mu.RLock()
	store := p.store
	p.mu.RUnlock()

	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}
