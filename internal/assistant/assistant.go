// Package assistant answers planning questions from a fixed set of canned
// responses, optionally deferring unmatched questions to a language model.
package assistant

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var defaultResponses []byte

var ErrEmptyMessage = errors.New("message is empty")

// Generator produces free-form text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Topic struct {
	Keyword   string   `yaml:"keyword"`
	Responses []string `yaml:"responses"`
}

type Catalog struct {
	Greetings []string `yaml:"greetings"`
	Topics    []Topic  `yaml:"topics"`
	Defaults  []string `yaml:"defaults"`
}

const (
	SourceKeyword = "keyword"
	SourceModel   = "model"
	SourceDefault = "default"
)

type Reply struct {
	Text   string `json:"text"`
	Topic  string `json:"topic,omitempty"`
	Source string `json:"source"`
}

type Assistant struct {
	catalog Catalog
	llm     Generator
	log     *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Assistant)

// WithGenerator routes messages that match no keyword to g.
func WithGenerator(g Generator) Option {
	return func(a *Assistant) { a.llm = g }
}

// WithRand fixes the source used to pick among canned responses.
func WithRand(r *rand.Rand) Option {
	return func(a *Assistant) { a.rnd = r }
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// ParseCatalog decodes a YAML catalog. Every topic needs a keyword and at
// least one response, and there must be at least one default.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("assistant: parse catalog: %w", err)
	}
	for i, t := range c.Topics {
		if strings.TrimSpace(t.Keyword) == "" || len(t.Responses) == 0 {
			return Catalog{}, fmt.Errorf("assistant: topic %d is incomplete", i)
		}
		c.Topics[i].Keyword = strings.ToLower(t.Keyword)
	}
	if len(c.Defaults) == 0 {
		return Catalog{}, errors.New("assistant: catalog has no default responses")
	}
	return c, nil
}

// New builds an assistant over the embedded catalog.
func New(opts ...Option) (*Assistant, error) {
	c, err := ParseCatalog(defaultResponses)
	if err != nil {
		return nil, err
	}
	return NewWithCatalog(c, opts...), nil
}

func NewWithCatalog(c Catalog, opts ...Option) *Assistant {
	a := &Assistant{
		catalog: c,
		log:     zap.NewNop(),
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assistant) Greetings() []string {
	return append([]string(nil), a.catalog.Greetings...)
}

// Reply answers message. A model failure falls back to a default response
// rather than failing the request.
func (a *Assistant) Reply(ctx context.Context, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	lower := strings.ToLower(message)
	for _, t := range a.catalog.Topics {
		if strings.Contains(lower, t.Keyword) {
			return Reply{Text: a.pick(t.Responses), Topic: t.Keyword, Source: SourceKeyword}, nil
		}
	}

	if a.llm != nil {
		text, err := a.llm.Generate(ctx, prompt(message))
		if err == nil && strings.TrimSpace(text) != "" {
			return Reply{Text: strings.TrimSpace(text), Source: SourceModel}, nil
		}
		a.log.Warn("assistant model fallback failed", zap.String("op", "assistant.Reply"), zap.Error(err))
	}

	return Reply{Text: a.pick(a.catalog.Defaults), Source: SourceDefault}, nil
}

func (a *Assistant) pick(options []string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return options[a.rnd.IntN(len(options))]
}

func prompt(message string) string {
	return "You are a strategic planning assistant. Users track problems, goals, " +
		"missions and challenges with priorities and statuses. Answer briefly.\n\n" +
		"Question:\n" + message
}
