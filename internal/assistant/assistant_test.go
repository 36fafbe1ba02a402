package assistant

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func newTestAssistant(t *testing.T, opts ...Option) *Assistant {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	a, err := New(opts...)
	require.NoError(t, err)
	return a
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := ParseCatalog(defaultResponses)
	require.NoError(t, err)

	var keywords []string
	for _, topic := range c.Topics {
		keywords = append(keywords, topic.Keyword)
	}
	assert.Equal(t, []string{"problem", "goal", "mission", "challenge", "priority", "status", "analytics", "help"}, keywords)
	assert.Len(t, c.Greetings, 2)
	assert.Len(t, c.Defaults, 3)
}

func TestReplyMatchesKeyword(t *testing.T) {
	a := newTestAssistant(t)

	r, err := a.Reply(context.Background(), "How do I write a good GOAL?")
	require.NoError(t, err)

	assert.Equal(t, "goal", r.Topic)
	assert.Equal(t, SourceKeyword, r.Source)
	assert.Contains(t, a.catalog.Topics[1].Responses, r.Text)
}

func TestReplyFirstTopicWins(t *testing.T) {
	a := newTestAssistant(t)

	// "challenge" and "problem" both appear; problem comes first in the catalog.
	r, err := a.Reply(context.Background(), "is a challenge a problem?")
	require.NoError(t, err)
	assert.Equal(t, "problem", r.Topic)
}

func TestReplyDefault(t *testing.T) {
	a := newTestAssistant(t)

	r, err := a.Reply(context.Background(), "what's the weather")
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, r.Source)
	assert.Contains(t, a.catalog.Defaults, r.Text)
}

func TestReplyUsesGenerator(t *testing.T) {
	gen := &stubGenerator{text: "  Try a SWOT analysis.  "}
	a := newTestAssistant(t, WithGenerator(gen))

	r, err := a.Reply(context.Background(), "what framework should I use")
	require.NoError(t, err)

	assert.Equal(t, SourceModel, r.Source)
	assert.Equal(t, "Try a SWOT analysis.", r.Text)
	assert.Contains(t, gen.prompt, "what framework should I use")
}

func TestReplyGeneratorFailureFallsBack(t *testing.T) {
	a := newTestAssistant(t, WithGenerator(&stubGenerator{err: errors.New("down")}))

	r, err := a.Reply(context.Background(), "anything else")
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, r.Source)
}

func TestReplyKeywordSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{text: "model"}
	a := newTestAssistant(t, WithGenerator(gen))

	r, err := a.Reply(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, SourceKeyword, r.Source)
	assert.Empty(t, gen.prompt)
}

func TestReplyRejectsBlank(t *testing.T) {
	a := newTestAssistant(t)

	_, err := a.Reply(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestParseCatalogValidation(t *testing.T) {
	_, err := ParseCatalog([]byte("topics:\n  - keyword: x\ndefaults: [a]\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("topics: []\n"))
	assert.Error(t, err)

	c, err := ParseCatalog([]byte("topics:\n  - keyword: Foo\n    responses: [bar]\ndefaults: [baz]\n"))
	require.NoError(t, err)
	assert.Equal(t, "foo", c.Topics[0].Keyword)
}

func TestGreetings(t *testing.T) {
	a := newTestAssistant(t)

	g := a.Greetings()
	require.Len(t, g, 2)
	assert.Contains(t, g[0], "strategic planning assistant")
}
