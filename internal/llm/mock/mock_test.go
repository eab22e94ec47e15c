package mock

import (
	"bytes"
	"context"
	"testing"

	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/llm/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	client, err := New().CreateClient(nil, nil)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), []common.Message{{Role: common.RoleUser, Content: "x"}}, "")
	require.NoError(t, err)
	assert.Equal(t, Translation, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Generate(ctx, nil, "")
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	p := New()
	assert.Equal(t, "mock", p.ProviderName())
	assert.Equal(t, common.ShapePlain, p.MessageShape())
	assert.Empty(t, p.BuildOptions(map[string]float64{"temperature": 1}, nil))
}

func structuredMessages() []common.Message {
	return []common.Message{{
		Role:  common.RoleUser,
		Parts: []common.ContentPart{{Type: "text", SourceLangCode: "pl", TargetLangCode: "en", Text: "To jest prosty test tłumaczenia."}},
	}}
}

func TestEngine_ThroughLocalClient(t *testing.T) {
	var warnings bytes.Buffer
	client := local.NewClient(NewEngine(), local.WithWarnings(&warnings))

	out, err := client.Generate(context.Background(), structuredMessages(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Translation, out)
	assert.Contains(t, warnings.String(), "very slowly")
}

func TestEngine_MaxNewTokens(t *testing.T) {
	client := local.NewClient(NewEngine(), local.WithWarnings(&bytes.Buffer{}))
	opts := local.New().BuildOptions(map[string]float64{"max_tokens": 2}, nil)

	out, err := client.Generate(context.Background(), structuredMessages(), t.TempDir(), opts...)
	require.NoError(t, err)
	assert.Equal(t, "This is", out)
}

func TestEngine_Model(t *testing.T) {
	loaded, err := NewEngine().Load(context.Background(), local.LoadSpec{ModelID: "m"})
	require.NoError(t, err)
	defer loaded.Close()

	m, ok := loaded.(local.TokenModel)
	require.True(t, ok)

	inputs, err := m.ApplyChatTemplate(structuredMessages())
	require.NoError(t, err)
	n, err := inputs.InputLen()
	require.NoError(t, err)

	output, err := m.Generate(context.Background(), inputs, local.GenerationParams{MaxNewTokens: 128})
	require.NoError(t, err)
	assert.Equal(t, eosToken, output[len(output)-1])

	text, err := m.Decode(output[n:], true)
	require.NoError(t, err)
	assert.Equal(t, Translation, text)

	withSpecial, err := m.Decode(output[n:], false)
	require.NoError(t, err)
	assert.Equal(t, Translation+" <eos>", withSpecial)

	_, err = m.ApplyChatTemplate([]common.Message{{Role: common.RoleUser, Parts: []common.ContentPart{{Type: "image"}}}})
	assert.ErrorContains(t, err, "unsupported content type")

	_, err = NewEngine().Load(context.Background(), local.LoadSpec{})
	assert.Error(t, err)
}
