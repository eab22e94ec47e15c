package translate

import (
	"encoding/json"
	"testing"

	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest() Request {
	return NewRequest("To jest test.", "pl", "en", "translategemma:4b", 128,
		map[string]float64{"temperature": 0.2, "max_tokens": 128})
}

func TestNewRequest_CopiesSampling(t *testing.T) {
	sampling := map[string]float64{"temperature": 0.2}
	req := NewRequest("text", "pl", "en", "m", 64, sampling)

	sampling["temperature"] = 1.5
	sampling["top_p"] = 0.9

	v, ok := req.Option("temperature")
	require.True(t, ok)
	assert.Equal(t, 0.2, v)
	_, ok = req.Option("top_p")
	assert.False(t, ok)

	out := req.Sampling()
	out["temperature"] = 9
	v, _ = req.Option("temperature")
	assert.Equal(t, 0.2, v)
}

func TestRequest_WithStop(t *testing.T) {
	base := newTestRequest()
	assert.Nil(t, base.Stop())

	stop := []string{"<end_of_turn>", "###"}
	req := base.WithStop(stop)
	stop[0] = "changed"

	assert.Equal(t, []string{"<end_of_turn>", "###"}, req.Stop())
	assert.Nil(t, base.Stop(), "the original request is unchanged")

	out := req.Stop()
	out[1] = "changed"
	assert.Equal(t, []string{"<end_of_turn>", "###"}, req.Stop())

	assert.Nil(t, req.WithStop(nil).Stop())
	assert.Nil(t, req.WithStop([]string{}).Stop())
}

func TestRequest_Accessors(t *testing.T) {
	req := newTestRequest()
	assert.Equal(t, "To jest test.", req.Text())
	assert.Equal(t, "pl", req.Source())
	assert.Equal(t, "en", req.Target())
	assert.Equal(t, "translategemma:4b", req.Model())
	assert.Equal(t, 128, req.MaxTokens())
}

func TestRequest_Messages(t *testing.T) {
	req := newTestRequest()

	t.Run("default instruction", func(t *testing.T) {
		messages := req.Messages(Config{})
		require.Len(t, messages, 2)

		assert.Equal(t, common.RoleSystem, messages[0].Role)
		assert.Contains(t, messages[0].Content, "from Polish (pl) to English (en)")
		assert.NotContains(t, messages[0].Content, "{")

		assert.Equal(t, common.RoleUser, messages[1].Role)
		assert.Equal(t, "Source language: Polish (pl)\nTarget language: English (en)\n\nTo jest test.", messages[1].Content)
		assert.False(t, messages[1].IsStructured())
	})

	t.Run("custom template", func(t *testing.T) {
		messages := req.Messages(Config{SystemPrompt: "{source}->{target} {source_name}->{target_name}"})
		assert.Equal(t, "pl->en Polish->English", messages[0].Content)
	})

	t.Run("empty text passes through", func(t *testing.T) {
		empty := NewRequest("", "pl", "en", "m", 1, nil)
		messages := empty.Messages(Config{})
		assert.Equal(t, "Source language: Polish (pl)\nTarget language: English (en)\n\n", messages[1].Content)
	})

	t.Run("unknown codes are used verbatim", func(t *testing.T) {
		odd := NewRequest("x", "qq-invalid!", "en", "m", 1, nil)
		messages := odd.Messages(Config{})
		assert.Contains(t, messages[1].Content, "Source language: qq-invalid!\n")
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := json.Marshal(req.Messages(Config{}))
		require.NoError(t, err)
		second, err := json.Marshal(req.Messages(Config{}))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRequest_StructuredMessages(t *testing.T) {
	req := newTestRequest()

	t.Run("no system message by default", func(t *testing.T) {
		messages := req.StructuredMessages(Config{})
		require.Len(t, messages, 1)

		msg := messages[0]
		assert.Equal(t, common.RoleUser, msg.Role)
		require.True(t, msg.IsStructured())
		assert.Equal(t, []common.ContentPart{{
			Type:           "text",
			SourceLangCode: "pl",
			TargetLangCode: "en",
			Text:           "To jest test.",
		}}, msg.Parts)

		data, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"user","content":[{"type":"text","source_lang_code":"pl","target_lang_code":"en","text":"To jest test."}]}`, string(data))
	})

	t.Run("configured system message comes first", func(t *testing.T) {
		messages := req.StructuredMessages(Config{SystemPrompt: "Translate to {target_name}."})
		require.Len(t, messages, 2)
		assert.Equal(t, common.RoleSystem, messages[0].Role)
		assert.Equal(t, "Translate to English.", messages[0].Content)
		assert.True(t, messages[1].IsStructured())
	})
}

func TestRequest_MessagesFor(t *testing.T) {
	req := newTestRequest()
	assert.Len(t, req.MessagesFor(common.ShapePlain, Config{}), 2)
	assert.Len(t, req.MessagesFor(common.ShapeStructured, Config{}), 1)
}

func TestNewResult(t *testing.T) {
	assert.Equal(t, "This is a test.", NewResult("  This is a test.\n").Text)
	assert.True(t, NewResult(" \n\t ").Empty())
	assert.False(t, NewResult("x").Empty())
}
