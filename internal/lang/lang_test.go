package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase code", input: "pl", want: "pl"},
		{name: "uppercase code", input: "EN", want: "en"},
		{name: "region with underscore", input: "pt_br", want: "pt-BR"},
		{name: "surrounding space", input: "  de ", want: "de"},
		{name: "auto", input: "AUTO", want: Auto},
		{name: "empty", input: " ", wantErr: true},
		{name: "ill-formed", input: "not a language!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Polish", DisplayName("pl"))
	assert.Equal(t, "English", DisplayName("en"))
	assert.Equal(t, "German", DisplayName("de"))
	assert.Equal(t, "not a language!", DisplayName("not a language!"))
}

func TestCommon(t *testing.T) {
	codes := Common()
	assert.Contains(t, codes, "en")
	assert.Contains(t, codes, "pl")

	for _, code := range codes {
		_, err := Normalize(code)
		assert.NoError(t, err, code)
	}

	codes[0] = "changed"
	assert.NotEqual(t, "changed", Common()[0])
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "empty text", text: "   ", wantOK: false},
		{name: "english", text: "Hello, this is a test in English.", want: "en", wantOK: true},
		{name: "german", text: "Hallo, das ist ein Test auf Deutsch.", want: "de", wantOK: true},
		{name: "ukrainian", text: "Привіт, це тест українською мовою.", want: "uk", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
