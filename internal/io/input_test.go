package io

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stdinFile returns a file whose content stands in for piped stdin
func stdinFile(t *testing.T, content string) *os.File {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadText(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		cliArgs  []string
		expected string
	}{
		{name: "CLI args only", cliArgs: []string{"Dzień", "dobry"}, expected: "Dzień dobry"},
		{name: "Empty CLI args", cliArgs: []string{}, expected: ""},
		{name: "Stdin only", stdin: "To jest test.\n", expected: "To jest test."},
		{name: "Stdin keeps inner newlines", stdin: "Pierwsza linia.\nDruga linia.\n\n", expected: "Pierwsza linia.\nDruga linia."},
		{name: "Stdin and args", stdin: "Z potoku.", cliArgs: []string{"Z", "argumentów."}, expected: "Z potoku.\n\nZ argumentów."},
		{name: "Whitespace-only stdin is ignored", stdin: " \n\t", cliArgs: []string{"arg"}, expected: "arg"},
		{name: "Leading whitespace is preserved", stdin: "  wcięcie", expected: "  wcięcie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ReadText(stdinFile(t, tt.stdin), tt.cliArgs)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestReadText_NilStdin(t *testing.T) {
	text, err := ReadText(nil, []string{"test", "args"})
	require.NoError(t, err)
	assert.Equal(t, "test args", text)
}

func TestReadText_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.WriteString("z potoku\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	text, err := ReadText(r, nil)
	require.NoError(t, err)
	assert.Equal(t, "z potoku", text)
}

func TestReadText_ClosedStdin(t *testing.T) {
	f := stdinFile(t, "x")
	require.NoError(t, f.Close())

	_, err := ReadText(f, nil)
	assert.ErrorContains(t, err, "failed to stat stdin")
}
