package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("next")
	assert.Equal(t, "next", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("DAMAGE 1 5")
	assert.Equal(t, "damage", result.Command)
	assert.Equal(t, []string{"1", "5"}, result.Args)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  c   1,2   stu   2r  ")
	assert.Equal(t, "c", result.Command)
	assert.Equal(t, []string{"1,2", "stu", "2r"}, result.Args)
	assert.Equal(t, "1,2   stu   2r", result.RawArgs)
}

func TestParse_Comment(t *testing.T) {
	result := Parse("damage 2 7 # longsword")
	assert.Equal(t, "damage", result.Command)
	assert.Equal(t, []string{"2", "7"}, result.Args)
	assert.Equal(t, "2 7", result.RawArgs)

	assert.Equal(t, ParseResult{}, Parse("# just a note"))
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseArgsMatchFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9,]{1,6}`), 1, 5).Draw(t, "words")
		sep := rapid.SampledFrom([]string{" ", "  ", "\t"}).Draw(t, "sep")
		line := words[0]
		for _, w := range words[1:] {
			line += sep + w
		}
		result := Parse(line)
		if result.Command != words[0] {
			t.Fatalf("command = %q, want %q", result.Command, words[0])
		}
		if len(result.Args) != len(words)-1 {
			t.Fatalf("got %d args, want %d", len(result.Args), len(words)-1)
		}
	})
}
