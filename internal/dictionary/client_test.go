package dictionary

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/wordflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEntry = `[{
	"word": "whisper",
	"phonetic": "/ˈwɪspə/",
	"phonetics": [{"text": "/ˈwɪspə/", "audio": "https://example.org/whisper.mp3"}],
	"meanings": [{
		"partOfSpeech": "verb",
		"definitions": [{
			"definition": "To speak softly.",
			"example": "He whispered the answer.",
			"synonyms": ["murmur"],
			"antonyms": ["shout"]
		}],
		"synonyms": ["murmur", "mutter"],
		"antonyms": []
	}]
}]`

func testServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c := New()
	c.apiURL = srv.URL
	return c
}

func TestEnrichFillsDictionaryFields(t *testing.T) {
	c := testServer(t, http.StatusOK, sampleEntry)

	word := &models.Word{Text: "whisper"}
	require.NoError(t, c.Enrich(word))

	assert.Equal(t, "To speak softly.", word.Definition)
	assert.Equal(t, "verb", word.PartOfSpeech)
	assert.Equal(t, "/ˈwɪspə/", word.Phonetic)
	assert.Equal(t, "https://example.org/whisper.mp3", word.AudioURL)
	assert.Equal(t, "He whispered the answer.", word.ExampleSentence)
	assert.Equal(t, "murmur, mutter", word.Synonyms)
	assert.Equal(t, "shout", word.Antonyms)
}

func TestEnrichKeepsExistingValues(t *testing.T) {
	c := testServer(t, http.StatusOK, sampleEntry)

	word := &models.Word{Text: "whisper", Definition: "kept", Synonyms: "kept"}
	require.NoError(t, c.Enrich(word))

	assert.Equal(t, "kept", word.Definition)
	assert.Equal(t, "kept", word.Synonyms)
	assert.Equal(t, "verb", word.PartOfSpeech)
}

func TestEnrichUnknownWord(t *testing.T) {
	c := testServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	err := c.Enrich(&models.Word{Text: "zzxqy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dictionary entry")
}
