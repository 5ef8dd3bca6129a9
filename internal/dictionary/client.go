package dictionary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// Client looks up word data in the free dictionary API
// (dictionaryapi.dev) and fills in definitions, phonetics and examples.
type Client struct {
	apiURL      string
	httpClient  *http.Client
	maxSynonyms int
}

// New creates a new dictionary client. DICTIONARY_API_URL overrides
// the endpoint, which is mainly useful in tests.
func New() *Client {
	apiURL := os.Getenv("DICTIONARY_API_URL")
	if apiURL == "" {
		apiURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	}

	return &Client{
		apiURL:      apiURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		maxSynonyms: 5,
	}
}

// entry mirrors one element of the API response array
type entry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example"`
			Synonyms   []string `json:"synonyms"`
			Antonyms   []string `json:"antonyms"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
		Antonyms []string `json:"antonyms"`
	} `json:"meanings"`
}

// Enrich fills the word's dictionary fields from the first API entry.
// Fields that already have a value are left alone so a re-ingest does
// not overwrite earlier lookups.
func (c *Client) Enrich(word *models.Word) error {
	resp, err := c.httpClient.Get(c.apiURL + "/" + url.PathEscape(word.Text))
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("no dictionary entry for %q", word.Text)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("empty dictionary response for %q", word.Text)
	}

	c.apply(word, entries[0])
	return nil
}

func (c *Client) apply(word *models.Word, e entry) {
	if word.Phonetic == "" {
		word.Phonetic = e.Phonetic
	}
	var synonyms, antonyms []string
	for _, p := range e.Phonetics {
		if word.Phonetic == "" && p.Text != "" {
			word.Phonetic = p.Text
		}
		if word.AudioURL == "" && p.Audio != "" {
			word.AudioURL = p.Audio
		}
	}
	for _, m := range e.Meanings {
		if word.PartOfSpeech == "" {
			word.PartOfSpeech = m.PartOfSpeech
		}
		synonyms = append(synonyms, m.Synonyms...)
		antonyms = append(antonyms, m.Antonyms...)
		for _, d := range m.Definitions {
			if word.Definition == "" {
				word.Definition = d.Definition
			}
			if word.ExampleSentence == "" && d.Example != "" {
				word.ExampleSentence = d.Example
			}
			synonyms = append(synonyms, d.Synonyms...)
			antonyms = append(antonyms, d.Antonyms...)
		}
	}
	if word.Synonyms == "" {
		word.Synonyms = joinUnique(synonyms, c.maxSynonyms)
	}
	if word.Antonyms == "" {
		word.Antonyms = joinUnique(antonyms, c.maxSynonyms)
	}
}

// joinUnique deduplicates the values and joins at most limit of them.
func joinUnique(values []string, limit int) string {
	seen := make(map[string]struct{})
	var kept []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, v)
		if len(kept) == limit {
			break
		}
	}
	return strings.Join(kept, ", ")
}
