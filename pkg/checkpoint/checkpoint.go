// Package checkpoint decides whether freshly fetched events differ enough
// from the previous run to justify recomputing the index.
package checkpoint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// CacheFileName is the checkpoint state file kept in the app home dir.
	CacheFileName = "checkpoint.json"

	// similarityThreshold above which two event sets are treated as the
	// same run even when their hashes differ.
	similarityThreshold = 0.9

	fileMode = 0600
)

// state is the persisted checkpoint record.
type state struct {
	LastDate string `json:"last_date,omitempty"`
	LastHash string `json:"last_hash,omitempty"`
	LastText string `json:"last_text,omitempty"`
}

// Checkpoint compares event text across runs using an exact hash and a
// cosine similarity fallback over term frequencies.
type Checkpoint struct {
	path  string
	state state
}

// New loads the checkpoint state from path, starting empty when the file
// does not exist.
func New(path string) (*Checkpoint, error) {
	if path == "" {
		return nil, errors.New("checkpoint path required")
	}

	c := &Checkpoint{path: path}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error reading checkpoint file: %s", path)
	}
	if err := json.Unmarshal(b, &c.state); err != nil {
		return nil, errors.Wrapf(err, "error parsing checkpoint file: %s", path)
	}
	return c, nil
}

// MeaningfulChange reports whether the titles differ meaningfully from the
// previous run and, when they do, persists them as the new reference.
func (c *Checkpoint) MeaningfulChange(titles []string) (bool, error) {
	text := strings.Join(titles, " ")
	hash := hashText(strings.ToLower(text))

	if c.state.LastHash == hash {
		log.Debug("no meaningful change, identical hash")
		return false, nil
	}

	if c.state.LastText != "" {
		sim := cosineSimilarity(c.state.LastText, text)
		log.Debugf("similarity to last run: %.3f", sim)
		if sim > similarityThreshold {
			return false, nil
		}
	}

	c.state = state{
		LastDate: time.Now().UTC().Format("2006-01-02"),
		LastHash: hash,
		LastText: text,
	}
	if err := c.save(); err != nil {
		return true, err
	}
	return true, nil
}

func (c *Checkpoint) save() error {
	b, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling checkpoint state")
	}
	if err := os.WriteFile(c.path, b, fileMode); err != nil {
		return errors.Wrapf(err, "error writing checkpoint file: %s", c.path)
	}
	return nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// cosineSimilarity computes the cosine of term-frequency vectors built
// from lowercase whitespace tokens.
func cosineSimilarity(a, b string) float64 {
	fa := termFreq(a)
	fb := termFreq(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	var dot, na, nb float64
	for term, ca := range fa {
		na += ca * ca
		if cb, ok := fb[term]; ok {
			dot += ca * cb
		}
	}
	for _, cb := range fb {
		nb += cb * cb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func termFreq(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if tok == "" {
			continue
		}
		freq[tok]++
	}
	return freq
}
