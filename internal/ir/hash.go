package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainVocabulary = "babel/vocabulary/v1"
	DomainProject    = "babel/project/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalWord converts a word to its canonical map form.
func CanonicalWord(w *Word) map[string]any {
	ancestors := make([]any, len(w.Ancestors))
	for i, c := range w.Ancestors {
		ancestors[i] = c.String()
	}
	return map[string]any{
		"surface":        w.Surface,
		"gloss":          w.Gloss,
		"part_of_speech": w.PartOfSpeech,
		"phonetic":       w.Phonetic,
		"mnemonic":       w.Mnemonic,
		"note":           w.Note,
		"ancestors":      ancestors,
	}
}

// CanonicalVocabulary converts a vocabulary to canonical form. Tombstones
// become {"deleted": true} so that slot positions stay visible.
func CanonicalVocabulary(vocab *Slots[Word]) []any {
	out := make([]any, vocab.Len())
	for i := range out {
		w := vocab.Slot(i)
		if w == nil {
			out[i] = map[string]any{"deleted": true}
			continue
		}
		out[i] = CanonicalWord(w)
	}
	return out
}

// MarshalVocabulary returns the canonical JSON encoding of a vocabulary.
func MarshalVocabulary(vocab *Slots[Word]) ([]byte, error) {
	data, err := MarshalCanonical(CanonicalVocabulary(vocab))
	if err != nil {
		return nil, fmt.Errorf("marshal vocabulary: %w", err)
	}
	return data, nil
}

// VocabularyDigest computes a content digest of a vocabulary. Two
// vocabularies digest equal iff their canonical encodings are byte-identical.
func VocabularyDigest(vocab *Slots[Word]) (string, error) {
	data, err := MarshalVocabulary(vocab)
	if err != nil {
		return "", fmt.Errorf("VocabularyDigest: %w", err)
	}
	return hashWithDomain(DomainVocabulary, data), nil
}

// ProjectDigest computes a digest over an already-serialized project body.
func ProjectDigest(body []byte) string {
	return hashWithDomain(DomainProject, body)
}
