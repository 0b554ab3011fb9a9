package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/askit/core"
)

// corpusFact is the JSON wire form of a corpus fact.
type corpusFact struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	Topic    string   `json:"topic"`
	Metadata struct {
		Subtopics []string  `json:"subtopics,omitempty"`
		Category  string    `json:"category,omitempty"`
		Priority  float64   `json:"priority,omitempty"`
		UpdatedAt time.Time `json:"updatedAt,omitempty"`
	} `json:"metadata"`
}

// loadCorpus reads a JSON corpus file into facts. Validation happens at
// index build, not here.
func loadCorpus(path string) ([]core.Fact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var wire []corpusFact
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	facts := make([]core.Fact, 0, len(wire))
	for _, f := range wire {
		facts = append(facts, core.Fact{
			Text:     f.Text,
			Keywords: f.Keywords,
			Topic:    f.Topic,
			Metadata: core.FactMetadata{
				Subtopics: f.Metadata.Subtopics,
				Category:  f.Metadata.Category,
				Priority:  f.Metadata.Priority,
				UpdatedAt: f.Metadata.UpdatedAt,
			},
		})
	}
	return facts, nil
}

// writeSampleCorpus writes the built-in sample corpus to path.
func writeSampleCorpus(path string) error {
	data, err := json.MarshalIndent(sampleCorpus(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func sampleCorpus() []corpusFact {
	mk := func(text, topic, category string, keywords []string, subtopics []string) corpusFact {
		f := corpusFact{Text: text, Keywords: keywords, Topic: topic}
		f.Metadata.Category = category
		f.Metadata.Subtopics = subtopics
		return f
	}

	return []corpusFact{
		mk("Quantum computers use qubits to perform calculations that classical machines cannot.",
			"quantum", "science", []string{"quantum", "qubit", "computing"}, []string{"hardware"}),
		mk("Entanglement links the states of two particles regardless of distance.",
			"quantum", "science", []string{"entanglement", "quantum", "particle"}, []string{"theory"}),
		mk("Superposition lets a qubit hold many states at once until measured.",
			"quantum", "science", []string{"superposition", "qubit"}, []string{"theory"}),
		mk("Classical computers process information as binary bits, zeros and ones.",
			"computing", "technology", []string{"classical", "binary", "computing"}, nil),
		mk("Machine learning systems improve by finding patterns in training data.",
			"computing", "technology", []string{"machine", "learning", "ai"}, []string{"software"}),
		mk("Photosynthesis converts sunlight, water, and carbon dioxide into chemical energy.",
			"biology", "science", []string{"photosynthesis", "energy", "plants"}, nil),
		mk("Mitochondria are the organelles that produce most of a cell's energy.",
			"biology", "science", []string{"mitochondria", "cell", "energy"}, nil),
		mk("DNA stores the genetic instructions used in growth and reproduction.",
			"biology", "science", []string{"dna", "genetics"}, nil),
		mk("Stars fuse hydrogen into helium, releasing enormous amounts of energy.",
			"space", "science", []string{"stars", "fusion", "hydrogen"}, nil),
		mk("Black holes bend spacetime so strongly that light cannot escape them.",
			"space", "science", []string{"black", "hole", "gravity"}, nil),
		mk("The printing press spread literacy across Europe in the fifteenth century.",
			"history", "humanities", []string{"printing", "press", "literacy"}, nil),
		mk("The industrial revolution moved production from workshops to factories.",
			"history", "humanities", []string{"industrial", "revolution", "factories"}, nil),
	}
}
