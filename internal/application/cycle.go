package application

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/domain"
)

// CycleDocument is the serialized form of one formation cycle: the pool,
// the candidate plans produced by a generator, and an optional appraiser
// config. JSON documents are accepted as well since JSON is valid YAML.
type CycleDocument struct {
	// Pool holds the votes, goals and advanced participants.
	Pool PoolDocument `yaml:"pool" json:"pool"`
	// Plans lists the candidates to score.
	Plans []domain.Plan `yaml:"plans" json:"plans" validate:"required,min=1,dive"`
	// Appraiser overrides the default objective set when present.
	Appraiser *AppraiserConfig `yaml:"appraiser,omitempty" json:"appraiser,omitempty" validate:"-"`
}

// PoolDocument is the serialized form of a domain.Pool.
type PoolDocument struct {
	Votes    []domain.Vote                `yaml:"votes" json:"votes"`
	Goals    []domain.Goal                `yaml:"goals" json:"goals" validate:"required,min=1"`
	Advanced []domain.AdvancedParticipant `yaml:"advanced,omitempty" json:"advanced,omitempty"`
}

// Cycle is a decoded and validated cycle document.
type Cycle struct {
	Pool      *domain.Pool
	Plans     []*domain.Plan
	Appraiser *AppraiserConfig
}

// cycleValidator checks document shape only. The appraiser section is
// validated by the config loader, which registers its custom tags.
var cycleValidator = validator.New()

// LoadCycleFile reads and decodes a cycle document from path.
func LoadCycleFile(path string) (*Cycle, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read cycle file: %w", err)
	}
	return ParseCycle(data)
}

// LoadCycle reads and decodes a cycle document from r.
func LoadCycle(r io.Reader) (*Cycle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read cycle: %w", err)
	}
	return ParseCycle(data)
}

// ParseCycle strictly decodes a cycle document and converts it into
// domain values. Plans without an id are labelled plan-1, plan-2 and so
// on by position.
func ParseCycle(data []byte) (*Cycle, error) {
	var doc CycleDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode cycle: %w", err)
	}
	return doc.Build()
}

// Build validates the document and converts it into a Cycle.
func (d *CycleDocument) Build() (*Cycle, error) {
	if err := cycleValidator.Struct(d); err != nil {
		return nil, fmt.Errorf("cycle validation failed: %w", err)
	}

	pool, err := domain.NewPool(d.Pool.Votes, d.Pool.Goals, d.Pool.Advanced)
	if err != nil {
		return nil, err
	}

	plans := make([]*domain.Plan, len(d.Plans))
	for i := range d.Plans {
		p := d.Plans[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("plan-%d", i+1)
		}
		plans[i] = &p
	}

	return &Cycle{Pool: pool, Plans: plans, Appraiser: d.Appraiser}, nil
}
