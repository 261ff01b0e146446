// Package seed holds the reference data persisted the first time each
// collection is read from an empty medium.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults is the seed for every collection that does not start empty
type Defaults struct {
	Municipalities []models.Municipality `yaml:"municipalities"`
	Modalities     []models.Modality     `yaml:"modalities"`
	AgeGroups      []models.AgeGroup     `yaml:"age_groups"`
	Schools        []models.School       `yaml:"schools"`
	Users          []models.User         `yaml:"users"`
}

// Parse decodes a seed document
func Parse(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &d, nil
}

// Load returns the embedded defaults
func Load() (*Defaults, error) {
	return Parse(defaultsYAML)
}

// MustLoad is Load for package initialisation paths; the embedded document is
// covered by tests so a failure here is a build defect.
func MustLoad() *Defaults {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Defaults) MunicipalitySeed() func() []models.Municipality {
	return func() []models.Municipality { return append([]models.Municipality(nil), d.Municipalities...) }
}

func (d *Defaults) ModalitySeed() func() []models.Modality {
	return func() []models.Modality { return append([]models.Modality(nil), d.Modalities...) }
}

func (d *Defaults) AgeGroupSeed() func() []models.AgeGroup {
	return func() []models.AgeGroup { return append([]models.AgeGroup(nil), d.AgeGroups...) }
}

func (d *Defaults) SchoolSeed() func() []models.School {
	return func() []models.School { return append([]models.School(nil), d.Schools...) }
}

func (d *Defaults) UserSeed() func() []models.User {
	return func() []models.User { return append([]models.User(nil), d.Users...) }
}
