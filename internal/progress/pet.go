package progress

import (
	"errors"
	"fmt"

	"github.com/vytor/lumina/internal/models"
)

const (
	hungerPerSession = 5

	babyAfterXP  = 100
	teenAfterXP  = 500
	adultAfterXP = 1000
)

var petKinds = map[string]bool{"geometry": true, "organic": true, "mech": true, "void": true}

// ErrInvalidPetKind is returned by NewPet for an unknown kind.
var ErrInvalidPetKind = errors.New("unknown pet kind")

// NewPet hatches a fed and content egg.
func NewPet(profileID, name, kind string) (models.Pet, error) {
	if !petKinds[kind] {
		return models.Pet{}, fmt.Errorf("%w: %q", ErrInvalidPetKind, kind)
	}
	return models.Pet{
		ProfileID: profileID,
		Name:      name,
		Kind:      kind,
		Stage:     models.PetEgg,
		Hunger:    0,
		Happiness: 100,
	}, nil
}

// GrowPet feeds minutes of study to the pet. Stages advance one after the
// other, so a large enough session can move an egg straight to adult.
func GrowPet(p models.Pet, minutes int) models.Pet {
	p.XP += minutes
	p.Hunger = max(0, p.Hunger-hungerPerSession)
	if p.Stage == models.PetEgg && p.XP > babyAfterXP {
		p.Stage = models.PetBaby
	}
	if p.Stage == models.PetBaby && p.XP > teenAfterXP {
		p.Stage = models.PetTeen
	}
	if p.Stage == models.PetTeen && p.XP > adultAfterXP {
		p.Stage = models.PetAdult
	}
	return p
}
