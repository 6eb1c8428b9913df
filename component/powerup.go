package component

import "github.com/lixenwraith/oncoarena/tuning"

// PowerUpState is the run-wide record for one power-up id
type PowerUpState struct {
	Def   tuning.PowerUpDef
	Level int
}

// Maxed reports whether the power-up can no longer be offered
func (p *PowerUpState) Maxed() bool {
	return p.Level >= p.Def.MaxLevel
}

// PowerUpBook holds one record per id in tuning order
type PowerUpBook struct {
	States []PowerUpState
}

func NewPowerUpBook(defs []tuning.PowerUpDef) *PowerUpBook {
	b := &PowerUpBook{States: make([]PowerUpState, len(defs))}
	for i, d := range defs {
		b.States[i] = PowerUpState{Def: d}
	}
	return b
}

// Get returns the record for id
func (b *PowerUpBook) Get(id tuning.PowerUpID) *PowerUpState {
	for i := range b.States {
		if b.States[i].Def.ID == id {
			return &b.States[i]
		}
	}
	return nil
}

// Eligible lists ids not yet at max level, in tuning order
func (b *PowerUpBook) Eligible() []tuning.PowerUpID {
	out := make([]tuning.PowerUpID, 0, len(b.States))
	for i := range b.States {
		if !b.States[i].Maxed() {
			out = append(out, b.States[i].Def.ID)
		}
	}
	return out
}

// Owned lists ids with level > 0
func (b *PowerUpBook) Owned() []tuning.PowerUpID {
	var out []tuning.PowerUpID
	for i := range b.States {
		if b.States[i].Level > 0 {
			out = append(out, b.States[i].Def.ID)
		}
	}
	return out
}
