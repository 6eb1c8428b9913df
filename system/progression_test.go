package system

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/tuning"
)

func TestXPToNext(t *testing.T) {
	xp := tuning.Default().XP
	tests := []struct {
		level int
		want  int
	}{
		{0, 10},
		{1, 10},
		{2, 12},
		{3, 15},
		{4, 19},
		{5, 24},
	}
	for _, tt := range tests {
		if got := XPToNext(xp, tt.level); got != tt.want {
			t.Errorf("Level %d: expected %d, got %d", tt.level, tt.want, got)
		}
	}
}

func TestProgressionLevelsThroughSurplus(t *testing.T) {
	w := newTestWorld(t)
	s := NewProgressionSystem(w)
	stats := w.Resources.Stats
	stats.XP = 25

	s.Update()

	if stats.Level != 3 || stats.XP != 3 || stats.XPToNext != 15 {
		t.Errorf("Expected level 3 with 3/15 xp, got level %d with %d/%d", stats.Level, stats.XP, stats.XPToNext)
	}
	if s.Pending() != 2 {
		t.Errorf("Expected 2 pending choices, got %d", s.Pending())
	}
	if !w.Resources.Game.Holds(event.PauseLevelUp) {
		t.Error("Expected the world frozen for the level-up choice")
	}
	events := drainEvents(w)
	if n := countEvents(events, event.EventLevelUp); n != 2 {
		t.Errorf("Expected 2 level-up events, got %d", n)
	}
	if n := countEvents(events, event.EventMusicVariation); n != 1 {
		t.Errorf("Expected a music variation at level 3, got %d", n)
	}
}

func TestOfferHasDistinctEligibleChoices(t *testing.T) {
	w := newTestWorld(t)
	s := NewProgressionSystem(w)
	w.Resources.Stats.XP = 10
	s.Update()

	offer := s.Offer()
	if len(offer) != 3 {
		t.Fatalf("Expected 3 choices, got %v", offer)
	}
	seen := make(map[tuning.PowerUpID]bool)
	for _, id := range offer {
		if seen[id] {
			t.Errorf("Expected distinct choices, got %v", offer)
		}
		seen[id] = true
		if w.Resources.PowerUps.Get(id) == nil {
			t.Errorf("Expected a known power-up, got %q", id)
		}
	}
}

func TestOfferSkipsMaxedPowerUps(t *testing.T) {
	w := newTestWorld(t)
	book := w.Resources.PowerUps
	for i := range book.States {
		book.States[i].Level = book.States[i].Def.MaxLevel
	}
	book.Get(tuning.PowerDamage).Level = 0
	s := NewProgressionSystem(w)
	w.Resources.Stats.XP = 10
	s.Update()

	offer := s.Offer()
	if len(offer) != 1 || offer[0] != tuning.PowerDamage {
		t.Errorf("Expected only damage offered, got %v", offer)
	}
}

func TestNothingToOfferResolvesImmediately(t *testing.T) {
	w := newTestWorld(t)
	book := w.Resources.PowerUps
	for i := range book.States {
		book.States[i].Level = book.States[i].Def.MaxLevel
	}
	s := NewProgressionSystem(w)
	w.Resources.Stats.XP = 10
	s.Update()

	if w.Resources.Game.Frozen() {
		t.Error("Expected the world to keep running with nothing to offer")
	}
	if s.Pending() != 0 || s.Offer() != nil {
		t.Errorf("Expected no pending choice, got %d pending and offer %v", s.Pending(), s.Offer())
	}
}

func TestSelectErrors(t *testing.T) {
	w := newTestWorld(t)
	s := NewProgressionSystem(w)

	if err := s.Select(tuning.PowerDamage); !errors.Is(err, ErrNoOffer) {
		t.Errorf("Expected ErrNoOffer, got %v", err)
	}

	w.Resources.Stats.XP = 10
	s.Update()
	offered := s.Offer()
	var outside tuning.PowerUpID
	for _, st := range w.Resources.PowerUps.States {
		found := false
		for _, id := range offered {
			if id == st.Def.ID {
				found = true
			}
		}
		if !found {
			outside = st.Def.ID
			break
		}
	}
	if err := s.Select(outside); !errors.Is(err, ErrNotOffered) {
		t.Errorf("Expected ErrNotOffered, got %v", err)
	}
	if !w.Resources.Game.Holds(event.PauseLevelUp) {
		t.Error("Expected the offer to stay open after a rejected choice")
	}
}

func TestSelectAppliesAndResumes(t *testing.T) {
	w := newTestWorld(t)
	book := w.Resources.PowerUps
	for i := range book.States {
		book.States[i].Level = book.States[i].Def.MaxLevel
	}
	book.Get(tuning.PowerMaxHP).Level = 0
	s := NewProgressionSystem(w)
	w.Resources.Stats.XP = 10
	s.Update()

	if err := s.Select(tuning.PowerMaxHP); err != nil {
		t.Fatalf("Expected selection to succeed, got %v", err)
	}
	p, _ := testPlayer(w)
	if p.MaxHP != 120 || p.HP != 120 {
		t.Errorf("Expected 120/120 hp, got %v/%v", p.HP, p.MaxHP)
	}
	if book.Get(tuning.PowerMaxHP).Level != 1 {
		t.Errorf("Expected vitality level 1, got %d", book.Get(tuning.PowerMaxHP).Level)
	}
	if w.Resources.Game.Frozen() {
		t.Error("Expected the world resumed after the last choice")
	}
	if w.Resources.Stats.PowerUpsSelected != 1 {
		t.Errorf("Expected 1 selection counted, got %d", w.Resources.Stats.PowerUpsSelected)
	}
	if err := s.Select(tuning.PowerMaxHP); !errors.Is(err, ErrNoOffer) {
		t.Errorf("Expected ErrNoOffer after resolving, got %v", err)
	}
}

func TestQueuedLevelsStayFrozen(t *testing.T) {
	w := newTestWorld(t)
	s := NewProgressionSystem(w)
	w.Resources.Stats.XP = 25
	s.Update()

	if err := s.Select(s.Offer()[0]); err != nil {
		t.Fatalf("Expected first selection to succeed, got %v", err)
	}
	if !w.Resources.Game.Frozen() || s.Offer() == nil {
		t.Fatal("Expected a second offer for the queued level")
	}
	if err := s.Select(s.Offer()[0]); err != nil {
		t.Fatalf("Expected second selection to succeed, got %v", err)
	}
	if w.Resources.Game.Frozen() {
		t.Error("Expected the world resumed after both choices")
	}
}

func TestBossRequestedEveryFifthLevel(t *testing.T) {
	w := newTestWorld(t)
	s := NewProgressionSystem(w)
	stats := w.Resources.Stats
	stats.Level = 4
	stats.XPToNext = XPToNext(w.Resources.Tuning.XP, 4)
	stats.XP = stats.XPToNext
	s.Update()
	drainEvents(w)

	if err := s.Select(s.Offer()[0]); err != nil {
		t.Fatalf("Expected selection to succeed, got %v", err)
	}
	var req *event.BossSpawnRequestPayload
	for _, ev := range drainEvents(w) {
		if ev.Type == event.EventBossSpawnRequest {
			req = ev.Payload.(*event.BossSpawnRequestPayload)
		}
	}
	if req == nil {
		t.Fatal("Expected a boss spawn request at level 5")
	}
	if req.Index != 0 {
		t.Errorf("Expected boss index 0, got %d", req.Index)
	}
}

func TestApplyPowerUp(t *testing.T) {
	defs := make(map[tuning.PowerUpID]tuning.PowerUpDef)
	for _, d := range tuning.Default().PowerUps {
		defs[d.ID] = d
	}
	newPlayer := func() *component.PlayerComponent {
		return &component.PlayerComponent{HP: 80, MaxHP: 100, BaseProjectiles: 4, BaseInterval: time.Second}
	}

	tests := []struct {
		id    tuning.PowerUpID
		level int
		check func(p *component.PlayerComponent) bool
	}{
		{tuning.PowerShield, 1, func(p *component.PlayerComponent) bool {
			return p.Shield.Level == 1 && p.Shield.Capacity == p.Shield.MaxCapacity && p.Shield.Capacity > 0
		}},
		{tuning.PowerMaxHP, 1, func(p *component.PlayerComponent) bool { return p.MaxHP == 120 && p.HP == 100 }},
		{tuning.PowerProjectileCount, 1, func(p *component.PlayerComponent) bool { return p.ProjectileCount() == 5 }},
		{tuning.PowerAttackSpeed, 1, func(p *component.PlayerComponent) bool { return p.FireInterval() == 900*time.Millisecond }},
		{tuning.PowerRadiotherapy, 1, func(p *component.PlayerComponent) bool { return p.Radiotherapy == 1 && p.RayTimer > 0 }},
		{tuning.PowerLightning, 2, func(p *component.PlayerComponent) bool { return p.Lightning == 2 && p.LightningTimer == 0 }},
		{tuning.PowerPiercing, 3, func(p *component.PlayerComponent) bool { return p.Piercing == 3 }},
		{tuning.PowerRange, 1, func(p *component.PlayerComponent) bool { return p.RangeBonus > 0 }},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p := newPlayer()
			ApplyPowerUp(p, defs[tt.id], tt.level)
			if !tt.check(p) {
				t.Errorf("Unexpected player after %s level %d: %+v", tt.id, tt.level, p)
			}
		})
	}
}
