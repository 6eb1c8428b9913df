package system

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

func TestScaleArchetype(t *testing.T) {
	tt := tuning.Default()
	green, _ := tt.Archetype("green")

	base := ScaleArchetype(tt, green, 1, false)
	if base.HP != 45 || base.Damage != 15 || base.Speed != 30 || base.XP != 3 {
		t.Errorf("Expected level 1 template stats, got %+v", base)
	}

	scaled := ScaleArchetype(tt, green, 11, false)
	// difficulty 2.0 at level 11
	if scaled.HP != 90 || scaled.Damage != 30 || scaled.Speed != 60 || scaled.XP != 9 {
		t.Errorf("Expected doubled stats and xp 9, got %+v", scaled)
	}

	elite := ScaleArchetype(tt, green, 11, true)
	if elite.HP <= scaled.HP || elite.Damage <= scaled.Damage {
		t.Errorf("Expected elite hp and damage above %v/%v, got %v/%v", scaled.HP, scaled.Damage, elite.HP, elite.Damage)
	}
	if elite.HP != elite.MaxHP || elite.HP != math.Floor(elite.HP) {
		t.Errorf("Expected whole full hp, got %v/%v", elite.HP, elite.MaxHP)
	}
	if elite.Speed != scaled.Speed {
		t.Errorf("Expected elite speed unchanged at %v, got %v", scaled.Speed, elite.Speed)
	}
	// xp 3 * (1 + 10*0.2) * 3
	if elite.XP != 27 {
		t.Errorf("Expected xp 27, got %d", elite.XP)
	}
	if !near(elite.Size, 32.5, 1e-9) {
		t.Errorf("Expected size 32.5, got %v", elite.Size)
	}
	if elite.Tag() != "elite:green" {
		t.Errorf("Expected tag elite:green, got %q", elite.Tag())
	}

	purple, _ := tt.Archetype("purple")
	sup := ScaleArchetype(tt, purple, 6, false)
	if sup.Support == nil || sup.Support.Radius != 80 {
		t.Errorf("Expected support traits carried over, got %+v", sup.Support)
	}
}

func TestScaleBoss(t *testing.T) {
	def := tuning.Default().Bosses[0]
	tests := []struct {
		level    int
		fraction float64
		hp       float64
		damage   float64
		xp       int
	}{
		{0, 1, 160, 15, 25},
		{1, 1, 192, 16, 32},
		{2, 0.8, 184, 18, 42},
	}
	for _, tt := range tests {
		b := ScaleBoss(def, 0, tt.level, tt.fraction)
		if b.HP != tt.hp || b.MaxHP != tt.hp {
			t.Errorf("Level %d: expected hp %v, got %v", tt.level, tt.hp, b.HP)
		}
		if b.Damage != tt.damage {
			t.Errorf("Level %d: expected damage %v, got %v", tt.level, tt.damage, b.Damage)
		}
		if b.XP != tt.xp {
			t.Errorf("Level %d: expected xp %d, got %d", tt.level, tt.xp, b.XP)
		}
		if b.Boss.Phase != event.BossEntering || b.Boss.PhaseTimer != 2*time.Second {
			t.Errorf("Level %d: expected a 2s entrance, got %v for %v", tt.level, b.Boss.Phase, b.Boss.PhaseTimer)
		}
	}
}

func TestSpawnInterval(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)

	if iv := s.Interval(); iv != 3*time.Second {
		t.Errorf("Expected 3s at start, got %v", iv)
	}
	s.waveTime = 100 * time.Second
	if iv := s.Interval(); iv != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s after 100s, got %v", iv)
	}
	s.waveTime = time.Hour
	if iv := s.Interval(); iv != 600*time.Millisecond {
		t.Errorf("Expected the 600ms floor, got %v", iv)
	}
}

func TestSpawnIntervalHeldDuringBossFight(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	s.SpawnBoss(0)

	for i := 0; i < 10; i++ {
		setDelta(w, 10*time.Second)
		s.Update()
	}
	if iv := s.Interval(); iv != 3*time.Second {
		t.Errorf("Expected 3s after a 100s boss fight, got %v", iv)
	}

	s.Init()
	setDelta(w, 100*time.Second)
	s.Update()
	if iv := s.Interval(); iv != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s after 100s of waves, got %v", iv)
	}
}

func TestEliteMinLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 0},
		{3, 20},
		{10, 20},
	}
	for _, tt := range tests {
		w := newTestWorld(t)
		w.Resources.Tuning.Elite.BaseChance = 1
		w.Resources.Stats.Level = tt.level
		s := NewSpawnSystem(w)

		for i := 0; i < 20; i++ {
			s.spawnWave()
		}

		elites := 0
		for _, e := range w.Components.Enemy.GetAllEntities() {
			if enemy, _ := w.Components.Enemy.Get(e); enemy.Elite {
				elites++
			}
		}
		if n := w.Components.Enemy.Count(); n != 20 {
			t.Fatalf("Level %d: expected 20 spawns, got %d", tt.level, n)
		}
		if elites != tt.want {
			t.Errorf("Level %d: expected %d elites, got %d", tt.level, tt.want, elites)
		}
	}
}

func TestSpawnCap(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	tests := []struct {
		level int
		want  int
	}{
		{1, 22},
		{10, 40},
		{15, 50},
		{40, 50},
	}
	for _, tt := range tests {
		w.Resources.Stats.Level = tt.level
		if got := s.Cap(); got != tt.want {
			t.Errorf("Level %d: expected cap %d, got %d", tt.level, tt.want, got)
		}
	}
}

func TestWaveSpawnsOutsideArena(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	w.Resources.Stats.Level = 1

	setDelta(w, 3*time.Second)
	s.Update()

	enemies := w.Components.Enemy.GetAllEntities()
	if len(enemies) != 1 {
		t.Fatalf("Expected 1 enemy, got %d", len(enemies))
	}
	enemy, _ := w.Components.Enemy.Get(enemies[0])
	if enemy.Archetype != "red" {
		t.Errorf("Expected only red unlocked at level 1, got %q", enemy.Archetype)
	}
	b, _ := w.Components.Body.Get(enemies[0])
	if w.Resources.Arena.Contains(b.Pos, 0) {
		t.Errorf("Expected spawn outside the arena, got %v", b.Pos)
	}
	if b.Radius != enemy.Size/2 {
		t.Errorf("Expected radius %v, got %v", enemy.Size/2, b.Radius)
	}
}

func TestWaveRespectsCap(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	w.Resources.Stats.Level = 1
	for i := 0; i < s.Cap(); i++ {
		addTestEnemy(w, vmath.V2(10, 10), 5)
	}

	setDelta(w, 3*time.Second)
	s.Update()

	if n := w.Components.Enemy.Count(); n != s.Cap() {
		t.Errorf("Expected population held at %d, got %d", s.Cap(), n)
	}
}

func TestBossRequestWhileSlotHeld(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)

	first := s.SpawnBoss(0)
	if first == 0 || !s.BossActive() {
		t.Fatal("Expected the first boss to take the slot")
	}
	if second := s.SpawnBoss(1); second != 0 {
		t.Errorf("Expected a no-op while the slot is held, got entity %d", second)
	}
	if n := w.Components.Enemy.Count(); n != 1 {
		t.Errorf("Expected 1 boss, got %d enemies", n)
	}
}

func TestBossIndexClamped(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	e := s.SpawnBoss(42)
	enemy, _ := w.Components.Enemy.Get(e)
	if enemy.Boss.Name != "Final Tumor" {
		t.Errorf("Expected the last roster entry, got %q", enemy.Boss.Name)
	}
}

func TestBossSpawnsFarFromPlayer(t *testing.T) {
	w := newTestWorld(t)
	_, b := testPlayer(w)
	b.Pos = vmath.V2(100, 100)
	s := NewSpawnSystem(w)

	e := s.SpawnBoss(0)
	body, _ := w.Components.Body.Get(e)
	if body.Pos != vmath.V2(1230, 670) {
		t.Errorf("Expected the far corner, got %v", body.Pos)
	}
}

func TestWavesSuspendedDuringBossFight(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	w.Resources.Stats.Level = 5
	boss := s.SpawnBoss(0)

	setDelta(w, 10*time.Second)
	s.Update()
	if n := w.Components.Enemy.Count(); n != 1 {
		t.Fatalf("Expected no wave during the boss fight, got %d enemies", n)
	}

	enemy, _ := w.Components.Enemy.Get(boss)
	enemy.Dead = true
	s.HandleEvent(event.GameEvent{Type: event.EventEnemyDied, Payload: &event.EnemyDiedPayload{Entity: boss, Boss: true}})
	if s.BossActive() {
		t.Fatal("Expected the slot released")
	}
	if !slices.Equal(s.Defeated(), []int{0}) {
		t.Errorf("Expected boss 0 recorded as defeated, got %v", s.Defeated())
	}

	w.DestroyEntity(boss)
	s.Update()
	if n := w.Components.Enemy.Count(); n != 1 {
		t.Errorf("Expected waves resumed, got %d enemies", n)
	}
}

func TestBossRequestAfterGameOver(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpawnSystem(w)
	w.Resources.Game.Pause(event.PauseGameOver)
	if e := s.SpawnBoss(0); e != 0 {
		t.Errorf("Expected no boss after game over, got %d", e)
	}
}

func TestRevivedBossOutsideSlot(t *testing.T) {
	w := newTestWorld(t)
	w.Resources.Stats.Level = 10
	s := NewSpawnSystem(w)
	s.defeated = []int{0}
	s.revive()

	if s.BossActive() {
		t.Error("Expected a revived boss not to take the slot")
	}
	entities := w.Components.Enemy.GetAllEntities()
	if len(entities) != 1 {
		t.Fatalf("Expected 1 revived boss, got %d", len(entities))
	}
	enemy, _ := w.Components.Enemy.Get(entities[0])
	if !enemy.Boss.Revived || enemy.Boss.Level != 2 {
		t.Errorf("Expected revived level 2 boss, got revived=%v level=%d", enemy.Boss.Revived, enemy.Boss.Level)
	}
	// 160 * 0.8 * 1.2^2
	if enemy.HP != 184 {
		t.Errorf("Expected 184 hp, got %v", enemy.HP)
	}
}
