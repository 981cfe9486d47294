package game

import (
	"testing"
	"time"
)

func TestSpikeDamagesOnEntryAndPerInterval(t *testing.T) {
	params := DefaultParams()
	w := BuildLevel(params)
	player := w.Find(TagPlayer)
	spike := w.Find(TagSpike)

	player.Body.Teleport(spike.Body.Position())
	player.Body.Halt()

	// Entry tick lands immediately.
	w.Step()
	probe := player.Health.Probe()
	if got := probe.Health(); got != params.PlayerHealth-params.SpikeDamage {
		t.Fatalf("health after entry = %d, want %d", got, params.PlayerHealth-params.SpikeDamage)
	}

	// One full interval inside the hazard lands exactly one more tick.
	w.StepFor(params.DamageInterval)
	if got := probe.Health(); got != params.PlayerHealth-2*params.SpikeDamage {
		t.Fatalf("health after one interval = %d, want %d", got, params.PlayerHealth-2*params.SpikeDamage)
	}
}

func TestSpikeStopsDamagingAfterExit(t *testing.T) {
	params := DefaultParams()
	w := BuildLevel(params)
	player := w.Find(TagPlayer)
	spike := w.Find(TagSpike)

	player.Body.Teleport(spike.Body.Position())
	player.Body.Halt()
	w.Step()
	afterEntry := player.Health.Probe().Health()

	player.Body.Teleport(Vec2{X: 2, Y: 0})
	w.StepFor(2 * params.DamageInterval)

	if got := player.Health.Probe().Health(); got != afterEntry {
		t.Fatalf("health changed after leaving the hazard: %d -> %d", afterEntry, got)
	}
}

func TestSpikeKillsAtZeroHealth(t *testing.T) {
	params := DefaultParams()
	params.PlayerHealth = 30
	w := BuildLevel(params)
	player := w.Find(TagPlayer)
	spike := w.Find(TagSpike)

	player.Body.Teleport(spike.Body.Position())
	player.Body.Halt()
	w.StepFor(3 * params.DamageInterval)

	probe := player.Health.Probe()
	if probe.Health() != 0 {
		t.Fatalf("health = %d, want 0", probe.Health())
	}
	if player.Health.Alive() {
		t.Fatal("player should be dead at zero health")
	}

	// A dead player takes no further damage and stays dead.
	w.StepFor(params.DamageInterval)
	if probe.Health() != 0 || player.Health.Alive() {
		t.Fatal("death state changed after further hazard time")
	}
}

func TestHealthProbeSetAndRevive(t *testing.T) {
	h := NewHealth(100)
	probe := h.Probe()

	probe.SetHealth(250)
	if probe.Health() != 100 {
		t.Fatalf("SetHealth above max = %d, want clamp to 100", probe.Health())
	}
	probe.SetHealth(-5)
	if probe.Health() != 0 {
		t.Fatalf("SetHealth below zero = %d, want clamp to 0", probe.Health())
	}

	h.Damage(200)
	if h.Alive() {
		t.Fatal("expected death after overkill damage")
	}
	probe.Revive()
	if !h.Alive() || probe.Health() != probe.MaxHealth() {
		t.Fatalf("revive left health=%d alive=%v", probe.Health(), h.Alive())
	}
}

func TestDamageIntervalCoversSlowTicks(t *testing.T) {
	params := DefaultParams()
	params.DamageInterval = 100 * time.Millisecond
	w := BuildLevel(params)
	player := w.Find(TagPlayer)
	spike := w.Find(TagSpike)

	player.Body.Teleport(spike.Body.Position())
	player.Body.Halt()
	w.Step()
	w.StepFor(params.DamageInterval)

	// Entry tick plus one interval tick.
	want := params.PlayerHealth - 2*params.SpikeDamage
	if got := player.Health.Probe().Health(); got != want {
		t.Fatalf("health = %d, want %d", got, want)
	}
}
