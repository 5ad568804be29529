package core_test

import (
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

func TestPlanShotFindsPop(t *testing.T) {
	sink := &recordingSink{}
	m := newMachine(t, smallConfig(4, 6, 2), sink)
	loadLayout(t, m.Grid(),
		"AABB",
		"AABB",
	)
	m.Launcher().Load(1, 1)
	before := m.Grid().Layout()

	plan, ok := m.PlanShot(2, frame)
	if !ok {
		t.Fatal("PlanShot() found no shot")
	}
	if plan.Matches < 3 {
		t.Errorf("plan = %+v, want a popping shot", plan)
	}
	if !sameLayout(m.Grid().Layout(), before) {
		t.Errorf("PlanShot changed the grid: %q", m.Grid().Layout())
	}
	if m.State() != core.StateReady || m.Launcher().Aim() != 90 {
		t.Errorf("PlanShot changed the launcher: state %v aim %g", m.State(), m.Launcher().Aim())
	}

	m.SetAim(plan.Aim)
	m.Fire()
	runWhile(t, m, core.StateShoot)

	if m.State() != core.StateRemove {
		t.Fatalf("state after planned shot = %v, want Remove", m.State())
	}
	if len(sink.pops) != 1 || sink.pops[0].Kind != 1 || sink.pops[0].Count != plan.Matches {
		t.Errorf("pops = %+v, want one B pop of %d", sink.pops, plan.Matches)
	}
}

func TestPlanShotOnlyWhenReady(t *testing.T) {
	m := newMachine(t, core.DefaultConfig(), nil)
	m.Fire()

	if _, ok := m.PlanShot(2, frame); ok {
		t.Error("PlanShot() in Shoot = true, want false")
	}
}
