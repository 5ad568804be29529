package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

const frame = 1.0 / 60

func newMachine(t *testing.T, cfg core.Config, sink core.EventSink) *core.Machine {
	t.Helper()
	m, err := core.NewMachine(cfg, rand.New(rand.NewSource(7)), sink)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if m.State() != core.StateInit {
		t.Fatalf("new machine state = %v, want Init", m.State())
	}
	m.Advance(0)
	if m.State() != core.StateReady {
		t.Fatalf("state after first Advance = %v, want Ready", m.State())
	}
	return m
}

// runWhile advances the machine until it leaves state s.
func runWhile(t *testing.T, m *core.Machine, s core.State) {
	t.Helper()
	for i := 0; i < 10000 && m.State() == s; i++ {
		m.Advance(frame)
	}
	if m.State() == s {
		t.Fatalf("machine stuck in %v", s)
	}
}

func TestNewGameFillsTopHalf(t *testing.T) {
	m := newMachine(t, core.DefaultConfig(), nil)

	layout := m.Grid().Layout()
	for r, line := range layout {
		for _, ch := range line {
			if (ch != '.') != (r < 8) {
				t.Fatalf("row %d = %q after new game", r, line)
			}
		}
	}

	types := m.Grid().PresentTypes()
	for _, k := range []core.TileType{m.Launcher().Loaded(), m.Launcher().Next()} {
		found := false
		for _, p := range types {
			found = found || p == k
		}
		if !found {
			t.Errorf("launcher tile %v not among present types %v", k, types)
		}
	}
	if m.Score() != 0 || m.Round() != 0 {
		t.Errorf("score/round = %d/%d, want 0/0", m.Score(), m.Round())
	}
}

func TestInputGating(t *testing.T) {
	m := newMachine(t, core.DefaultConfig(), nil)

	if m.Restart() {
		t.Error("Restart() in Ready = true, want false")
	}
	if !m.Fire() {
		t.Fatal("Fire() in Ready = false, want true")
	}
	if m.State() != core.StateShoot {
		t.Fatalf("state after Fire = %v, want Shoot", m.State())
	}
	if m.Fire() {
		t.Error("Fire() in Shoot = true, want false")
	}
}

func TestPopScenario(t *testing.T) {
	sink := &recordingSink{}
	m := newMachine(t, smallConfig(4, 6, 2), sink)
	loadLayout(t, m.Grid(),
		"AABB",
		"AABB",
	)
	m.Launcher().Load(0, 1)
	m.SetAim(90)

	if !m.Fire() {
		t.Fatal("Fire() = false")
	}
	runWhile(t, m, core.StateShoot)

	if m.State() != core.StateRemove {
		t.Fatalf("state after landing = %v, want Remove", m.State())
	}
	if len(sink.pops) != 1 {
		t.Fatalf("pop events = %d, want 1", len(sink.pops))
	}
	if ev := sink.pops[0]; ev.Kind != 0 || ev.Count != 5 || ev.Score != 500 {
		t.Errorf("pop event = %+v, want kind 0, count 5, score 500", ev)
	}

	runWhile(t, m, core.StateRemove)

	if m.State() != core.StateReady {
		t.Fatalf("state after removal = %v, want Ready", m.State())
	}
	want := []string{
		"..BB",
		"..BB",
		"....",
		"....",
		"....",
		"....",
	}
	if got := m.Grid().Layout(); !sameLayout(got, want) {
		t.Errorf("Layout() after removal = %v, want %v", got, want)
	}
	if m.Launcher().Loaded() != 1 {
		t.Errorf("loaded tile = %v, want previous preview 1", m.Launcher().Loaded())
	}
	if m.Launcher().Next() != 1 {
		t.Errorf("next tile = %v, want 1 (only type left)", m.Launcher().Next())
	}
	if m.Elapsed() <= 0 {
		t.Error("Elapsed() did not advance")
	}
}

func TestClearingBoardEndsGame(t *testing.T) {
	sink := &recordingSink{}
	m := newMachine(t, smallConfig(4, 6, 2), sink)
	loadLayout(t, m.Grid(),
		"AAAA",
		"AAAA",
	)
	m.Launcher().Load(0, 0)
	m.SetAim(90)
	m.Fire()

	runWhile(t, m, core.StateShoot)
	runWhile(t, m, core.StateRemove)

	if m.State() != core.StateOver {
		t.Fatalf("state = %v, want Over", m.State())
	}
	if !m.Cleared() {
		t.Error("Cleared() = false, want true")
	}
	for r, line := range m.Grid().Layout()[:2] {
		if line != "...." {
			t.Errorf("row %d = %q, want empty", r, line)
		}
	}
	if len(sink.overs) != 1 || !sink.overs[0].Cleared || sink.overs[0].Score != 900 {
		t.Errorf("over events = %+v, want one cleared event with score 900", sink.overs)
	}
}

func TestReachingBottomEndsGame(t *testing.T) {
	sink := &recordingSink{}
	m := newMachine(t, smallConfig(4, 3, 2), sink)
	loadLayout(t, m.Grid(),
		"ABAB",
		"BABA",
	)
	m.Launcher().Load(0, 0)
	m.SetAim(90)
	m.Fire()

	runWhile(t, m, core.StateShoot)

	if m.State() != core.StateOver {
		t.Fatalf("state = %v, want Over", m.State())
	}
	if m.Cleared() {
		t.Error("Cleared() = true, want false")
	}
	if len(sink.overs) != 1 || sink.overs[0].Cleared {
		t.Errorf("over events = %+v, want one overflow event", sink.overs)
	}
	if len(sink.pops) != 0 {
		t.Errorf("pop events = %+v, want none", sink.pops)
	}

	// Input is ignored while over; Restart starts a fresh game.
	if m.Fire() {
		t.Error("Fire() in Over = true, want false")
	}
	if !m.Restart() {
		t.Fatal("Restart() in Over = false, want true")
	}
	if m.State() != core.StateInit {
		t.Fatalf("state after Restart = %v, want Init", m.State())
	}
	m.Advance(frame)
	if m.State() != core.StateReady {
		t.Errorf("state after restart tick = %v, want Ready", m.State())
	}
	if m.Score() != 0 {
		t.Errorf("Score() after restart = %d, want 0", m.Score())
	}
}

func TestShotIntoFullColumnKeepsBoard(t *testing.T) {
	sink := &recordingSink{}
	m := newMachine(t, smallConfig(4, 3, 2), sink)
	loadLayout(t, m.Grid(),
		"..A.",
		"..A.",
		"..B.",
	)
	m.Launcher().Load(0, 0)
	m.SetAim(90)
	m.Fire()

	runWhile(t, m, core.StateShoot)

	if m.State() != core.StateOver {
		t.Fatalf("state = %v, want Over", m.State())
	}
	want := []string{"..A.", "..A.", "..B."}
	if got := m.Grid().Layout(); !sameLayout(got, want) {
		t.Errorf("layout = %v, want %v unchanged", got, want)
	}
	if len(sink.overs) != 1 || sink.overs[0].Cleared {
		t.Errorf("over events = %+v, want one overflow event", sink.overs)
	}
}

func TestEscalationAddsRows(t *testing.T) {
	cfg := smallConfig(4, 8, 3)
	cfg.EscalationRounds = 1
	cfg.EscalationRows = 2
	m := newMachine(t, cfg, nil)
	loadLayout(t, m.Grid(),
		"ABAB",
		"BABA",
	)
	m.Launcher().Load(2, 2)
	m.SetAim(90)
	m.Fire()

	runWhile(t, m, core.StateShoot)

	if m.State() != core.StateReady {
		t.Fatalf("state = %v, want Ready", m.State())
	}
	layout := m.Grid().Layout()
	if layout[4] != "..C." {
		t.Errorf("row 4 = %q, want landed tile shifted down to ..C.", layout[4])
	}
	if layout[2] != "ABAB" || layout[3] != "BABA" {
		t.Errorf("rows 2-3 = %q %q, want original rows shifted down", layout[2], layout[3])
	}
	for r := 0; r < 2; r++ {
		if len(layout[r]) != 4 || containsDot(layout[r]) {
			t.Errorf("row %d = %q, want a full generated row", r, layout[r])
		}
	}
	if m.Round() != 0 {
		t.Errorf("Round() = %d, want 0 after escalation", m.Round())
	}
}

func TestMissWithoutEscalationCountsRound(t *testing.T) {
	cfg := smallConfig(4, 8, 3)
	cfg.EscalationRounds = 0
	m := newMachine(t, cfg, nil)
	loadLayout(t, m.Grid(), "ABAB", "BABA")
	m.Launcher().Load(2, 2)
	m.SetAim(90)
	m.Fire()

	runWhile(t, m, core.StateShoot)

	if m.Round() != 1 {
		t.Errorf("Round() = %d, want 1", m.Round())
	}
	if got := m.Grid().Layout()[2]; got != "..C." {
		t.Errorf("row 2 = %q, want ..C.", got)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() ([]string, int) {
		m, err := core.NewMachine(core.DefaultConfig(), rand.New(rand.NewSource(99)), nil)
		if err != nil {
			t.Fatalf("NewMachine: %v", err)
		}
		aims := []float64{60, 120, 90, 45, 135}
		for i := 0; i < 600; i++ {
			if m.State() == core.StateReady {
				m.SetAim(aims[i%len(aims)])
				m.Fire()
			}
			m.Advance(frame)
		}
		return m.Grid().Layout(), m.Score()
	}

	l1, s1 := run()
	l2, s2 := run()
	if !sameLayout(l1, l2) || s1 != s2 {
		t.Errorf("same seed produced different games: score %d vs %d", s1, s2)
	}
}

func TestSnapshot(t *testing.T) {
	m := newMachine(t, smallConfig(4, 6, 2), nil)
	loadLayout(t, m.Grid(), "AB..")
	m.Launcher().Load(1, 0)

	s := m.Snapshot()
	if s.State != core.StateReady {
		t.Errorf("Snapshot().State = %v, want Ready", s.State)
	}
	if len(s.Tiles) != 2 {
		t.Fatalf("Snapshot().Tiles = %d, want 2", len(s.Tiles))
	}
	if s.Tiles[1].Cell != core.C(0, 1) || s.Tiles[1].Kind != 1 {
		t.Errorf("second tile = %+v, want B at (0,1)", s.Tiles[1])
	}
	if s.Loaded != 1 || s.Next != 0 {
		t.Errorf("loaded/next = %v/%v, want 1/0", s.Loaded, s.Next)
	}
	if s.Aim != 90 {
		t.Errorf("Aim = %v, want 90", s.Aim)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    core.State
		want string
	}{
		{core.StateInit, "Init"},
		{core.StateReady, "Ready"},
		{core.StateShoot, "Shoot"},
		{core.StateRemove, "Remove"},
		{core.StateOver, "Over"},
		{core.State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func containsDot(s string) bool {
	for _, ch := range s {
		if ch == '.' {
			return true
		}
	}
	return false
}
