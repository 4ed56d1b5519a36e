package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestSim() *Simulation {
	return NewSimulation(config.DefaultFlappyConfig(), fixedRand(0))
}

func TestSimulationInitialState(t *testing.T) {
	s := newTestSim()

	b := s.Body()
	if b.X != 45 || b.Y != 320 || b.VelocityY != 0 {
		t.Errorf("unexpected initial body: %+v", b)
	}
	if b.Width != 51 || b.Height != 36 {
		t.Errorf("unexpected body size: %vx%v", b.Width, b.Height)
	}

	run := s.Run()
	if run.Stage != 1 || run.VelocityX != -2 || run.Score != 0 || run.GameOver {
		t.Errorf("unexpected initial run: %+v", run)
	}
	if len(s.Obstacles()) != 0 {
		t.Errorf("expected no obstacles before the first tick")
	}
}

func TestSimulationGravity(t *testing.T) {
	s := newTestSim()

	s.Step()
	b := s.Body()
	if !approx(b.VelocityY, 0.4) || !approx(b.Y, 320.4) {
		t.Fatalf("after first tick: vy=%v y=%v", b.VelocityY, b.Y)
	}

	prev := b.VelocityY
	for i := 0; i < 20; i++ {
		s.Step()
		vy := s.Body().VelocityY
		if !approx(vy-prev, 0.4) {
			t.Fatalf("tick %d: velocity grew by %v", i, vy-prev)
		}
		prev = vy
	}
}

func TestSimulationFlap(t *testing.T) {
	s := newTestSim()
	s.Step()

	s.Flap()
	if s.Body().VelocityY != -8 {
		t.Fatalf("flap must set velocity immediately, got %v", s.Body().VelocityY)
	}
	s.Step()
	if !approx(s.Body().VelocityY, -7.6) {
		t.Errorf("expected -7.6 after flap and gravity, got %v", s.Body().VelocityY)
	}
}

func TestSimulationFirstTickSpawnsGate(t *testing.T) {
	s := newTestSim()
	s.Step()

	obs := s.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("expected one gate after first tick, got %d obstacles", len(obs))
	}
	if obs[0].X != 360 || !obs[0].IsTop || obs[1].IsTop {
		t.Errorf("unexpected gate: %+v", obs)
	}
}

func TestSimulationScoring(t *testing.T) {
	s := newTestSim()
	// Gate whose right edge lands at 44 after one tick, left of the body at 45.
	s.stream.items = []Obstacle{
		{X: -18, Y: -128, IsTop: true},
		{X: -18, Y: 597},
	}

	res := s.Step()
	if res.Passed != 2 || s.Run().Score != 1 {
		t.Fatalf("expected a full gate scored, passed=%d score=%v", res.Passed, s.Run().Score)
	}

	s.Step()
	if s.Run().Score != 1 {
		t.Errorf("gate scored twice, score=%v", s.Run().Score)
	}
}

func TestSimulationStages(t *testing.T) {
	s := newTestSim()

	s.run.Score = 20
	s.Step()
	if s.Run().Stage != 1 {
		t.Fatalf("score 20 must stay in stage 1")
	}

	s.run.Score = 20.5
	res := s.Step()
	if !res.StageChanged || s.Run().Stage != 2 || s.Run().VelocityX != -3 {
		t.Fatalf("expected stage 2 at speed 3, got %+v", s.Run())
	}

	s.Step()
	if s.Run().Stage != 2 {
		t.Errorf("stage must not advance without reaching the next threshold")
	}

	s.run.Score = 50.5
	s.Step()
	if s.Run().Stage != 3 || s.Run().VelocityX != -4 {
		t.Errorf("expected stage 3 at speed 4, got %+v", s.Run())
	}
}

func TestSimulationStageAdvancesOncePerTick(t *testing.T) {
	s := newTestSim()
	s.run.Score = 60

	s.Step()
	if s.Run().Stage != 2 {
		t.Fatalf("expected stage 2 after one tick, got %d", s.Run().Stage)
	}
	s.Step()
	if s.Run().Stage != 3 {
		t.Fatalf("expected stage 3 after two ticks, got %d", s.Run().Stage)
	}
	s.Step()
	if s.Run().Stage != 3 {
		t.Errorf("stage must cap at 3, got %d", s.Run().Stage)
	}
}

func TestSimulationCollisionHalfOpen(t *testing.T) {
	s := newTestSim()
	// Top half covering the body's rows, left edge at the body's right edge after one tick.
	s.stream.items = []Obstacle{{X: 98, Y: 0, IsTop: true}}

	res := s.Step()
	if res.Ended || s.Run().GameOver {
		t.Fatalf("edge contact must not collide: %+v", s.Run())
	}

	res = s.Step()
	if !res.Ended || res.Cause != EndCollision {
		t.Fatalf("expected collision, got %+v", res)
	}
}

func TestSimulationOutOfBounds(t *testing.T) {
	tests := []struct {
		name  string
		y, vy float64
		ended bool
	}{
		{"below floor", 639.9, 0, true},
		{"near floor", 639, 0, false},
		{"above ceiling", 1, -8, true},
		{"near ceiling", 10, -8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim()
			s.body.Y = tt.y
			s.body.VelocityY = tt.vy

			res := s.Step()
			if res.Ended != tt.ended {
				t.Fatalf("ended=%v, want %v (y=%v)", res.Ended, tt.ended, s.Body().Y)
			}
			if tt.ended && res.Cause != EndOutOfBounds {
				t.Errorf("expected out of bounds, got %v", res.Cause)
			}
		})
	}
}

func TestSimulationEndsOnce(t *testing.T) {
	s := newTestSim()
	s.body.Y = 700

	if res := s.Step(); !res.Ended {
		t.Fatal("expected the run to end")
	}
	ticks := s.Run().Ticks
	y := s.Body().Y

	for i := 0; i < 5; i++ {
		if res := s.Step(); res.Ended {
			t.Fatalf("run ended again on tick %d", i)
		}
	}
	if s.Run().Ticks != ticks || s.Body().Y != y {
		t.Errorf("state changed after game over")
	}

	s.Flap()
	if s.Body().VelocityY == -8 {
		t.Errorf("flap must be ignored after game over")
	}
}

func TestSimulationReset(t *testing.T) {
	s := newTestSim()
	for i := 0; i < 30; i++ {
		s.Step()
	}
	s.run.Score = 25
	s.Step()

	s.Reset()
	run := s.Run()
	if run.Score != 0 || run.Stage != 1 || run.VelocityX != -2 || run.GameOver || run.Ticks != 0 {
		t.Errorf("run not reset: %+v", run)
	}
	if b := s.Body(); b.Y != 320 || b.VelocityY != 0 {
		t.Errorf("body not reset: %+v", b)
	}
	if len(s.Obstacles()) != 0 {
		t.Errorf("obstacles not cleared")
	}
}

func TestSimulationDeterminism(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	run := func() (RunState, []Obstacle) {
		s := NewSimulation(cfg, NewRand(12345))
		for i := 0; i < 600; i++ {
			if i%22 == 0 {
				s.Flap()
			}
			if s.Step().Ended {
				break
			}
		}
		return s.Run(), s.Obstacles()
	}

	run1, obs1 := run()
	run2, obs2 := run()

	if run1 != run2 {
		t.Errorf("runs differ: %+v vs %+v", run1, run2)
	}
	if len(obs1) != len(obs2) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(obs1), len(obs2))
	}
	for i := range obs1 {
		if obs1[i] != obs2[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, obs1[i], obs2[i])
		}
	}
}
