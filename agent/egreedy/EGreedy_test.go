package egreedy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/rlbasics/environment/bandit"
	"github.com/samuelfneumann/rlbasics/environment/gridworld"
	"github.com/samuelfneumann/rlbasics/timestep"
)

func newBandit(t *testing.T, means []float64) *bandit.Bandit {
	t.Helper()
	b, _, err := bandit.NewFromMeans(means, 0, 11)
	require.NoError(t, err)
	return b
}

func TestSchedule(t *testing.T) {
	t.Run("constant epsilon never changes", func(t *testing.T) {
		s := Constant(0.1)
		require.Equal(t, 0.1, s.At(0))
		require.Equal(t, 0.1, s.At(999))
	})

	t.Run("decay starts at the initial epsilon", func(t *testing.T) {
		require.Equal(t, 1.0, NewDecay(1.0).At(0))
		require.Equal(t, 0.5, NewDecay(0.5).At(0))
	})

	t.Run("decay is geometric", func(t *testing.T) {
		s := NewDecay(1.0)
		require.InDelta(t, math.Pow(0.99, 100), s.At(100), 1e-12)
	})

	t.Run("decay floors at 0.01", func(t *testing.T) {
		s := NewDecay(1.0)
		require.Equal(t, DecayFloor, s.At(1000))
		require.Equal(t, DecayFloor, s.At(100000))
		require.Equal(t, DecayFloor, NewDecay(0).At(0))
	})

	t.Run("decay never exceeds one", func(t *testing.T) {
		require.Equal(t, 1.0, Decay{Initial: 3, Rate: 0.99, Floor: 0.01}.At(0))
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects invalid epsilon", func(t *testing.T) {
		_, err := New(newBandit(t, []float64{0, 1}), Config{Epsilon: 1.5}, 1)
		require.Error(t, err)
	})

	t.Run("rejects multi-state environments", func(t *testing.T) {
		g, _, err := gridworld.NewCorners(4, 4, 1.0, 1)
		require.NoError(t, err)

		_, err = New(g, Config{Epsilon: 0.1}, 1)
		require.Error(t, err)
	})

	t.Run("estimates start at the initial estimate", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1, 2}),
			Config{InitialEstimate: 5}, 1)
		require.NoError(t, err)
		require.Equal(t, []float64{5, 5, 5}, e.Estimates())
		require.Equal(t, []float64{0, 0, 0}, e.Counts())
	})
}

func TestStep(t *testing.T) {
	t.Run("sample average update", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1}), Config{}, 1)
		require.NoError(t, err)

		for _, r := range []float64{1, 3, 8} {
			step := timestep.New(timestep.Mid, r, 1, 0, 1)
			require.NoError(t, e.Observe(1, step))
			require.NoError(t, e.Step())
		}

		require.InDelta(t, 4.0, e.Estimates()[1], 1e-12)
		require.Equal(t, []float64{0, 3}, e.Counts())
	})

	t.Run("step without observation fails", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1}), Config{}, 1)
		require.NoError(t, err)
		require.Error(t, e.Step())
	})

	t.Run("observing an illegal action fails", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1}), Config{}, 1)
		require.NoError(t, err)
		require.Error(t, e.Observe(2, timestep.TimeStep{}))
	})

	t.Run("epsilon follows the decay schedule", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1}),
			Config{Epsilon: 1, Decay: true}, 1)
		require.NoError(t, err)
		require.Equal(t, 1.0, e.Epsilon())

		for i := 0; i < 10; i++ {
			require.NoError(t, e.Observe(0, timestep.TimeStep{}))
			require.NoError(t, e.Step())
		}
		require.InDelta(t, math.Pow(0.99, 10), e.Epsilon(), 1e-12)
	})
}

func TestSelectAction(t *testing.T) {
	t.Run("zero epsilon never explores", func(t *testing.T) {
		b := newBandit(t, []float64{0.2, -0.4, 1.3, 0.9, -1.1})
		e, err := New(b, Config{Epsilon: 0}, 3)
		require.NoError(t, err)

		step := b.Reset()
		require.NoError(t, e.ObserveFirst(step))
		for i := 0; i < 1000; i++ {
			want := floats.MaxIdx(e.Estimates())
			action := e.SelectAction(step)
			require.Equal(t, want, action)

			step, _, err = b.Step(action)
			require.NoError(t, err)
			require.NoError(t, e.Observe(action, step))
			require.NoError(t, e.Step())
		}
	})

	t.Run("greedy ties go to the lowest index", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1, 2}), Config{}, 1)
		require.NoError(t, err)
		require.Equal(t, 0, e.Greedy())
		require.Equal(t, []float64{1, 0, 0}, e.Probabilities())
	})

	t.Run("exploration mass is shared by all arms", func(t *testing.T) {
		e, err := New(newBandit(t, []float64{0, 1, 2, 3}),
			Config{Epsilon: 0.2}, 1)
		require.NoError(t, err)

		probs := e.Probabilities()
		require.InDelta(t, 0.85, probs[0], 1e-12)
		require.InDelta(t, 0.05, probs[3], 1e-12)
		require.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
	})

	t.Run("full exploration pulls every arm", func(t *testing.T) {
		b := newBandit(t, []float64{0, 1, 2, 3, 4})
		e, err := New(b, Config{Epsilon: 1}, 5)
		require.NoError(t, err)

		step := b.Reset()
		for i := 0; i < 500; i++ {
			action := e.SelectAction(step)
			step, _, err = b.Step(action)
			require.NoError(t, err)
			require.NoError(t, e.Observe(action, step))
			require.NoError(t, e.Step())
		}

		for arm, count := range e.Counts() {
			require.Greater(t, count, 0.0, "arm %d never pulled", arm)
		}
	})
}

func TestConfigList(t *testing.T) {
	list := NewConfigList([]float64{0, 0.01, 0.1}, []bool{false, true})
	require.Equal(t, 6, list.Len())

	require.Equal(t, Config{Epsilon: 0.01}, list.At(1))
	require.Equal(t, Config{Epsilon: 0.1, Decay: true}, list.At(5))
	require.Panics(t, func() { list.At(6) })

	t.Run("labels", func(t *testing.T) {
		require.Equal(t, "ε = 0", list.At(0).String())
		require.Equal(t, "ε = 0.01", list.At(1).String())
		require.Equal(t, "ε decaying", list.At(3).String())
	})

	t.Run("validation", func(t *testing.T) {
		require.NoError(t, Config{Epsilon: 1}.Validate())
		require.Error(t, Config{Epsilon: -0.1}.Validate())
	})
}

func BenchmarkSelectAction(b *testing.B) {
	env, step, err := bandit.New(10, 0, 1)
	if err != nil {
		b.Fatal(err)
	}
	e, err := New(env, Config{Epsilon: 0.1}, 1)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		e.SelectAction(step)
	}
}
