package airfield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/aerospotter/internal/metar"
)

func reciprocalPair() []RunwayDefinition {
	return []RunwayDefinition{
		{ID: "RWY 34", Heading: 340},
		{ID: "RWY 16", Heading: 160},
	}
}

func testProfile(policy ActivityPolicy, runways []RunwayDefinition) *AirportProfile {
	return &AirportProfile{
		Code:              "TEST",
		Location:          time.UTC,
		Runways:           runways,
		Policy:            policy,
		TailwindTolerance: DefaultTailwindTolerance,
	}
}

func TestWindOnlyPicksHeadwindRunway(t *testing.T) {
	obs := metar.Observation{WindDirection: 350, WindSpeed: 10}
	got := WindOnlyPolicy{}.Select(obs, reciprocalPair(), NoHour)
	assert.Equal(t, []RunwayID{"RWY 34"}, got)

	ap := testProfile(WindOnlyPolicy{}, reciprocalPair())
	res := Resolve(obs, ap, NoHour)
	assert.Equal(t, []RunwayID{"RWY 34"}, res.Active)
	assert.Equal(t, StatusActive, res.Status["RWY 34"])
	assert.Equal(t, StatusStandby, res.Status["RWY 16"])
}

func TestWindOnlyCalmSelectsAll(t *testing.T) {
	obs := metar.Observation{}
	got := ResolveActive(obs, testProfile(WindOnlyPolicy{}, reciprocalPair()), NoHour)
	assert.Equal(t, []RunwayID{"RWY 34", "RWY 16"}, got)
}

func TestWindOnlyPerpendicularWind(t *testing.T) {
	obs := metar.Observation{WindDirection: 250, WindSpeed: 20}
	got := ResolveActive(obs, testProfile(WindOnlyPolicy{}, reciprocalPair()), NoHour)
	assert.Len(t, got, 2)
}

func hanedaLikePolicy() WindTimePolicy {
	return WindTimePolicy{
		Northerly: []RunwayID{"RWY 34L", "RWY 34R"},
		Southerly: []RunwayID{"RWY 22", "RWY 23"},
		Window: &TimeWindow{
			Runways:   []RunwayID{"RWY 16L", "RWY 16R"},
			StartHour: 15,
			EndHour:   19,
		},
	}
}

func TestWindTimePolicySelect(t *testing.T) {
	p := hanedaLikePolicy()
	tests := []struct {
		name string
		dir  int
		hour int
		want []RunwayID
	}{
		{"north", 340, 12, []RunwayID{"RWY 34L", "RWY 34R"}},
		{"calm counts as north", 0, 16, []RunwayID{"RWY 34L", "RWY 34R"}},
		{"just below south boundary", 89, 16, []RunwayID{"RWY 34L", "RWY 34R"}},
		{"south boundary inclusive", 90, 10, []RunwayID{"RWY 22", "RWY 23"}},
		{"upper boundary inclusive", 270, 10, []RunwayID{"RWY 22", "RWY 23"}},
		{"just past upper boundary", 271, 16, []RunwayID{"RWY 34L", "RWY 34R"}},
		{"south inside window", 180, 15, []RunwayID{"RWY 16L", "RWY 16R"}},
		{"south window end exclusive", 180, 19, []RunwayID{"RWY 22", "RWY 23"}},
		{"south unknown hour", 180, NoHour, []RunwayID{"RWY 22", "RWY 23"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := metar.Observation{WindDirection: tt.dir, WindSpeed: 10}
			assert.Equal(t, tt.want, p.Select(obs, nil, tt.hour))
		})
	}
}

func TestWindTimeSelectDoesNotAlias(t *testing.T) {
	p := hanedaLikePolicy()
	got := p.Select(metar.Observation{WindDirection: 340}, nil, NoHour)
	got[0] = "RWY 99"
	assert.Equal(t, RunwayID("RWY 34L"), p.Northerly[0])
}

func TestTimeWindowWrapsMidnight(t *testing.T) {
	w := TimeWindow{StartHour: 22, EndHour: 6}
	assert.True(t, w.Contains(23))
	assert.True(t, w.Contains(0))
	assert.True(t, w.Contains(5))
	assert.False(t, w.Contains(6))
	assert.False(t, w.Contains(12))
	assert.False(t, w.Contains(NoHour))
}

func TestPostfilterDowngradesTailwind(t *testing.T) {
	policy := WindTimePolicy{
		Northerly: []RunwayID{"RWY 36"},
		Southerly: []RunwayID{"RWY 27"},
	}
	runways := []RunwayDefinition{
		{ID: "RWY 36", Heading: 0},
		{ID: "RWY 27", Heading: 270},
	}
	ap := testProfile(policy, runways)

	// Wind 090 at 6kt is a 6kt tailwind on 270.
	obs := metar.Observation{WindDirection: 90, WindSpeed: 6}
	hw, _ := WindComponents(90, 6, 270)
	require.InDelta(t, -6, hw, 1e-9)

	res := Resolve(obs, ap, NoHour)
	assert.Equal(t, []RunwayID{"RWY 27"}, res.Selected)
	assert.Empty(t, res.Active)
	assert.Equal(t, StatusUnsafeTailwind, res.Status["RWY 27"])
	assert.Equal(t, StatusStandby, res.Status["RWY 36"])
}

func TestPostfilterToleratesSmallTailwind(t *testing.T) {
	policy := WindTimePolicy{
		Northerly: []RunwayID{"RWY 36"},
		Southerly: []RunwayID{"RWY 27"},
	}
	ap := testProfile(policy, []RunwayDefinition{{ID: "RWY 27", Heading: 270}, {ID: "RWY 36", Heading: 0}})

	obs := metar.Observation{WindDirection: 90, WindSpeed: 5}
	assert.Equal(t, []RunwayID{"RWY 27"}, ResolveActive(obs, ap, NoHour))
}

func TestPolicyConfigBuild(t *testing.T) {
	runways := []RunwayDefinition{{ID: "RWY 34L"}, {ID: "RWY 16R"}}

	p, err := PolicyConfig{Kind: PolicyWindOnly}.Build(runways)
	require.NoError(t, err)
	assert.Equal(t, PolicyWindOnly, p.Kind())

	p, err = PolicyConfig{
		Kind:      PolicyWindTime,
		Northerly: []RunwayID{"rwy  34l"},
		Southerly: []RunwayID{"RWY 16R"},
	}.Build(runways)
	require.NoError(t, err)
	assert.Equal(t, []RunwayID{"RWY 34L"}, p.(WindTimePolicy).Northerly)

	_, err = PolicyConfig{
		Kind:      PolicyWindTime,
		Northerly: []RunwayID{"RWY 34L"},
		Southerly: []RunwayID{"RWY 22"},
	}.Build(runways)
	assert.ErrorContains(t, err, "RWY 22")

	_, err = PolicyConfig{Kind: PolicyWindTime, Southerly: []RunwayID{"RWY 16R"}}.Build(runways)
	assert.ErrorContains(t, err, "northerly runway set is empty")

	_, err = PolicyConfig{Kind: "round-robin"}.Build(runways)
	assert.Error(t, err)
}
