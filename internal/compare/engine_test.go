package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollux-motors/showroom/internal/model"
)

func speedCar(id, speed string) model.Vehicle {
	return model.Vehicle{
		ID:       model.ID(id),
		Name:     "Car " + id,
		Category: "Supercar",
		Specs:    model.Specs{Speed: model.ParseMeasure(speed)},
	}
}

var speedAttr = Attribute{Key: "specs.speed", Label: "Top Speed", Polarity: HigherIsBetter, Parse: ParseNumeric}

func TestCompare_ThreeWaySpeed(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "320 km/h"),
		speedCar("2", "250 km/h"),
		speedCar("3", "290 km/h"),
	}

	out := Compare(cars, []Attribute{speedAttr})
	got := out["specs.speed"]
	require.Len(t, got, 3)

	assert.Equal(t, Result{Value: "320 km/h", IsBest: true, HasVariance: true}, got[0])
	assert.Equal(t, Result{Value: "250 km/h", IsWorst: true, HasVariance: true}, got[1])
	assert.Equal(t, Result{Value: "290 km/h", HasVariance: true}, got[2])
}

func TestCompare_TwoWayNeverWorst(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "320 km/h"),
		speedCar("2", "250 km/h"),
	}
	attrs := append([]Attribute{speedAttr}, DefaultAttributes()...)

	for key, results := range Compare(cars, attrs) {
		for i, r := range results {
			assert.False(t, r.IsWorst, "%s[%d]", key, i)
		}
	}
	assert.True(t, Compare(cars, []Attribute{speedAttr})["specs.speed"][0].IsBest)
}

func TestCompare_TiesAllBest(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "320 km/h"),
		speedCar("2", "320 km/h"),
		speedCar("3", "290 km/h"),
	}

	got := Compare(cars, []Attribute{speedAttr})["specs.speed"]
	assert.True(t, got[0].IsBest)
	assert.True(t, got[1].IsBest)
	assert.False(t, got[2].IsBest)
	assert.True(t, got[2].IsWorst)
}

func TestCompare_LowerIsBetter(t *testing.T) {
	cars := []model.Vehicle{
		{ID: "1", Specs: model.Specs{Acceleration: model.ParseMeasure("3.6s")}},
		{ID: "2", Specs: model.Specs{Acceleration: model.ParseMeasure("2.9s")}},
		{ID: "3", Specs: model.Specs{Acceleration: model.ParseMeasure("4.1s")}},
	}
	attr := Attribute{Key: "specs.acceleration", Polarity: LowerIsBetter, Parse: ParseNumeric}

	got := Compare(cars, []Attribute{attr})["specs.acceleration"]
	assert.True(t, got[1].IsBest)
	assert.True(t, got[2].IsWorst)
	assert.False(t, got[0].IsBest || got[0].IsWorst)
}

func TestCompare_NumericContamination(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "320 km/h"),
		speedCar("2", "N/A"),
		speedCar("3", "290 km/h"),
	}

	got := Compare(cars, []Attribute{speedAttr})["specs.speed"]
	for _, r := range got {
		assert.False(t, r.IsBest)
		assert.False(t, r.IsWorst)
		assert.True(t, r.HasVariance)
	}
}

func TestCompare_MissingValueNotZero(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "320 km/h"),
		speedCar("2", ""),
		speedCar("3", "290 km/h"),
	}

	got := Compare(cars, []Attribute{speedAttr})["specs.speed"]
	for _, r := range got {
		assert.False(t, r.IsBest || r.IsWorst)
	}
	assert.Equal(t, "", got[1].Value)
	assert.True(t, got[0].HasVariance)
}

func TestCompare_Variance(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "300 km/h"),
		speedCar("2", "300 km/h"),
		speedCar("3", "300 km/h"),
	}
	category := Attribute{Key: "category", Parse: ParseText}

	out := Compare(cars, []Attribute{speedAttr, category})
	for _, r := range out["category"] {
		assert.False(t, r.HasVariance)
	}
	for _, r := range out["specs.speed"] {
		assert.False(t, r.HasVariance)
		assert.True(t, r.IsBest, "uniform values are all best")
		assert.False(t, r.IsWorst, "no worst without spread")
	}

	cars[2].Category = "SUV"
	out = Compare(cars, []Attribute{category})
	for _, r := range out["category"] {
		assert.True(t, r.HasVariance)
		assert.False(t, r.IsBest || r.IsWorst, "text attributes never rank")
	}
}

func TestCompare_VarianceIsCharacterExact(t *testing.T) {
	cars := []model.Vehicle{
		speedCar("1", "300 km/h"),
		speedCar("2", "300km/h"),
	}
	got := Compare(cars, []Attribute{speedAttr})["specs.speed"]
	assert.True(t, got[0].HasVariance)
	assert.True(t, got[0].IsBest)
	assert.True(t, got[1].IsBest)
}

func TestCompare_SmallSets(t *testing.T) {
	out := Compare([]model.Vehicle{}, DefaultAttributes())
	for _, attr := range DefaultAttributes() {
		assert.Empty(t, out[attr.Key])
	}

	single := Compare([]model.Vehicle{speedCar("1", "320 km/h")}, []Attribute{speedAttr})["specs.speed"]
	require.Len(t, single, 1)
	assert.False(t, single[0].HasVariance)
	assert.False(t, single[0].IsWorst)

	var nilSet []model.Vehicle
	assert.NotPanics(t, func() { Compare(nilSet, nil) })
}

func TestCompare_Idempotent(t *testing.T) {
	cars := []model.Vehicle{
		{ID: "1", Name: "Ferrari SF90", Category: "Supercar", Year: "2024", Price: model.ParseMeasure("AED 1,950,000"),
			Specs: model.Specs{Speed: model.ParseMeasure("340 km/h"), Acceleration: model.ParseMeasure("2.5s"), Power: model.ParseMeasure("986 hp"), Range: model.ParseMeasure("25 km")}},
		{ID: "2", Name: "Rolls-Royce Spectre", Category: "Coupe", Year: "2024", Price: model.ParseMeasure("AED 2,100,000"),
			Specs: model.Specs{Speed: model.ParseMeasure("250 km/h"), Acceleration: model.ParseMeasure("4.5s"), Power: model.ParseMeasure("577 hp"), Range: model.ParseMeasure("530 km")}},
		{ID: "3", Name: "Porsche Taycan", Category: "Sedan", Year: "2023", Price: model.ParseMeasure("AED 650,000"),
			Specs: model.Specs{Speed: model.ParseMeasure("260 km/h"), Acceleration: model.ParseMeasure("2.8s"), Power: model.ParseMeasure("750 hp"), Range: model.ParseMeasure("450 km")}},
	}

	first := Compare(cars, DefaultAttributes())
	second := Compare(cars, DefaultAttributes())
	assert.Equal(t, first, second)

	assert.True(t, first["price"][2].IsBest)
	assert.True(t, first["price"][1].IsWorst)
	assert.True(t, first["year"][0].IsBest)
	assert.True(t, first["year"][2].IsWorst)
	assert.True(t, first["specs.range"][1].IsBest)
}

func pricedCar(id, price, year string) model.Vehicle {
	return model.Vehicle{
		ID:       model.ID(id),
		Name:     "Car " + id,
		Category: "Supercar",
		Year:     year,
		Price:    model.ParseMeasure(price),
	}
}

func TestCompare_DefaultAttributes(t *testing.T) {
	type mark struct{ best, worst bool }

	tests := []struct {
		name     string
		key      string
		cars     []model.Vehicle
		want     []mark
		variance bool
	}{
		{
			name: "decimal prices",
			key:  "price",
			cars: []model.Vehicle{
				pricedCar("1", "AED 99.50", "2024"),
				pricedCar("2", "AED 100", "2024"),
				pricedCar("3", "AED 120", "2024"),
			},
			want:     []mark{{best: true}, {}, {worst: true}},
			variance: true,
		},
		{
			name: "grouped prices",
			key:  "price",
			cars: []model.Vehicle{
				pricedCar("1", "AED 1,250,000", "2024"),
				pricedCar("2", "AED 850,000", "2024"),
				pricedCar("3", "AED 2,100,000", "2024"),
			},
			want:     []mark{{}, {best: true}, {worst: true}},
			variance: true,
		},
		{
			name: "grouped prices with cents",
			key:  "price",
			cars: []model.Vehicle{
				pricedCar("1", "AED 850,000.50", "2024"),
				pricedCar("2", "AED 850,001", "2024"),
				pricedCar("3", "AED 85,000", "2024"),
			},
			want:     []mark{{}, {worst: true}, {best: true}},
			variance: true,
		},
		{
			name: "uniform year",
			key:  "year",
			cars: []model.Vehicle{
				pricedCar("1", "AED 1", "2024"),
				pricedCar("2", "AED 2", "2024"),
				pricedCar("3", "AED 3", "2024"),
			},
			want: []mark{{best: true}, {best: true}, {best: true}},
		},
		{
			name: "newer year wins",
			key:  "year",
			cars: []model.Vehicle{
				pricedCar("1", "AED 1", "2022"),
				pricedCar("2", "AED 2", "2024"),
				pricedCar("3", "AED 3", "2023"),
			},
			want:     []mark{{worst: true}, {best: true}, {}},
			variance: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.cars, DefaultAttributes())[tt.key]
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.best, got[i].IsBest, "%s[%d] best", tt.key, i)
				assert.Equal(t, w.worst, got[i].IsWorst, "%s[%d] worst", tt.key, i)
				assert.Equal(t, tt.variance, got[i].HasVariance, "%s[%d] variance", tt.key, i)
			}
		})
	}
}

func TestCompare_Fields(t *testing.T) {
	entities := []Fields{
		{"name": "A", "specs": map[string]any{"power": "600 hp"}},
		{"name": "B", "specs": map[string]any{"power": 720.0}},
		{"name": "C", "specs": map[string]any{"power": "650 hp"}},
	}
	attr := Attribute{Key: "specs.power", Polarity: HigherIsBetter, Parse: ParseNumeric}

	got := Compare(entities, []Attribute{attr})["specs.power"]
	assert.Equal(t, "720", got[1].Value)
	assert.True(t, got[1].IsBest)
	assert.True(t, got[0].IsWorst)
}

func TestFields_Attribute(t *testing.T) {
	f := Fields{"name": "Urus", "specs": map[string]any{"speed": "305 km/h"}, "tags": []any{"a"}}

	m, ok := f.Attribute("specs.speed")
	require.True(t, ok)
	assert.Equal(t, 305.0, m.Magnitude)

	_, ok = f.Attribute("specs.range")
	assert.False(t, ok)
	_, ok = f.Attribute("name.first")
	assert.False(t, ok)
	_, ok = f.Attribute("tags")
	assert.False(t, ok)
}
