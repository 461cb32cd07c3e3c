package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		in        string
		magnitude float64
		unit      string
		valid     bool
	}{
		{"320 km/h", 320, "km/h", true},
		{"4.2s", 4.2, "s", true},
		{"AED 850,000", 850000, "AED", true},
		{"-12.5 C", -12.5, "C", true},
		{"N/A", 0, "N/A", false},
		{"", 0, "", false},
		{"1.2.3 km", 0, "km", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := ParseMeasure(tt.in)
			assert.Equal(t, tt.in, m.Original)
			assert.Equal(t, tt.valid, m.Valid)
			assert.InDelta(t, tt.magnitude, m.Magnitude, 0.0001)
			assert.Equal(t, tt.unit, m.Unit)
		})
	}
}

func TestParseDigits(t *testing.T) {
	v, ok := ParseDigits("AED 1,250,000")
	require.True(t, ok)
	assert.Equal(t, 1250000.0, v)

	v, ok = ParseDigits("2024")
	require.True(t, ok)
	assert.Equal(t, 2024.0, v)

	_, ok = ParseDigits("Price on request")
	assert.False(t, ok)
}

func TestMeasure_JSON(t *testing.T) {
	var specs Specs
	err := json.Unmarshal([]byte(`{"speed":"320 km/h","acceleration":"2.9s","power":610,"range":null}`), &specs)
	require.NoError(t, err)

	assert.True(t, specs.Speed.Valid)
	assert.Equal(t, 320.0, specs.Speed.Magnitude)
	assert.Equal(t, "610", specs.Power.Original)
	assert.True(t, specs.Range.IsZero())

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"speed":"320 km/h","acceleration":"2.9s","power":"610","range":null}`, string(out))
}

func TestID_UnmarshalNumberOrString(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"urus-s"}`), &v))
	assert.Equal(t, ID("42"), v.A)
	assert.Equal(t, ID("urus-s"), v.B)
}

func TestVehicle_Attribute(t *testing.T) {
	v := Vehicle{
		ID:       "1",
		Name:     "Lamborghini Urus",
		Category: "SUV",
		Year:     "2024",
		Price:    ParseMeasure("AED 1,100,000"),
		Specs: Specs{
			Speed: ParseMeasure("305 km/h"),
		},
	}

	m, ok := v.Attribute("specs.speed")
	require.True(t, ok)
	assert.Equal(t, "305 km/h", m.Original)

	m, ok = v.Attribute("Category")
	require.True(t, ok)
	assert.False(t, m.Valid)

	_, ok = v.Attribute("specs.range")
	assert.False(t, ok, "unset spec is not comparable")

	_, ok = v.Attribute("specs.torque")
	assert.False(t, ok)
}

func TestRecordKind_IsValid(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, RecordKind("blog").IsValid())
}
