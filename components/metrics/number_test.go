package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDecodesLooseJSON(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
		F Number `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a":"12.5","b":null,"c":"abc","d":7,"e":{"x":1}}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, Number{Value: 12.5, Valid: true}, payload.A)
	assert.False(t, payload.B.Valid)
	assert.False(t, payload.C.Valid)
	assert.Equal(t, 7.0, payload.D.Float())
	assert.False(t, payload.E.Valid)
	assert.Equal(t, 0.0, payload.F.Float())
}

func TestNumberEncodesNullWhenInvalid(t *testing.T) {
	out, err := json.Marshal(map[string]Number{"ok": NumberOf(3), "missing": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":3,"missing":null}`, string(out))
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{in: " 42 ", want: 42, ok: true},
		{in: json.Number("1.5"), want: 1.5, ok: true},
		{in: int64(9), want: 9, ok: true},
		{in: "NaN", ok: false},
		{in: "Inf", ok: false},
		{in: true, ok: false},
		{in: (*Number)(nil), ok: false},
	}
	for _, tc := range cases {
		got, ok := Coerce(tc.in)
		assert.Equal(t, tc.ok, ok, "input %#v", tc.in)
		assert.Equal(t, tc.want, got, "input %#v", tc.in)
	}
}
