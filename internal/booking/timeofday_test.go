package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("parses HH:MM", func(t *testing.T) {
		tod, err := ParseTimeOfDay("08:30")
		require.NoError(t, err)
		assert.Equal(t, 8*60+30, tod.Minutes())
	})

	t.Run("ignores seconds", func(t *testing.T) {
		tod, err := ParseTimeOfDay("14:00:00")
		require.NoError(t, err)
		assert.Equal(t, 14*60, tod.Minutes())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		tod, err := ParseTimeOfDay(" 09:00 ")
		require.NoError(t, err)
		assert.Equal(t, 9*60, tod.Minutes())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "8", "25:00", "12:60", "ab:cd", "12-30"} {
			_, err := ParseTimeOfDay(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:00", MustParseTimeOfDay("08:00").String())
	assert.Equal(t, "19:05", TimeOfDay(19*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
}

func TestTimeOfDayJSON(t *testing.T) {
	type payload struct {
		At TimeOfDay `json:"at"`
	}

	data, err := json.Marshal(payload{At: MustParseTimeOfDay("13:45")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"13:45"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"at":"07:15"}`), &decoded))
	assert.Equal(t, MustParseTimeOfDay("07:15"), decoded.At)

	assert.Error(t, json.Unmarshal([]byte(`{"at":123}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"at":"nope"}`), &decoded))
}
