package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallIcon_JSON(t *testing.T) {
	t.Parallel()

	var bare SmallIcon
	require.NoError(t, json.Unmarshal([]byte(`"ic_notification"`), &bare))
	assert.Equal(t, "ic_notification", bare.Name)
	assert.Nil(t, bare.Level)

	b, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `"ic_notification"`, string(b))

	var leveled SmallIcon
	require.NoError(t, json.Unmarshal([]byte(`["ic_battery", 4]`), &leveled))
	assert.Equal(t, "ic_battery", leveled.Name)
	require.NotNil(t, leveled.Level)
	assert.Equal(t, int64(4), *leveled.Level)

	b, err = json.Marshal(leveled)
	require.NoError(t, err)
	assert.JSONEq(t, `["ic_battery", 4]`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`["ic"]`), &leveled))
	assert.Error(t, json.Unmarshal([]byte(`{"name": "ic"}`), &leveled))
}

func TestLights_JSON(t *testing.T) {
	t.Parallel()

	var l Lights
	require.NoError(t, json.Unmarshal([]byte(`["#FF0000", 300, 600]`), &l))
	assert.Equal(t, Lights{Color: "#FF0000", OnMs: 300, OffMs: 600}, l)

	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `["#FF0000", 300, 600]`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`["red", 1]`), &l))
	assert.Error(t, json.Unmarshal([]byte(`["red", "1", 2]`), &l))
}

func TestStyle_JSON(t *testing.T) {
	t.Parallel()

	var s Style
	require.NoError(t, json.Unmarshal([]byte(`{"type": 1, "text": "hello", "title": "Hi"}`), &s))
	typ, ok := s.Type()
	require.True(t, ok)
	assert.Equal(t, StyleBigText, typ)
	require.NotNil(t, s.BigText)
	assert.Nil(t, s.BigPicture)
	assert.Equal(t, "hello", s.BigText.Text)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": 1, "text": "hello", "title": "Hi"}`, string(b))

	picture := Style{BigPicture: &BigPictureStyle{Picture: "p.png"}}
	b, err = json.Marshal(picture)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": 0, "picture": "p.png"}`, string(b))

	_, ok = Style{}.Type()
	assert.False(t, ok)
	_, err = json.Marshal(Style{})
	assert.Error(t, err)

	assert.Error(t, json.Unmarshal([]byte(`{"text": "x"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"type": 3}`), &s))
}

func TestProgress_IsIndeterminate(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	assert.False(t, Progress{}.IsIndeterminate())
	assert.False(t, Progress{Indeterminate: &no}.IsIndeterminate())
	assert.True(t, Progress{Indeterminate: &yes}.IsIndeterminate())
}
