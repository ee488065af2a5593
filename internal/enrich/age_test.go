package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeDays(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	start := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	age := AgeDays(&start, now)
	require.NotNil(t, age)
	assert.Equal(t, 10, *age)

	sameDay := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)
	age = AgeDays(&sameDay, now)
	require.NotNil(t, age)
	assert.Equal(t, 0, *age)

	future := time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)
	age = AgeDays(&future, now)
	require.NotNil(t, age)
	assert.Equal(t, 0, *age)

	assert.Nil(t, AgeDays(nil, now))
}

func TestCreatedToday(t *testing.T) {
	now := time.Date(2024, 5, 20, 23, 59, 0, 0, time.UTC)

	morning := time.Date(2024, 5, 20, 0, 1, 0, 0, time.UTC)
	assert.True(t, CreatedToday(&morning, now))

	yesterday := time.Date(2024, 5, 19, 23, 59, 0, 0, time.UTC)
	assert.False(t, CreatedToday(&yesterday, now))

	assert.False(t, CreatedToday(nil, now))
}

func TestParseTime(t *testing.T) {
	ts := ParseTime("2024-05-20 14:30:00")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC), *ts)

	ts = ParseTime("20/05/2024")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), *ts)

	assert.Nil(t, ParseTime(""))
	assert.Nil(t, ParseTime("not a date"))
	assert.Nil(t, ParseTime("2024-13-45"))
}
