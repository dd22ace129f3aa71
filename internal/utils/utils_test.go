package utils

import (
	"testing"
	"time"

	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthYear(t *testing.T) {
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	y, m, err := ParseMonthYear(nil, now)
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)

	y, m, err = ParseMonthYear([]string{"12", "2023"}, now)
	require.NoError(t, err)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	_, _, err = ParseMonthYear([]string{"13"}, now)
	assert.Error(t, err)
	_, _, err = ParseMonthYear([]string{"1", "x"}, now)
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.March, Day: 1}

	d, err := ParseDay("Today", today)
	require.NoError(t, err)
	assert.Equal(t, today, d)

	d, err = ParseDay("yesterday", today)
	require.NoError(t, err)
	assert.Equal(t, models.Date{Year: 2024, Month: time.February, Day: 29}, d)

	d, err = ParseDay("2023-7-4", today)
	require.NoError(t, err)
	assert.Equal(t, "2023-07-04", d.String())

	_, err = ParseDay("tomorrowish", today)
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#3b82f6")
	require.NoError(t, err)
	assert.Equal(t, []int{0x3b, 0x82, 0xf6}, []int{r, g, b})

	r, g, b, err = ParseHexColor("f0a")
	require.NoError(t, err)
	assert.Equal(t, []int{0xff, 0x00, 0xaa}, []int{r, g, b})

	_, _, _, err = ParseHexColor("blue")
	assert.Error(t, err)
	_, _, _, err = ParseHexColor("#12345")
	assert.Error(t, err)
}

func TestContrastingText(t *testing.T) {
	r, g, b := ContrastingText(0xfd, 0xff, 0xb6)
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})

	r, g, b = ContrastingText(0x3b, 0x82, 0xf6)
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
}
