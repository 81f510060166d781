// internal/chatbot/nlp/extractor_test.go
package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

func TestExtract_Identifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"explicit phrase", "details of army number jc457693", "JC457693"},
		{"short mixed token", "details of 778g", "778G"},
		{"long service number", "leave balance of 15740527w", "15740527W"},
		{"letters then digits", "who is 156we", "156WE"},
		{"no identifier", "how many personnel in 1 company", ""},
		{"bare year is not an identifier", "leave taken in 2026", ""},
		{"plain words are not identifiers", "show all pending tasks", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Extract(tt.input, testNow)
			assert.Equal(t, tt.expected, e.Identifier)
		})
	}
}

func TestExtract_Company(t *testing.T) {
	assert.Equal(t, "1 Company", Extract("how many personnel in 1 company", testNow).Company)
	assert.Equal(t, "HQ Company", Extract("hq company strength", testNow).Company)
	assert.Equal(t, "", Extract("show all loans", testNow).Company)
}

func TestExtract_Date(t *testing.T) {
	t.Run("iso", func(t *testing.T) {
		d := Extract("who is on leave on 2026-09-01", testNow).Date
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("day month year", func(t *testing.T) {
		d := Extract("parade state for 15/08/2026", testNow).Date
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("two digit year", func(t *testing.T) {
		d := Extract("on leave on 5/1/26", testNow).Date
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("relative today", func(t *testing.T) {
		d := Extract("who is on leave today", testNow).Date
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("relative yesterday", func(t *testing.T) {
		d := Extract("parade state yesterday", testNow).Date
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("invalid calendar date dropped", func(t *testing.T) {
		assert.Nil(t, Extract("on leave on 32/13/2026", testNow).Date)
	})

	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, Extract("show all loans", testNow).Date)
	})
}

func TestExtract_Rank(t *testing.T) {
	assert.Equal(t, "Naib Subedar", Extract("naib subedar on leave", testNow).Rank)
	assert.Equal(t, "Subedar Major", Extract("subedar major details", testNow).Rank)
	assert.Equal(t, "Subedar", Extract("subedar strength", testNow).Rank)
	assert.Equal(t, "HAV", Extract("havaldar loans", testNow).Rank)
	assert.Equal(t, "Agniveer", Extract("agniveer count", testNow).Rank)
	assert.Equal(t, "", Extract("show all tasks", testNow).Rank)
}

func TestExtract_LeaveType(t *testing.T) {
	assert.Equal(t, "CL", Extract("cl balance of 778g", testNow).LeaveType)
	assert.Equal(t, "CL", Extract("casual leave of 778g", testNow).LeaveType)
	assert.Equal(t, "AAL", Extract("aal balance of 778g", testNow).LeaveType)
	assert.Equal(t, "AL", Extract("annual leave balance", testNow).LeaveType)
	assert.Equal(t, "AL", Extract("leave balance of 778g", testNow).LeaveType)
	assert.Equal(t, "", Extract("details of 778g", testNow).LeaveType)
}
