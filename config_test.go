package mos_test

import (
	"testing"
	"time"

	"github.com/fwojciec/mos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() mos.Config {
		return mos.Config{
			OutputDir:  "images",
			Range:      mos.NoRange,
			CrawlDelay: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *mos.Config)
		ok     bool
	}{
		{name: "valid", mutate: func(c *mos.Config) {}, ok: true},
		{name: "zero range", mutate: func(c *mos.Config) { c.Range = 0 }, ok: true},
		{name: "missing output", mutate: func(c *mos.Config) { c.OutputDir = "" }},
		{name: "negative range", mutate: func(c *mos.Config) { c.Range = -2 }},
		{name: "unknown naming mode", mutate: func(c *mos.Config) { c.Naming = mos.NamingMode(9) }},
		{name: "negative delay", mutate: func(c *mos.Config) { c.CrawlDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(&c)
			err := c.Validate()

			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, mos.EINVALID, mos.ErrorCode(err))
		})
	}
}

func TestConfig_Bound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rng   int
		total int
		want  int
	}{
		{name: "no range keeps all", rng: mos.NoRange, total: 10, want: 10},
		{name: "range 2 keeps first three", rng: 2, total: 10, want: 3},
		{name: "range 0 keeps input page only", rng: 0, total: 10, want: 1},
		{name: "range beyond total keeps all", rng: 20, total: 10, want: 10},
		{name: "empty collection", rng: 2, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := mos.Config{Range: tt.rng}
			assert.Equal(t, tt.want, c.Bound(tt.total))
		})
	}
}

func TestEntry_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires path", func(t *testing.T) {
		t.Parallel()

		e := &mos.Entry{Status: mos.StatusDownloaded}
		assert.Equal(t, mos.EINVALID, mos.ErrorCode(e.Validate()))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		e := &mos.Entry{Path: "a.jpg", Status: "lost"}
		assert.Equal(t, mos.EINVALID, mos.ErrorCode(e.Validate()))
	})

	t.Run("accepts failed entry", func(t *testing.T) {
		t.Parallel()

		e := &mos.Entry{Path: "a.jpg", Status: mos.StatusFailed, Error: "HTTP 500"}
		assert.NoError(t, e.Validate())
	})
}
