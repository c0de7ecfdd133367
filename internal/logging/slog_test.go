// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/reviewmatch"
)

func TestNew_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, "text", "debug")
	require.NoError(t, err)

	logger.Debug("debug message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=DEBUG")
}

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, "json", "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With("run", "abc").Warn("solve failed", "status", "NO_SOLUTION")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "solve failed", record["msg"])
	assert.Equal(t, "abc", record["run"])
	assert.Equal(t, "NO_SOLUTION", record["status"])
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "text", "loud")
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlog(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	logger.Info("info message")
	logger.Error("error message", "defect", true)

	output := buf.String()
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "defect=true")
}

func TestLoggers_DriveEngine(t *testing.T) {
	in := &reviewmatch.Input{
		Papers:    []reviewmatch.Paper{{ID: "p0", RequiredReviews: 1}},
		Reviewers: []reviewmatch.Reviewer{{ID: "r0", DefaultCapacity: 1}},
	}

	for name, logger := range map[string]reviewmatch.Logger{
		"nop":  NewNop(),
		"test": NewTest(t),
	} {
		t.Run(name, func(t *testing.T) {
			res := reviewmatch.NewEngine(reviewmatch.WithLogger(logger)).Match(context.Background(), in)
			assert.Equal(t, reviewmatch.StatusComplete, res.Status)
		})
	}
}

func TestFormatKeyValues(t *testing.T) {
	assert.Equal(t, "", formatKeyValues(nil))
	assert.Equal(t, "a=1 b=<missing>", formatKeyValues([]any{"a", 1, "b"}))
}
