// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/someonegg/reviewmatch"
	"github.com/someonegg/reviewmatch/internal/config"
	"github.com/someonegg/reviewmatch/internal/logging"
	"github.com/someonegg/reviewmatch/venue"
)

// loadConfig reads --config and applies the command's flag overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return cfg, err
	}

	if ctx.IsSet("timeout") {
		cfg.Engine.Timeout = ctx.Duration("timeout")
	}
	if ctx.IsSet("neutral") {
		cfg.Engine.NeutralAffinity = ctx.Float64("neutral")
	}
	if ctx.IsSet("addr") {
		cfg.Server.Addr = ctx.String("addr")
	}
	if ctx.Bool("verbose") {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (reviewmatch.Logger, error) {
	return logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
}

func doSolve(ctx context.Context, cfg config.Config, inputFile, outputFile string) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	req, err := loadRequest(inputFile)
	if err != nil {
		return fmt.Errorf("load input file failed: %w", err)
	}

	matcher := &venue.Matcher{
		NeutralAffinity: &cfg.Engine.NeutralAffinity,
		Timeout:         &cfg.Engine.Timeout,
		Logger:          logger,
	}
	resp, matchErr := matcher.Match(ctx, req)

	logger.Info("match summary",
		"status", resp.Status.String(),
		"papers", resp.Summary.PapersCount,
		"reviewers", resp.Summary.ReviewersCount,
		"demand", resp.Summary.Demand,
		"supply", resp.Summary.Supply,
		"spare", resp.Summary.Spare)

	if err := writeResponse(outputFile, resp); err != nil {
		return fmt.Errorf("write output file failed: %w", err)
	}

	if matchErr != nil {
		return fmt.Errorf("match %s: %w", resp.Status, matchErr)
	}
	return nil
}

func loadRequest(file string) (*venue.Request, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var req venue.Request

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

func writeResponse(file string, resp *venue.Response) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(resp); err != nil {
		return err
	}

	if file == "-" || file == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}
