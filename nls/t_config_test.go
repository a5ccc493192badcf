// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, NewtonRaphson, cfg.Type)
	assert.Equal(t, LsDefault, cfg.LineSearch)
	assert.Equal(t, LsBasic, cfg.resolveLs())
	assert.Equal(t, 25, cfg.NmaxIt)
}

func TestConfigResolveLs(t *testing.T) {
	// each solver kind resolves "default" to its own line search
	for typ, want := range map[string]string{
		NewtonRaphson: LsBasic,
		NewtonLs:      LsBackTrack,
		QnLbfgs:       LsCritPoint,
		QnBroyden:     LsBasic,
		QnBadBroyden:  LsL2,
		NewtonCg:      LsCritPoint,
		NewtonGmres:   LsL2,
	} {
		var cfg Config
		cfg.SetDefaults()
		cfg.Type = typ
		require.NoError(t, cfg.Validate())
		assert.Equal(t, want, cfg.resolveLs(), typ)
	}

	// explicit choice wins over the per-solver default
	var cfg Config
	cfg.SetDefaults()
	cfg.Type = QnLbfgs
	cfg.LineSearch = LsL2
	assert.Equal(t, LsL2, cfg.resolveLs())
}

func TestConfigJSON(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	require.NoError(t, json.Unmarshal([]byte(`{"type":"newtontr","atol":1e-9,"nmaxit":40}`), &cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, NewtonTr, cfg.Type)
	assert.Equal(t, 1e-9, cfg.Atol)
	assert.Equal(t, 40, cfg.NmaxIt)
	// fields absent from the JSON keep their defaults
	assert.Equal(t, 1e-10, cfg.Rtol)
	assert.Equal(t, 2, cfg.LsOrder)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown solver":     func(c *Config) { c.Type = "nope" },
		"unknown linesearch": func(c *Config) { c.LineSearch = "nope" },
		"bad lsorder":        func(c *Config) { c.LsOrder = 7 },
		"bad nmaxit":         func(c *Config) { c.NmaxIt = 0 },
		"negative atol":      func(c *Config) { c.Atol = -1 },
	}
	for label, mutate := range cases {
		var cfg Config
		cfg.SetDefaults()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), label)
	}
}
