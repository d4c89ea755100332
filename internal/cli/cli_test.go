package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decoplan/config"
)

const decoPlan = `
title: reef wall
gases:
  - {name: bottom, o2: 0.21, tank_cuft: 80, reserve_pct: 33}
  - {name: deco, o2: 0.5, max_po2: 1.6}
dives:
  - segments:
      - {depth: 130, minutes: 25, gas: bottom}
`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestPlanCommand(t *testing.T) {
	path := writeFile(t, decoPlan)

	out, err := execute(t, "plan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reef wall")
	assert.Contains(t, out, "Dive 1")
	assert.Contains(t, out, "DEPTH")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "bottom ")

	out, err = execute(t, "plan", "--json", path)
	require.NoError(t, err)
	var v planView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Dives, 1)
	d := v.Dives[0]
	assert.InDelta(t, 130, d.MaxDepth, 1e-9)
	assert.True(t, d.NDL.Exceeded)
	assert.NotEmpty(t, d.Stops)
	assert.Equal(t, "complete", d.Status)
	assert.Positive(t, v.GasUsed["bottom"])
	for i := 1; i < len(d.Stops); i++ {
		assert.Less(t, d.Stops[i].Depth, d.Stops[i-1].Depth)
	}
}

func TestPlanCommand_Errors(t *testing.T) {
	_, err := execute(t, "plan", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrRead)

	_, err = execute(t, "plan", writeFile(t, "gases: []\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "plan")
	assert.Error(t, err)
}

func TestNDLCommand(t *testing.T) {
	out, err := execute(t, "ndl", "--depth", "100", "--json")
	require.NoError(t, err)
	var rows []ndlRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.InDelta(t, 100, rows[0].Depth, 1e-9)
	assert.Positive(t, rows[0].Minutes)
	assert.False(t, rows[0].Exceeded)

	out, err = execute(t, "ndl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 18)
	assert.Contains(t, lines[0], "AIR")
	assert.Contains(t, out, "(beyond MOD)")

	_, err = execute(t, "ndl", "--gf-low", "90", "--gf-high", "50")
	assert.Error(t, err)
}

func TestGasCommand(t *testing.T) {
	out, err := execute(t, "gas", "--o2", "0.5", "--max-po2", "1.6", "--depth", "72")
	require.NoError(t, err)
	assert.Contains(t, out, "NX 50 (OC)")
	assert.Contains(t, out, "MOD 72 ft")
	assert.Contains(t, out, "END 20 ft")

	out, err = execute(t, "gas", "--o2", "0.1", "--he", "0.7", "--json")
	require.NoError(t, err)
	var v gasView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "TX 10/70", v.Name)
	require.NotNil(t, v.Hypoxic)
	assert.Positive(t, *v.Hypoxic)

	_, err = execute(t, "gas", "--o2", "0.8", "--he", "0.5")
	assert.Error(t, err)
}

func TestToxCommand(t *testing.T) {
	out, err := execute(t, "tox", "--o2", "0.32", "--depth", "99", "--minutes", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "PO2 1.28")

	out, err = execute(t, "tox", "--po2", "1.6", "--minutes", "45", "--json")
	require.NoError(t, err)
	var v toxView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.InDelta(t, 100, v.CNS, 0.1)
	assert.Positive(t, v.OTU)

	out, err = execute(t, "tox", "--po2", "1.6", "--minutes", "45")
	require.NoError(t, err)
	assert.Contains(t, out, "CNS limit reached")
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.String()
}

func TestWatchPlan(t *testing.T) {
	resetFlags(RootCmd)
	path := writeFile(t, decoPlan)
	var out, errOut syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchPlan(ctx, path, &out, &errOut) }()

	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "reef wall") }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(decoPlan, "reef wall", "second pass", 1)), 0o600))
	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "second pass") }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
