// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level), level.String())
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	assert.Same(t, l, Logger())

	ctx, _ := newTestContext(t)
	assert.Contains(t, buf.String(), "context created")
	assert.Contains(t, buf.String(), "ctx="+ctx.ID())

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, _ := newTestContext(t, WithLogger(l), WithLabel("main"))
	sh := newTestShader(t, ctx)
	_, err := ctx.NewPipeline(PipelineDesc{
		Shader:     sh,
		Buffers:    []BufferLayout{{}},
		Attributes: []VertexAttribute{{Name: "pos", Format: VertexFormatFloat2}},
	})
	require.NoError(t, err)
	sh.Release()
	out := buf.String()
	assert.Contains(t, out, "label=main")
	assert.Contains(t, out, "pipeline created")
	assert.Contains(t, out, "level=WARN")
}
