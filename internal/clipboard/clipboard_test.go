// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	available bool
	err       error
	got       []string
}

func (w *fakeWriter) Available() bool { return w.available }

func (w *fakeWriter) WriteAll(text string) error {
	w.got = append(w.got, text)
	return w.err
}

type fakeSurface struct {
	parent  *fakeFallback
	copyErr error
	panics  bool
}

func (s *fakeSurface) Copy() error {
	if s.panics {
		panic("boom")
	}
	s.parent.copies++
	return s.copyErr
}

func (s *fakeSurface) Remove() error {
	s.parent.removes++
	return nil
}

type fakeFallback struct {
	mountErr error
	copyErr  error
	panics   bool

	mounts  int
	copies  int
	removes int
	text    string
}

func (f *fakeFallback) Mount(text string) (Surface, error) {
	if f.mountErr != nil {
		return nil, f.mountErr
	}
	f.mounts++
	f.text = text
	return &fakeSurface{parent: f, copyErr: f.copyErr, panics: f.panics}, nil
}

func TestCopy_PrimarySucceeds(t *testing.T) {
	w := &fakeWriter{available: true}
	fb := &fakeFallback{}
	svc := NewService(w, fb, nil)

	out := svc.Copy(`{"a":1}`)

	assert.True(t, out.OK)
	assert.Equal(t, PathPrimary, out.Path)
	assert.Equal(t, MessageCopied, out.Message)
	assert.Equal(t, []string{`{"a":1}`}, w.got)
	assert.Zero(t, fb.mounts, "fallback must not run when primary works")
}

func TestCopy_PrimaryUnavailableUsesFallback(t *testing.T) {
	w := &fakeWriter{available: false}
	fb := &fakeFallback{}
	svc := NewService(w, fb, nil)

	out := svc.Copy("payload")

	assert.True(t, out.OK)
	assert.Equal(t, PathFallback, out.Path)
	assert.Empty(t, w.got)
	assert.Equal(t, "payload", fb.text)
	assert.Equal(t, 1, fb.mounts)
	assert.Equal(t, 1, fb.removes)
}

func TestCopy_PrimaryErrorUsesFallback(t *testing.T) {
	w := &fakeWriter{available: true, err: errors.New("xclip missing")}
	fb := &fakeFallback{}
	svc := NewService(w, fb, nil)

	out := svc.Copy("payload")

	assert.True(t, out.OK)
	assert.Equal(t, PathFallback, out.Path)
	assert.Equal(t, 1, fb.removes)
}

func TestCopy_FallbackFailureStillRemovesSurface(t *testing.T) {
	fb := &fakeFallback{copyErr: errors.New("denied")}
	svc := NewService(nil, fb, nil)

	out := svc.Copy("payload")

	assert.False(t, out.OK)
	assert.Equal(t, MessageFailed, out.Message)
	assert.Equal(t, 1, fb.mounts)
	assert.Equal(t, 1, fb.removes)
	assert.EqualError(t, out.Err, "denied")
}

func TestCopy_FallbackPanicIsContained(t *testing.T) {
	fb := &fakeFallback{panics: true}
	svc := NewService(nil, fb, nil)

	var out Outcome
	require.NotPanics(t, func() { out = svc.Copy("payload") })

	assert.False(t, out.OK)
	assert.Equal(t, MessageFailed, out.Message)
	assert.Equal(t, 1, fb.removes)
}

func TestCopy_MountFailure(t *testing.T) {
	fb := &fakeFallback{mountErr: ErrNotTerminal}
	out := NewService(nil, fb, nil).Copy("payload")

	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrNotTerminal)
	assert.Zero(t, fb.removes)
}

func TestCopy_NoPaths(t *testing.T) {
	out := NewService(nil, nil, nil).Copy("payload")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrUnavailable)
	assert.Equal(t, MessageFailed, out.Message)
}

func TestOSC52_WritesSequence(t *testing.T) {
	var buf bytes.Buffer
	fb := NewOSC52Writer(&buf, func() bool { return true })

	out := NewService(nil, fb, nil).Copy("hello")

	require.True(t, out.OK)
	enc := base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.Contains(t, buf.String(), "]52;c;"+enc)
}

func TestOSC52_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	fb := NewOSC52Writer(&buf, func() bool { return false })

	out := NewService(nil, fb, nil).Copy("hello")

	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrNotTerminal)
	assert.Zero(t, buf.Len())
}

func TestOSC52_SurfaceSingleUse(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewOSC52Writer(&buf, nil).Mount("x")
	require.NoError(t, err)

	require.NoError(t, s.Remove())
	assert.ErrorIs(t, s.Remove(), ErrRemoved)
	assert.ErrorIs(t, s.Copy(), ErrRemoved)
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "primary", PathPrimary.String())
	assert.Equal(t, "fallback", PathFallback.String())
	assert.Equal(t, "none", PathNone.String())
}
