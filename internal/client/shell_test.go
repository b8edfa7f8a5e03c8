// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-journal-vault/internal/app"
	"github.com/MKhiriev/go-journal-vault/internal/service"
	"github.com/MKhiriev/go-journal-vault/models"
)

func TestShell_SessionLifecycle(t *testing.T) {
	h := newHarness(t,
		"pw",
		"put entry walked to the lake",
		"list",
		"lock",
		"get r1",
		"exit",
	)

	h.keys.EXPECT().Unlock(gomock.Any(), "alice", "pw").Return(nil)
	h.keys.EXPECT().Resume(gomock.Any(), "alice").Return(nil).Times(2)
	h.keys.EXPECT().Resume(gomock.Any(), "alice").Return(service.ErrSessionExpired)
	h.entries.EXPECT().Put(gomock.Any(), models.Entry{Kind: models.KindEntry, Text: "walked to the lake"}).
		Return(models.Entry{RecordID: "r1"}, nil)
	h.entries.EXPECT().List(gomock.Any(), "").
		Return([]models.Entry{{RecordID: "r1", Kind: models.KindEntry, Text: "walked to the lake"}}, nil)
	// the lock command and the exit of the shell
	h.keys.EXPECT().Lock().Times(2)

	require.NoError(t, h.run("shell", "-l", "alice"))

	out := h.out.String()
	assert.Contains(t, out, "Unlocked. Type help for commands.")
	assert.Contains(t, out, "r1\n")
	assert.Contains(t, out, "walked to the lake")
	assert.Contains(t, out, "Locked.")
	assert.Contains(t, out, "Error: "+app.MsgSessionExpired)
}

func TestShell_UnlockAgainAfterExpiry(t *testing.T) {
	h := newHarness(t, "pw", "search lake", "unlock", "pw", "search lake")

	h.keys.EXPECT().Unlock(gomock.Any(), "alice", "pw").Return(nil).Times(2)
	h.keys.EXPECT().Resume(gomock.Any(), "alice").Return(service.ErrSessionExpired)
	h.keys.EXPECT().Resume(gomock.Any(), "alice").Return(nil)
	h.entries.EXPECT().Search(gomock.Any(), "lake").Return(nil, nil)
	h.keys.EXPECT().Lock()

	// input ends after the second search
	require.NoError(t, h.run("shell", "-l", "alice"))

	out := h.out.String()
	assert.Contains(t, out, app.MsgSessionExpired)
	assert.Contains(t, out, "Unlocked.\n")
	assert.Contains(t, out, "No entries.")
}

func TestShell_UsageErrors(t *testing.T) {
	h := newHarness(t, "pw", "put entry", "teleport", "", "help", "status")

	h.keys.EXPECT().Unlock(gomock.Any(), "alice", "pw").Return(nil)
	h.keys.EXPECT().Resume(gomock.Any(), "alice").Return(nil).Times(2)
	h.keys.EXPECT().Lock()

	require.NoError(t, h.run("shell", "-l", "alice"))

	out := h.out.String()
	assert.Contains(t, out, "Error: "+errShellUsage.Error())
	assert.Contains(t, out, `unknown command "teleport"`)
	assert.Contains(t, out, "put <kind> <text...>")
	assert.Contains(t, out, "Unlocked, locks after")
}

func TestShell_WrongPassword(t *testing.T) {
	h := newHarness(t, "nope")
	h.keys.EXPECT().Unlock(gomock.Any(), "alice", "nope").Return(service.ErrInvalidCredentials)

	err := h.run("shell", "-l", "alice")
	require.Error(t, err)
	assert.Equal(t, app.MsgIncorrectSecret, Message(err))
}

// heldPrompter blocks Line until a line is released, like a terminal waiting
// for input.
type heldPrompter struct {
	reading chan struct{}
	release chan string
	done    chan struct{}
}

func newHeldPrompter() *heldPrompter {
	return &heldPrompter{
		reading: make(chan struct{}, 1),
		release: make(chan string),
		done:    make(chan struct{}),
	}
}

func (p *heldPrompter) Password(string) (string, error) { return "pw", nil }
func (p *heldPrompter) Text(string) (string, error)     { return "", io.EOF }

func (p *heldPrompter) Line(string) (string, error) {
	defer close(p.done)
	p.reading <- struct{}{}
	return <-p.release, nil
}

func TestShell_CancelWhileWaitingForInput(t *testing.T) {
	h := newHarness(t)
	held := newHeldPrompter()
	h.app.prompter = held
	h.keys.EXPECT().Unlock(gomock.Any(), "alice", "pw").Return(nil)
	h.keys.EXPECT().Lock()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- h.app.shell(ctx, "alice", false) }()

	<-held.reading
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shell did not return after cancel")
	}

	// A line typed after the shell ended is dropped and the reader exits.
	// The entry mock fails the test if the put is executed.
	held.release <- "put late entry"
	select {
	case <-held.done:
	case <-time.After(time.Second):
		t.Fatal("reader still blocked after input arrived")
	}
}
