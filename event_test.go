// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	for i, evt := range Events() {
		assert.Equal(t, Event(i), evt)
	}
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeExecutionStart", BeforeExecutionStart.Name())
	assert.Equal(t, "BeforeHop", BeforeHop.Name())
	assert.Equal(t, "AfterHopTimeout", AfterHopTimeout.Name())
	assert.Equal(t, "BeforeReadBody", BeforeReadBody.Name())
	assert.Equal(t, "BeforeRedirect", BeforeRedirect.Name())
	assert.Equal(t, "AfterHop", AfterHop.Name())
	assert.Equal(t, "AfterExecutionEnd", AfterExecutionEnd.String())
}
