package handler

import (
	"testing"

	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/stretchr/testify/assert"
)

func TestNewRequest_ReturnsFreshPayload(t *testing.T) {
	template := &owner.UpdateOwnerPayload{Name: "stale"}

	first := newRequest(template)
	second := newRequest(template)

	assert.NotSame(t, template, first)
	assert.NotSame(t, first, second)
	assert.Empty(t, first.Name)
}
