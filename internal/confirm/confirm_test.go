package confirm_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkgin-go/pkgin/internal/confirm"
	"github.com/stretchr/testify/assert"
)

func TestStdinAssumeYes(t *testing.T) {
	s := confirm.Stdin{AssumeYes: true, In: strings.NewReader(""), Out: &bytes.Buffer{}}
	assert.True(t, s.Confirm(context.Background(), "proceed?", false))
}

func TestStdinAssumeNo(t *testing.T) {
	s := confirm.Stdin{AssumeNo: true, In: strings.NewReader(""), Out: &bytes.Buffer{}}
	assert.False(t, s.Confirm(context.Background(), "proceed?", true))
}

func TestStdinReadsYes(t *testing.T) {
	s := confirm.Stdin{In: strings.NewReader("y\n"), Out: &bytes.Buffer{}}
	assert.True(t, s.Confirm(context.Background(), "proceed?", false))
}

func TestStdinEmptyUsesDefault(t *testing.T) {
	assert.True(t, confirm.Stdin{In: strings.NewReader("\n"), Out: &bytes.Buffer{}}.
		Confirm(context.Background(), "proceed?", true))
	assert.False(t, confirm.Stdin{In: strings.NewReader("\n"), Out: &bytes.Buffer{}}.
		Confirm(context.Background(), "proceed?", false))
}
