package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"kit1", "kit2"}, splitList(" kit1, ,kit2 ,"))
	assert.Nil(t, splitList(""))
}

func TestRunWithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	err := run("ids", "", "kit1", "")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
