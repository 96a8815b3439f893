package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_NoTasks(t *testing.T) {
	snap := ProjectSnapshot{Title: "Vide"}
	assert.Equal(t, 0, snap.Progress())
}

func TestProgress_CountsCompletedAndFinalized(t *testing.T) {
	snap := ProjectSnapshot{
		Activities: []ActivityContext{
			{Tasks: []TaskContext{
				{Status: "completed"},
				{Status: "finalized"},
				{Status: "pending"},
				{Status: "in_progress"},
			}},
		},
	}
	assert.Equal(t, 50, snap.Progress())
}

func TestProgress_Rounds(t *testing.T) {
	snap := ProjectSnapshot{
		Activities: []ActivityContext{
			{Tasks: []TaskContext{
				{Status: "completed"},
				{Status: "pending"},
				{Status: "pending"},
			}},
		},
	}
	// 1/3 -> 33.33 -> 33
	assert.Equal(t, 33, snap.Progress())
}
