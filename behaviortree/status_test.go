package behaviortree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusInvert(t *testing.T) {
	testCases := []struct {
		Description string
		Status      Status
		Expected    Status
	}{
		{Description: "success inverts to failure", Status: Success, Expected: Failure},
		{Description: "failure inverts to success", Status: Failure, Expected: Success},
		{Description: "running is a fixed point", Status: Running, Expected: Running},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Status.Invert())
		})
	}
}

func TestStatusFinished(t *testing.T) {
	assert.True(t, Success.Finished())
	assert.True(t, Failure.Finished())
	assert.False(t, Running.Finished())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "Failure", Failure.String())
}
