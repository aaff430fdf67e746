package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2025, time.March, 5, 15, 4, 0, 0, time.UTC)

	require.Equal(t, "120/80", FormatBP(120, 80))
	require.Equal(t, "Mar 5, 2025", FormatDate(ts))
	require.Equal(t, "3:04 PM", FormatTime(ts))
	require.Equal(t, "Mar 5, 2025 at 3:04 PM", FormatDateTime(ts))
}
