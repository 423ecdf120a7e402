package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogpath(t *testing.T) {

	now := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

	assert.Equal(t,
		filepath.Join("plots", "2024-Mar-07", "09:05:03"),
		logpath("plots", "", now))
	assert.Equal(t,
		filepath.Join("plots", "2024-Mar-07", "09:05:03: attenuated"),
		logpath("plots", "attenuated", now))
}
