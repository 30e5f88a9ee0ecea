package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsMalformedURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a connection string %%")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestCloseOnZeroValueIsSafe(t *testing.T) {
	var db DB
	db.Close()
}
