package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission/internal/admission/models"
)

func baseArgs(clientID string) []string {
	return []string{
		"-first-name", "Ann",
		"-last-name", "Boleyn",
		"-email", "ann.boleyn@example.com",
		"-dob", "1990-05-19",
		"-client-id", clientID,
		"-as-of", "2026-10-16",
	}
}

func runAdmit(t *testing.T, env map[string]string, args []string) (int, *models.Result, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, envconfig.MapLookuper(env), nil, &stdout, &stderr)
	if stdout.Len() == 0 {
		return code, nil, stderr.String()
	}
	var result models.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	return code, &result, stderr.String()
}

func TestRun(t *testing.T) {
	t.Run("very important client is accepted without a limit", func(t *testing.T) {
		code, result, _ := runAdmit(t, nil, baseArgs("3"))
		assert.Equal(t, exitAccepted, code)
		require.NotNil(t, result)
		assert.Equal(t, models.StatusAccepted, result.Status)
		require.NotNil(t, result.User)
		assert.False(t, result.User.HasCreditLimit)
		assert.Equal(t, models.TierVeryImportant, result.User.Client.Tier)
	})

	t.Run("important client doubles the static limit", func(t *testing.T) {
		code, result, _ := runAdmit(t, map[string]string{"CREDIT_ORACLE_DEFAULT_LIMIT": "300"}, baseArgs("2"))
		assert.Equal(t, exitAccepted, code)
		require.NotNil(t, result.User)
		assert.True(t, result.User.HasCreditLimit)
		assert.Equal(t, int64(600), result.User.CreditLimit)
	})

	t.Run("regular client below the minimum is rejected", func(t *testing.T) {
		code, result, _ := runAdmit(t, map[string]string{"CREDIT_ORACLE_DEFAULT_LIMIT": "300"}, baseArgs("1"))
		assert.Equal(t, exitRejected, code)
		require.NotNil(t, result)
		assert.Equal(t, models.ReasonCreditLimitTooLow, result.Reason)
		assert.Nil(t, result.User)
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		code, result, _ := runAdmit(t, nil, baseArgs("99"))
		assert.Equal(t, exitRejected, code)
		assert.Equal(t, models.ReasonClientNotFound, result.Reason)
	})

	t.Run("underage candidate is rejected", func(t *testing.T) {
		args := append(baseArgs("3"), "-dob", "2006-01-01")
		code, result, _ := runAdmit(t, nil, args)
		assert.Equal(t, exitRejected, code)
		assert.Equal(t, models.ReasonValidationFailed, result.Reason)
	})

	t.Run("malformed date of birth is an error", func(t *testing.T) {
		args := append(baseArgs("3"), "-dob", "19/05/1990")
		code, result, stderr := runAdmit(t, nil, args)
		assert.Equal(t, exitError, code)
		assert.Nil(t, result)
		assert.Contains(t, stderr, "invalid -dob")
	})

	t.Run("missing date of birth is an error", func(t *testing.T) {
		args := []string{
			"-first-name", "Ann",
			"-last-name", "Boleyn",
			"-email", "ann.boleyn@example.com",
			"-client-id", "3",
			"-as-of", "2026-10-16",
		}
		code, result, stderr := runAdmit(t, nil, args)
		assert.Equal(t, exitError, code)
		assert.Nil(t, result)
		assert.Contains(t, stderr, "-dob is required")
	})

	t.Run("invalid configuration is an error", func(t *testing.T) {
		code, result, stderr := runAdmit(t, map[string]string{"CREDIT_ORACLE_TIMEOUT": "0s"}, baseArgs("3"))
		assert.Equal(t, exitError, code)
		assert.Nil(t, result)
		assert.Contains(t, stderr, "CREDIT_ORACLE_TIMEOUT")
	})

	t.Run("unknown flag is an error", func(t *testing.T) {
		code, _, _ := runAdmit(t, nil, []string{"-bogus"})
		assert.Equal(t, exitError, code)
	})
}
