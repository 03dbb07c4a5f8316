package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/orders/internal/core"
)

func TestUserErrors(t *testing.T) {
	t.Run("success stays nil", func(t *testing.T) {
		run := userErrors(func(*cobra.Command, []string) error { return nil })
		if err := run(nil, nil); err != nil {
			t.Errorf("run() = %v, want nil", err)
		}
	})

	t.Run("failure gains user message", func(t *testing.T) {
		techErr := &core.MissingStoreError{Table: core.OrdersTable}
		run := userErrors(func(*cobra.Command, []string) error { return techErr })

		err := run(nil, nil)
		var uerr *core.UserError
		if !errors.As(err, &uerr) {
			t.Fatalf("run() = %T, want *core.UserError", err)
		}
		if uerr.Code != "STORE001" {
			t.Errorf("Code = %q, want STORE001", uerr.Code)
		}
		var target *core.MissingStoreError
		if !errors.As(err, &target) {
			t.Error("technical error not reachable through Unwrap")
		}
	})
}

func TestLogFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode string
	}{
		{
			name:     "wrapped known error",
			err:      core.NewUserError(&core.MalformedRowError{Line: 3, Field: core.ColQuantity, Err: errors.New("not an integer")}),
			wantMsg:  "A row in the order file could not be read (Code: ROW001). Fix the reported line and field, then load again",
			wantCode: "ROW001",
		},
		{
			name:     "unwrapped known error",
			err:      &core.MissingSourceError{Path: "data/orders.csv"},
			wantMsg:  "Order file not found (Code: SRC001)",
			wantCode: "SRC001",
		},
		{
			name:     "unknown error keeps technical text",
			err:      core.NewUserError(errors.New("unknown command \"frobnicate\"")),
			wantMsg:  `unknown command \"frobnicate\"`,
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			logFailure(logger, tt.err)

			out := buf.String()
			if !strings.Contains(out, tt.wantMsg) {
				t.Errorf("log = %q, want message containing %q", out, tt.wantMsg)
			}
			if !strings.Contains(out, "code="+tt.wantCode) {
				t.Errorf("log = %q, want code=%s", out, tt.wantCode)
			}
		})
	}
}
