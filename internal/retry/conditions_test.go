package retry_test

import (
	"color-splash/internal/retry"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConditionsCheckResponse(t *testing.T) {
	type in struct {
		conditions string
		statusCode int
	}

	tests := []struct {
		name string
		in   in
		want bool
	}{
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"5xx",
				500,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"5xx",
				499,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"gateway-error",
				502,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"gateway-error",
				505,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"gateway-error",
				500,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"retriable-4xx",
				409,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"retriable-4xx",
				404,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"429",
				429,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"429,503",
				503,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				"429",
				430,
			},
			false,
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			conditions, err := retry.NewConditionsFromString(in.conditions)
			if err != nil {
				t.Fatalf("NewConditionsFromString returned error: %v", err)
			}

			got := conditions.CheckResponse(&http.Response{StatusCode: in.statusCode})
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewConditionsFromStringInvalid(t *testing.T) {
	if _, err := retry.NewConditionsFromString("bogus"); err == nil {
		t.Errorf("Expected an error for an unknown condition")
	}
}

type temporaryError struct{}

func (temporaryError) Error() string   { return "temporary" }
func (temporaryError) Temporary() bool { return true }

func TestConditionsCheckError(t *testing.T) {
	t.Run("TemporaryWithConnectFailure", func(t *testing.T) {
		if !retry.NewDefaultConditions().CheckError(temporaryError{}) {
			t.Errorf("Expected a temporary error to be retryable by default")
		}
	})

	t.Run("EOFWithConnectFailure", func(t *testing.T) {
		if !retry.NewDefaultConditions().CheckError(io.EOF) {
			t.Errorf("Expected EOF to be retryable by default")
		}
	})

	t.Run("PlainError", func(t *testing.T) {
		if retry.NewDefaultConditions().CheckError(errors.New("boom")) {
			t.Errorf("Expected a non-temporary error to not be retryable")
		}
	})

	t.Run("NoConditionsEnabled", func(t *testing.T) {
		if (&retry.Conditions{}).CheckError(temporaryError{}) {
			t.Errorf("Expected no retry when every condition is disabled")
		}
	})
}
