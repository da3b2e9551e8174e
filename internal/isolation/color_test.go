package isolation_test

import (
	"color-splash/internal/isolation"
	"fmt"
	"math"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistance(t *testing.T) {
	type in struct {
		first  isolation.Color
		second isolation.Color
	}

	tests := []struct {
		name string
		in   in
		want float64
	}{
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
			},
			0,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 10, G: 20, B: 30, A: 0},
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
			},
			0,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 30, G: 0, B: 0, A: 255},
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
			},
			30,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 3, G: 4, B: 0, A: 255},
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
			},
			5,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
				isolation.Color{R: 255, G: 255, B: 255, A: 255},
			},
			math.Sqrt(3 * 255 * 255),
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := isolation.Distance(in.first, in.second)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}

			reversed := isolation.Distance(in.second, in.first)
			if diff := cmp.Diff(got, reversed); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	type in struct {
		first     isolation.Color
		second    isolation.Color
		tolerance float64
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
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				0,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				0.0001,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 30, G: 0, B: 0, A: 255},
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
				30,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 30, G: 0, B: 0, A: 255},
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
				30.0001,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 10, G: 20, B: 30, A: 0},
				isolation.Color{R: 10, G: 20, B: 30, A: 255},
				0.5,
			},
			true,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
				isolation.Color{R: 255, G: 255, B: 255, A: 255},
				441,
			},
			false,
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			in{
				isolation.Color{R: 0, G: 0, B: 0, A: 255},
				isolation.Color{R: 255, G: 255, B: 255, A: 255},
				442,
			},
			true,
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := isolation.Similar(in.first, in.second, in.tolerance)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}

			reversed := isolation.Similar(in.second, in.first, in.tolerance)
			if diff := cmp.Diff(got, reversed); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorGrayscale(t *testing.T) {
	tests := []struct {
		name string
		in   isolation.Color
		want isolation.Color
	}{
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 255, G: 0, B: 0, A: 255},
			isolation.Color{R: 85, G: 85, B: 85, A: 255},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 10, G: 20, B: 30, A: 40},
			isolation.Color{R: 20, G: 20, B: 20, A: 40},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 255, G: 255, B: 255, A: 255},
			isolation.Color{R: 255, G: 255, B: 255, A: 255},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{},
			isolation.Color{},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 1, G: 1, B: 2, A: 255},
			isolation.Color{R: 1, G: 1, B: 1, A: 255},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 254, G: 255, B: 255, A: 255},
			isolation.Color{R: 254, G: 254, B: 254, A: 255},
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := in.Grayscale()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	type want struct {
		first  isolation.Color
		second bool
	}

	tests := []struct {
		name string
		in   string
		want want
	}{
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"#ff0000",
			want{
				isolation.Color{R: 255, G: 0, B: 0, A: 255},
				false,
			},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"00ff00",
			want{
				isolation.Color{R: 0, G: 255, B: 0, A: 255},
				false,
			},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"#FF00AA",
			want{
				isolation.Color{R: 255, G: 0, B: 170, A: 255},
				false,
			},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"#fa0",
			want{
				isolation.Color{R: 255, G: 170, B: 0, A: 255},
				false,
			},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"not-a-color",
			want{
				isolation.Color{},
				true,
			},
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			"",
			want{
				isolation.Color{},
				true,
			},
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := isolation.ParseHex(in)
			if diff := cmp.Diff(want.first, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(want.second, err != nil); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		name string
		in   isolation.Color
		want string
	}{
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 255, G: 0, B: 0, A: 255},
			"#ff0000",
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{R: 16, G: 32, B: 48, A: 255},
			"#102030",
		},
		{
			func() string {
				_, _, line, _ := runtime.Caller(1)
				return fmt.Sprintf("L%d", line)
			}(),
			isolation.Color{A: 255},
			"#000000",
		},
	}
	for _, tt := range tests {
		name := tt.name
		in := tt.in
		want := tt.want
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := in.Hex()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReferenceResolve(t *testing.T) {
	t.Run("NoReference", func(t *testing.T) {
		if _, err := isolation.NoReference().Resolve(); err == nil {
			t.Errorf("Expected an error when no color was selected")
		}
	})

	t.Run("ReferenceTo", func(t *testing.T) {
		c := isolation.Color{R: 1, G: 2, B: 3, A: 255}

		got, err := isolation.ReferenceTo(c).Resolve()
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("ZeroColorIsValid", func(t *testing.T) {
		got, err := isolation.ReferenceTo(isolation.Color{}).Resolve()
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if diff := cmp.Diff(isolation.Color{}, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
}
