package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectOpenArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"lunchpad"},
			want: []string{"lunchpad"},
		},
		{
			name: "index first token",
			in:   []string{"lunchpad", "3"},
			want: []string{"lunchpad", "open", "3"},
		},
		{
			name: "index after value flag",
			in:   []string{"lunchpad", "--storage", "sqlite", "3"},
			want: []string{"lunchpad", "--storage", "sqlite", "open", "3"},
		},
		{
			name: "index after equals flag",
			in:   []string{"lunchpad", "--data-dir=./tmp-test", "0"},
			want: []string{"lunchpad", "--data-dir=./tmp-test", "open", "0"},
		},
		{
			name: "index after bool flag",
			in:   []string{"lunchpad", "--pretty", "12"},
			want: []string{"lunchpad", "--pretty", "open", "12"},
		},
		{
			name: "index after double dash",
			in:   []string{"lunchpad", "--", "-1"},
			want: []string{"lunchpad", "open", "--", "-1"},
		},
		{
			name: "numeric flag value is not an index",
			in:   []string{"lunchpad", "--format", "json", "list"},
			want: []string{"lunchpad", "--format", "json", "list"},
		},
		{
			name: "subcommand with index not rewritten",
			in:   []string{"lunchpad", "open", "3"},
			want: []string{"lunchpad", "open", "3"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"lunchpad", "wat"},
			want: []string{"lunchpad", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectOpenArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectOpenArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
