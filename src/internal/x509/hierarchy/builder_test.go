// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509hierarchy "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/hierarchy"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		input []*fakeCert
		want  []string
	}{
		{
			name:  "Empty input",
			input: nil,
			want:  nil,
		},
		{
			name:  "Single self-signed certificate",
			input: []*fakeCert{fake("CN=Root", "CN=Root", 1)},
			want:  []string{"CN=Root/1"},
		},
		{
			name: "Reverse ordered chain",
			input: []*fakeCert{
				fake("CN=Leaf", "CN=Inter", 3),
				fake("CN=Inter", "CN=Root", 2),
				fake("CN=Root", "CN=Root", 1),
			},
			want: []string{
				"CN=Root/1",
				"  CN=Inter/2",
				"    CN=Leaf/3",
			},
		},
		{
			name: "Issuers sorting after their subjects need several passes",
			input: []*fakeCert{
				fake("CN=A", "CN=B", 1),
				fake("CN=B", "CN=C", 2),
				fake("CN=C", "CN=D", 3),
				fake("CN=D", "CN=D", 4),
			},
			want: []string{
				"CN=D/4",
				"  CN=C/3",
				"    CN=B/2",
				"      CN=A/1",
			},
		},
		{
			name: "Missing issuer becomes orphan",
			input: []*fakeCert{
				fake("CN=Leaf", "CN=Missing Inter", 7),
				fake("CN=Root", "CN=Root", 1),
			},
			want: []string{
				"CN=Leaf/7",
				"CN=Root/1",
			},
		},
		{
			name: "Children of an orphan are attached below it",
			input: []*fakeCert{
				fake("CN=Leaf", "CN=Inter", 3),
				fake("CN=Inter", "CN=Missing Root", 2),
			},
			want: []string{
				"CN=Inter/2",
				"  CN=Leaf/3",
			},
		},
		{
			name: "Siblings are sorted",
			input: []*fakeCert{
				fake("CN=c.example", "CN=Root", 30),
				fake("CN=a.example", "CN=Root", 10),
				fake("CN=Root", "CN=Root", 1),
				fake("CN=b.example", "CN=Root", 20),
				fake("CN=a.example", "CN=Root", 5),
			},
			want: []string{
				"CN=Root/1",
				"  CN=a.example/5",
				"  CN=a.example/10",
				"  CN=b.example/20",
				"  CN=c.example/30",
			},
		},
		{
			name: "Leaf attaches to the first matching issuer depth-first",
			input: []*fakeCert{
				fake("CN=Leaf", "CN=Inter", 9),
				fake("CN=Inter", "CN=Root B", 2),
				fake("CN=Inter", "CN=Root A", 1),
				fake("CN=Root B", "CN=Root B", 20),
				fake("CN=Root A", "CN=Root A", 10),
			},
			want: []string{
				"CN=Root A/10",
				"  CN=Inter/1",
				"    CN=Leaf/9",
				"CN=Root B/20",
				"  CN=Inter/2",
			},
		},
		{
			name: "Two-cycle terminates with both as orphans",
			input: []*fakeCert{
				fake("CN=A", "CN=B", 1),
				fake("CN=B", "CN=A", 2),
			},
			want: []string{
				"CN=A/1",
				"CN=B/2",
			},
		},
		{
			name: "Cycle does not disturb an anchored chain",
			input: []*fakeCert{
				fake("CN=X", "CN=Y", 1),
				fake("CN=Y", "CN=X", 2),
				fake("CN=Leaf", "CN=Root", 4),
				fake("CN=Root", "CN=Root", 3),
			},
			want: []string{
				"CN=Root/3",
				"  CN=Leaf/4",
				"CN=X/1",
				"CN=Y/2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := x509hierarchy.Build(tt.input)
			require.NotNil(t, forest)

			if diff := cmp.Diff(tt.want, shape(forest)); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildDeduplicates(t *testing.T) {
	first := fake("CN=Root", "CN=Root", 1)
	second := fake("CN=Root", "CN=Root", 1)
	third := fake("CN=Root", "CN=Root", 1)

	forest := x509hierarchy.Build([]*fakeCert{first, second, third})

	require.Equal(t, 1, forest.Len())
	assert.Same(t, first, forest.Roots()[0].Certificate(), "first occurrence must be kept")
}

func TestBuildCompleteness(t *testing.T) {
	input := []*fakeCert{
		fake("CN=Leaf 1", "CN=Inter", 10),
		fake("CN=Leaf 2", "CN=Inter", 11),
		fake("CN=Leaf 2", "CN=Inter", 11),
		fake("CN=Inter", "CN=Root", 2),
		fake("CN=Root", "CN=Root", 1),
		fake("CN=Stray", "CN=Elsewhere", 99),
		fake("CN=P", "CN=Q", 5),
		fake("CN=Q", "CN=P", 6),
	}

	forest := x509hierarchy.Build(input)
	assert.Equal(t, 7, forest.Len())

	got := forest.Certificates()
	for _, c := range input {
		assert.True(t, slices.ContainsFunc(got, func(g *fakeCert) bool {
			return x509hierarchy.Equal(g, c)
		}), "missing %s/%s", c.subject, c.serial)
	}

	forest.Walk(func(n *x509hierarchy.Node[*fakeCert], depth int) bool {
		if x509hierarchy.IsSelfSigned(n.Certificate()) {
			assert.Zero(t, depth, "self-signed %s must be top-level", n.Certificate().subject)
		}
		for _, child := range n.Children() {
			assert.Equal(t, n.Certificate().SubjectName(), child.Certificate().IssuerName())
		}
		return true
	})
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	input := []*fakeCert{
		fake("CN=Leaf", "CN=Root", 2),
		fake("CN=Root", "CN=Root", 1),
		fake("CN=Leaf", "CN=Root", 2),
	}
	snapshot := slices.Clone(input)

	x509hierarchy.Build(input)

	assert.Equal(t, snapshot, input)
}

func TestBuildIsDeterministic(t *testing.T) {
	input := []*fakeCert{
		fake("CN=Root", "CN=Root", 1),
		fake("CN=Inter", "CN=Root", 2),
		fake("CN=Inter", "CN=Root", 3),
		fake("CN=Leaf A", "CN=Inter", 4),
		fake("CN=Leaf B", "CN=Inter", 5),
		fake("CN=Leaf B", "CN=Inter", 5),
		fake("CN=Orphan", "CN=Nobody", 6),
		fake("CN=M", "CN=N", 7),
		fake("CN=N", "CN=M", 8),
	}
	want := shape(x509hierarchy.Build(input))

	rng := rand.New(rand.NewPCG(42, 1337))
	for i := range 50 {
		shuffled := slices.Clone(input)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		if diff := cmp.Diff(want, shape(x509hierarchy.Build(shuffled))); diff != "" {
			t.Fatalf("shuffle %d produced a different forest (-want +got):\n%s", i, diff)
		}
	}
}
