package policies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-dropins/internal/types"
)

func TestNewDropinsPolicyDefaults(t *testing.T) {
	policy := NewDropinsPolicy("", 0)
	assert.Equal(t, types.DefaultDropinsPrefix, policy.Prefix)
	assert.Equal(t, types.DefaultStartLevel, policy.StartLevel)
}

func TestDropinsPolicyClassify(t *testing.T) {
	policy := NewDropinsPolicy("../dropins/", 4)
	tests := []struct {
		path string
		want types.BundleOrigin
	}{
		{path: "../dropins/com.foo_1.0.0.jar", want: types.BundleOriginDropins},
		{path: "../plugins/com.bar_1.0.0.jar", want: types.BundleOriginOther},
		{path: "dropins/com.foo_1.0.0.jar", want: types.BundleOriginOther},
		{path: "", want: types.BundleOriginOther},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, policy.Classify(tt.path)); diff != "" {
				t.Fatalf("unexpected origin (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDropinsPolicyCandidatePath(t *testing.T) {
	policy := NewDropinsPolicy("../dropins/", 4)
	assert.Equal(t, "../dropins/com.foo_1.0.0.jar", policy.CandidatePath("com.foo_1.0.0.jar"))
}

func TestResolveCandidate(t *testing.T) {
	bundle := types.BundleRecord{SymbolicName: "com.foo", Version: "1.0.0", Path: "../dropins/com.foo_1.0.0.jar", StartLevel: 4}
	fragment := types.BundleRecord{SymbolicName: "com.foo", Version: "1.0.0", Path: "../dropins/com.foo.frag_1.0.0.jar", StartLevel: 4, Fragment: true}

	tests := []struct {
		name         string
		existing     []types.BundleRecord
		candidate    types.BundleRecord
		wantAction   types.MergeAction
		wantExisting string
	}{
		{
			name:       "new version is deployed",
			existing:   []types.BundleRecord{bundle},
			candidate:  types.BundleRecord{SymbolicName: "com.foo", Version: "2.0.0", Path: "../dropins/com.foo_2.0.0.jar"},
			wantAction: types.MergeActionDeployed,
		},
		{
			name:         "exact duplicate is present",
			existing:     []types.BundleRecord{bundle},
			candidate:    bundle,
			wantAction:   types.MergeActionPresent,
			wantExisting: bundle.Path,
		},
		{
			name:         "different path is refused",
			existing:     []types.BundleRecord{bundle},
			candidate:    types.BundleRecord{SymbolicName: "com.foo", Version: "1.0.0", Path: "../dropins/renamed.jar"},
			wantAction:   types.MergeActionRefused,
			wantExisting: bundle.Path,
		},
		{
			name:         "fragment clash with different path is refused",
			existing:     []types.BundleRecord{bundle},
			candidate:    types.BundleRecord{SymbolicName: "com.foo", Version: "1.0.0", Path: "../dropins/frag.jar", Fragment: true},
			wantAction:   types.MergeActionRefused,
			wantExisting: bundle.Path,
		},
		{
			name:         "fragment clash with same path is accepted",
			existing:     []types.BundleRecord{bundle},
			candidate:    types.BundleRecord{SymbolicName: "com.foo", Version: "1.0.0", Path: bundle.Path, Fragment: true},
			wantAction:   types.MergeActionPresent,
			wantExisting: bundle.Path,
		},
		{
			name:         "matching fragment-ness wins over first version match",
			existing:     []types.BundleRecord{bundle, fragment},
			candidate:    fragment,
			wantAction:   types.MergeActionPresent,
			wantExisting: fragment.Path,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ResolveCandidate(tt.existing, tt.candidate)
			require.Equal(t, tt.wantAction, decision.Action)
			assert.Equal(t, tt.wantExisting, decision.ExistingPath)
			if tt.wantAction == types.MergeActionRefused {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}
