package provisioner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoprov/autoprov/internal/assign"
	"github.com/autoprov/autoprov/internal/csvsource"
	"github.com/autoprov/autoprov/internal/locale"
	"github.com/autoprov/autoprov/pkg/models"
)

// fakeAPI implements API with per-method hooks, recording every call.
type fakeAPI struct {
	CreateProfileFn    func(ctx context.Context, req *models.ProfileRequest) (string, error)
	ProfileIDsByNameFn func(ctx context.Context, displayName string) ([]string, error)
	GroupIDByNameFn    func(ctx context.Context, displayName string) (string, error)
	CreateAssignmentFn func(ctx context.Context, profileID string, target assign.Target) (string, error)

	createdProfiles []string
	assignments     []assign.Target
}

func (f *fakeAPI) CreateProfile(ctx context.Context, req *models.ProfileRequest) (string, error) {
	f.createdProfiles = append(f.createdProfiles, req.DisplayName)
	if f.CreateProfileFn != nil {
		return f.CreateProfileFn(ctx, req)
	}
	return "p-" + req.DisplayName, nil
}

func (f *fakeAPI) ProfileIDsByName(ctx context.Context, displayName string) ([]string, error) {
	if f.ProfileIDsByNameFn != nil {
		return f.ProfileIDsByNameFn(ctx, displayName)
	}
	return []string{"p-" + displayName}, nil
}

func (f *fakeAPI) GroupIDByName(ctx context.Context, displayName string) (string, error) {
	if f.GroupIDByNameFn != nil {
		return f.GroupIDByNameFn(ctx, displayName)
	}
	return "g-" + displayName, nil
}

func (f *fakeAPI) CreateAssignment(ctx context.Context, profileID string, target assign.Target) (string, error) {
	f.assignments = append(f.assignments, target)
	if f.CreateAssignmentFn != nil {
		return f.CreateAssignmentFn(ctx, profileID, target)
	}
	return fmt.Sprintf("a-%d", len(f.assignments)), nil
}

func testRow(line int, name string, include, exclude []string) csvsource.Row {
	return csvsource.Row{
		Line: line,
		Definition: models.ProfileDefinition{
			DisplayName:    name,
			JoinMode:       "AzureAD",
			IncludedGroups: include,
			ExcludedGroups: exclude,
		},
	}
}

func TestApplyCreatesProfileAndAssignments(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, locale.NewCatalog())

	summary, err := svc.Apply(context.Background(), []csvsource.Row{
		testRow(2, "EU Sales", []string{"Sales Devices", "Field Staff"}, []string{"Kiosks"}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"EU Sales"}, summary.Created)
	assert.Equal(t, 3, summary.Assignments)
	assert.Empty(t, summary.Failed)

	require.Equal(t, []string{"EU Sales"}, api.createdProfiles)
	require.Len(t, api.assignments, 3)
	assert.Equal(t, assign.Target{Kind: assign.TargetInclude, GroupID: "g-Sales Devices"}, api.assignments[0])
	assert.Equal(t, assign.Target{Kind: assign.TargetInclude, GroupID: "g-Field Staff"}, api.assignments[1])
	assert.Equal(t, assign.Target{Kind: assign.TargetExclude, GroupID: "g-Kiosks"}, api.assignments[2])
}

func TestApplyRowWithoutGroupsSkipsAssignment(t *testing.T) {
	api := &fakeAPI{
		ProfileIDsByNameFn: func(ctx context.Context, displayName string) ([]string, error) {
			t.Error("no lookup expected for a row without groups")
			return nil, nil
		},
	}
	svc := NewService(api, locale.NewCatalog())

	summary, err := svc.Apply(context.Background(), []csvsource.Row{testRow(2, "Plain", nil, nil)})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Assignments)
	assert.Empty(t, api.assignments)
}

func TestApplyAbortsBatchOnFirstFailure(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, locale.NewCatalog())

	bad := testRow(2, "Bad", nil, nil)
	bad.Definition.JoinMode = "Workgroup"

	summary, err := svc.Apply(context.Background(), []csvsource.Row{
		bad,
		testRow(3, "Good", nil, nil),
	})
	require.Error(t, err)

	var rowErr RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, "Bad", rowErr.DisplayName)

	assert.Empty(t, summary.Created, "batch must stop before the second row")
	assert.Empty(t, api.createdProfiles)
}

func TestApplyContinueOnError(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, locale.NewCatalog())
	svc.SetContinueOnError(true)

	bad := testRow(2, "Bad", nil, nil)
	bad.Definition.JoinMode = "Workgroup"

	summary, err := svc.Apply(context.Background(), []csvsource.Row{
		bad,
		testRow(3, "Good", nil, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	assert.Equal(t, []string{"Good"}, summary.Created)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, 2, summary.Failed[0].Line)
}

func TestApplyNoAssignmentsAfterGroupLookupFailure(t *testing.T) {
	api := &fakeAPI{
		GroupIDByNameFn: func(ctx context.Context, displayName string) (string, error) {
			if displayName == "Missing" {
				return "", fmt.Errorf("no group matches")
			}
			return "g-" + displayName, nil
		},
	}
	svc := NewService(api, locale.NewCatalog())

	_, err := svc.Apply(context.Background(), []csvsource.Row{
		testRow(2, "EU Sales", []string{"Sales Devices", "Missing"}, nil),
	})
	require.Error(t, err)

	// Resolution is eager: the first group resolved but nothing was
	// submitted because the second failed.
	assert.Empty(t, api.assignments)
}

func TestApplyDryRunSubmitsNothing(t *testing.T) {
	api := &fakeAPI{
		CreateProfileFn: func(ctx context.Context, req *models.ProfileRequest) (string, error) {
			t.Error("no creation expected in dry run")
			return "", nil
		},
	}
	svc := NewService(api, locale.NewCatalog())
	svc.SetDryRun(true)

	summary, err := svc.Apply(context.Background(), []csvsource.Row{
		testRow(2, "EU Sales", []string{"Sales Devices"}, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"EU Sales"}, summary.Created)
	assert.Equal(t, 0, summary.Assignments)
	assert.Empty(t, api.createdProfiles)
}

func TestApplyDryRunStillValidates(t *testing.T) {
	svc := NewService(&fakeAPI{}, locale.NewCatalog())
	svc.SetDryRun(true)

	bad := testRow(2, "Bad", nil, nil)
	bad.Definition.DeviceNameTemplate = "THIS-IS-WAY-TOO-LONG"

	_, err := svc.Apply(context.Background(), []csvsource.Row{bad})
	require.Error(t, err)
}
