// Package assign resolves profile and group display names into typed
// assignment targets. Resolution is eager: every lookup completes before the
// caller submits anything, so a bad name never leaves a batch half-applied.
package assign

import (
	"context"
	"errors"
	"fmt"
)

// AllDevicesName is the sentinel group name that targets every device
// instead of a directory group.
const AllDevicesName = "AllDevices"

var (
	// ErrProfileNotFound is returned when no profile matches the display name.
	ErrProfileNotFound = errors.New("no profile matches display name")

	// ErrAmbiguousProfile is returned when more than one profile matches.
	ErrAmbiguousProfile = errors.New("multiple profiles match display name")

	// ErrAllDevicesConflict is returned when AllDevices is combined with any
	// other include or exclude entry.
	ErrAllDevicesConflict = errors.New("AllDevices cannot be combined with other group assignments")
)

// TargetKind tags the three assignment target variants.
type TargetKind string

const (
	TargetInclude    TargetKind = "include"
	TargetExclude    TargetKind = "exclude"
	TargetAllDevices TargetKind = "allDevices"
)

// Target is one resolved assignment target. GroupID is empty for the
// AllDevices variant.
type Target struct {
	Kind    TargetKind
	GroupID string
}

// ProfileLookup resolves a profile display name to the IDs of every exact
// match.
type ProfileLookup interface {
	ProfileIDsByName(ctx context.Context, displayName string) ([]string, error)
}

// GroupLookup resolves a group display name to a single group ID. Zero or
// ambiguous matches are the lookup's failure to report; the resolver does
// not re-validate them.
type GroupLookup interface {
	GroupIDByName(ctx context.Context, displayName string) (string, error)
}

// Resolve maps a profile name plus include/exclude group name lists to the
// profile ID and an ordered target sequence: includes first, then excludes,
// each in input order. Duplicate names produce duplicate targets. Any
// resolution failure aborts the whole batch before a single target is
// returned.
func Resolve(ctx context.Context, profileName string, includeNames, excludeNames []string, profiles ProfileLookup, groups GroupLookup) (string, []Target, error) {
	ids, err := profiles.ProfileIDsByName(ctx, profileName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up profile %q: %w", profileName, err)
	}
	switch {
	case len(ids) == 0:
		return "", nil, fmt.Errorf("%w: %q", ErrProfileNotFound, profileName)
	case len(ids) > 1:
		return "", nil, fmt.Errorf("%w: %q has %d matches", ErrAmbiguousProfile, profileName, len(ids))
	}
	profileID := ids[0]

	if containsAllDevices(includeNames) {
		if len(includeNames) > 1 || len(excludeNames) > 0 {
			return "", nil, fmt.Errorf("%w: profile %q", ErrAllDevicesConflict, profileName)
		}
		return profileID, []Target{{Kind: TargetAllDevices}}, nil
	}

	targets := make([]Target, 0, len(includeNames)+len(excludeNames))
	for _, name := range includeNames {
		id, err := groups.GroupIDByName(ctx, name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve included group %q: %w", name, err)
		}
		targets = append(targets, Target{Kind: TargetInclude, GroupID: id})
	}
	for _, name := range excludeNames {
		id, err := groups.GroupIDByName(ctx, name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve excluded group %q: %w", name, err)
		}
		targets = append(targets, Target{Kind: TargetExclude, GroupID: id})
	}
	return profileID, targets, nil
}

func containsAllDevices(names []string) bool {
	for _, n := range names {
		if n == AllDevicesName {
			return true
		}
	}
	return false
}
