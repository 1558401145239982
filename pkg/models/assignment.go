package models

// Assignment target discriminators.
const (
	TargetTypeAllDevices     = "#microsoft.graph.allDevicesAssignmentTarget"
	TargetTypeGroup          = "#microsoft.graph.groupAssignmentTarget"
	TargetTypeExclusionGroup = "#microsoft.graph.exclusionGroupAssignmentTarget"
)

// AssignmentTarget is the discriminated target payload of a profile
// assignment. GroupID is set only for the two group-scoped shapes.
type AssignmentTarget struct {
	ODataType string `json:"@odata.type"`
	GroupID   string `json:"groupId,omitempty"`
}

// AssignmentRequest wraps a target for submission to the assignments
// collection of a profile.
type AssignmentRequest struct {
	Target AssignmentTarget `json:"target"`
}

// Assignment is a created profile assignment as returned by the service.
type Assignment struct {
	ID     string           `json:"id"`
	Target AssignmentTarget `json:"target"`
}

// NewAllDevicesTarget returns the all-devices target shape.
func NewAllDevicesTarget() AssignmentTarget {
	return AssignmentTarget{ODataType: TargetTypeAllDevices}
}

// NewGroupTarget returns an include target for the given group.
func NewGroupTarget(groupID string) AssignmentTarget {
	return AssignmentTarget{ODataType: TargetTypeGroup, GroupID: groupID}
}

// NewExclusionGroupTarget returns an exclude target for the given group.
func NewExclusionGroupTarget(groupID string) AssignmentTarget {
	return AssignmentTarget{ODataType: TargetTypeExclusionGroup, GroupID: groupID}
}
