package domain

type Capability string

const (
	CapViewMetrics Capability = "canViewMetrics"
	CapApproveJobs Capability = "canApproveJobs"
	CapManageUsers Capability = "canManageUsers"
	CapCreateJobs  Capability = "canCreateJobs"
	CapFormatJobs  Capability = "canFormatJobs"
	CapPublishJobs Capability = "canPublishJobs"
)

// rolePermissions is the closed capability table. Changing it changes who
// may perform which workflow transition, so keep it in sync with the
// frontend's copy.
var rolePermissions = map[Role][]Capability{
	RoleITAdmin: {
		CapViewMetrics,
		CapApproveJobs,
		CapManageUsers,
		CapCreateJobs,
		CapFormatJobs,
		CapPublishJobs,
	},
	RoleHRManager: {
		CapViewMetrics,
		CapApproveJobs,
		CapCreateJobs,
		CapFormatJobs,
		CapPublishJobs,
	},
	RoleHRAssistant: {
		CapCreateJobs,
		CapFormatJobs,
		CapPublishJobs,
	},
}

// HasPermission reports whether role holds capability. Unknown roles hold
// nothing.
func HasPermission(role Role, capability Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}
